package service

import (
	"errors"
	"fmt"
	"strings"

	"repurpose/backend/internal/model"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("invalid request")
	ErrConfiguration       = errors.New("AI provider is not configured")
	ErrModel               = errors.New("content generation failed")
	ErrPersistenceDisabled = errors.New("persistence is not enabled")
)

// ValidationError carries one message per rejected field.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Details, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ModelError is returned when generating one output type fails.
type ModelError struct {
	OutputType model.OutputType
	Err        error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("failed to generate %s content: %v", e.OutputType, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

func (e *ModelError) Is(target error) bool {
	return target == ErrModel
}
