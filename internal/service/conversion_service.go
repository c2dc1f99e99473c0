package service

//go:generate mockgen -source=conversion_service.go -destination=mock/conversion_service.go -package=mock

import (
	"context"
	"database/sql"
	"errors"

	"repurpose/backend/internal/model"
	"repurpose/backend/internal/repository"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// ConversionService reads the conversion history.
type ConversionService interface {
	List(ctx context.Context, limit int) ([]model.Conversion, error)
	Get(ctx context.Context, id int64) (model.Conversion, error)
}

type conversionService struct {
	conversions repository.ConversionRepository
}

// NewConversionService creates the history service. A nil repository means
// persistence is disabled and every call fails with ErrPersistenceDisabled.
func NewConversionService(conversions repository.ConversionRepository) ConversionService {
	return &conversionService{conversions: conversions}
}

func (s *conversionService) List(ctx context.Context, limit int) ([]model.Conversion, error) {
	if s.conversions == nil {
		return nil, ErrPersistenceDisabled
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	items, err := s.conversions.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Conversion{}
	}
	return items, nil
}

func (s *conversionService) Get(ctx context.Context, id int64) (model.Conversion, error) {
	if s.conversions == nil {
		return model.Conversion{}, ErrPersistenceDisabled
	}
	c, err := s.conversions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Conversion{}, ErrNotFound
		}
		return model.Conversion{}, err
	}
	return c, nil
}
