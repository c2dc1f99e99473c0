package service

import (
	"fmt"
	"net/url"
	"strings"

	"repurpose/backend/internal/model"
)

// Validation messages shown to the user.
const (
	msgInvalidSourceType   = `sourceType must be either "url" or "text"`
	msgSourceRequired      = "source is required"
	msgSourceInvalidURL    = "source must be a valid URL"
	msgOutputTypesRequired = "Select at least one output format."
	msgCanonicalRequired   = "A canonical URL is required when pasting article text so we can add a backlink."
	msgCanonicalInvalidURL = "canonicalUrl must be a valid URL"
	msgInvalidTone         = "tone must be conversational, professional or playful"
	msgUnsupportedOutput   = "unsupported output type %q"
	msgUnsupportedPlatform = "unsupported social platform %q"
)

// ConvertInput is one conversion request.
type ConvertInput struct {
	SourceType      model.SourceType
	Source          string
	OutputTypes     []model.OutputType
	SocialPlatforms []model.Platform
	Tone            model.Tone
	CanonicalURL    string
	ArticleTitle    string
	ArticleAuthor   string
}

// normalize validates in and returns a copy with trimmed strings,
// deduplicated output types and default social platforms.
func normalize(in ConvertInput) (ConvertInput, error) {
	var details []string

	in.Source = strings.TrimSpace(in.Source)
	in.CanonicalURL = strings.TrimSpace(in.CanonicalURL)
	in.ArticleTitle = strings.TrimSpace(in.ArticleTitle)
	in.ArticleAuthor = strings.TrimSpace(in.ArticleAuthor)

	switch in.SourceType {
	case model.SourceURL, model.SourceText:
	default:
		details = append(details, msgInvalidSourceType)
	}

	if in.Source == "" {
		details = append(details, msgSourceRequired)
	} else if in.SourceType == model.SourceURL && !isHTTPURL(in.Source) {
		details = append(details, msgSourceInvalidURL)
	}

	if len(in.OutputTypes) == 0 {
		details = append(details, msgOutputTypesRequired)
	}
	outputs := make([]model.OutputType, 0, len(in.OutputTypes))
	seen := make(map[model.OutputType]bool, len(in.OutputTypes))
	for _, t := range in.OutputTypes {
		if !t.Valid() {
			details = append(details, fmt.Sprintf(msgUnsupportedOutput, t))
			continue
		}
		if !seen[t] {
			seen[t] = true
			outputs = append(outputs, t)
		}
	}
	in.OutputTypes = outputs

	platforms := make([]model.Platform, 0, len(in.SocialPlatforms))
	seenPlatform := make(map[model.Platform]bool, len(in.SocialPlatforms))
	for _, p := range in.SocialPlatforms {
		if !p.Valid() {
			details = append(details, fmt.Sprintf(msgUnsupportedPlatform, p))
			continue
		}
		if !seenPlatform[p] {
			seenPlatform[p] = true
			platforms = append(platforms, p)
		}
	}
	if len(platforms) == 0 && seen[model.OutputSocial] {
		platforms = append(platforms, model.DefaultPlatforms...)
	}
	in.SocialPlatforms = platforms

	if in.Tone != "" && !in.Tone.Valid() {
		details = append(details, msgInvalidTone)
	}

	if in.CanonicalURL != "" {
		if !isHTTPURL(in.CanonicalURL) {
			details = append(details, msgCanonicalInvalidURL)
		}
	} else if in.SourceType == model.SourceText {
		details = append(details, msgCanonicalRequired)
	}

	if len(details) > 0 {
		return in, &ValidationError{Details: details}
	}
	return in, nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
