package service

//go:generate mockgen -source=convert_service.go -destination=mock/convert_service.go -package=mock

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"repurpose/backend/internal/logger"
	"repurpose/backend/internal/model"
	"repurpose/backend/internal/service/ai"
	"repurpose/backend/internal/service/article"
	"repurpose/backend/internal/service/tracking"
)

// DefaultGenerateTimeout bounds one model call.
const DefaultGenerateTimeout = 90 * time.Second

// ArticleExtractor fetches a page and returns its readable content.
type ArticleExtractor interface {
	Extract(ctx context.Context, rawURL string) (*article.Article, error)
}

// ProviderFactory builds the model provider for a conversion.
type ProviderFactory func(cfg ai.Config) (ai.Provider, error)

type ConvertService interface {
	// Convert turns one article into the requested marketing formats.
	Convert(ctx context.Context, in ConvertInput) (*model.ConversionResult, error)
}

type convertService struct {
	extractor   ArticleExtractor
	aiConfig    ai.Config
	newProvider ProviderFactory
	limiter     *ai.RateLimiter
	timeout     time.Duration
	recorder    Recorder
}

func NewConvertService(
	extractor ArticleExtractor,
	aiConfig ai.Config,
	newProvider ProviderFactory,
	limiter *ai.RateLimiter,
	timeout time.Duration,
	recorder Recorder,
) ConvertService {
	if newProvider == nil {
		newProvider = ai.NewProvider
	}
	if limiter == nil {
		limiter = ai.NewRateLimiter(ai.DefaultRateLimit)
	}
	if timeout <= 0 {
		timeout = DefaultGenerateTimeout
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &convertService{
		extractor:   extractor,
		aiConfig:    aiConfig,
		newProvider: newProvider,
		limiter:     limiter,
		timeout:     timeout,
		recorder:    recorder,
	}
}

func (s *convertService) Convert(ctx context.Context, in ConvertInput) (*model.ConversionResult, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}

	// Resolve the provider first so a misconfigured server never fetches.
	provider, err := s.provider()
	if err != nil {
		logger.Error("ai provider unavailable", "module", "service", "action", "convert", "resource", "provider", "result", "failed", "provider", s.aiConfig.Provider, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	content, meta, err := s.loadContent(ctx, in)
	if err != nil {
		return nil, err
	}

	outputs := make(map[model.OutputType]string, len(in.OutputTypes))
	for _, outputType := range in.OutputTypes {
		html, err := s.generate(ctx, provider, outputType, content, meta, in)
		if err != nil {
			logger.Warn("generation failed", "module", "service", "action", "generate", "resource", "conversion", "result", "failed", "output_type", outputType, "error", err)
			return nil, err
		}
		outputs[outputType] = html
	}

	result := &model.ConversionResult{
		Outputs:    outputs,
		Metadata:   meta,
		RawContent: content,
	}
	logger.Info("conversion completed", "module", "service", "action", "convert", "resource", "conversion", "result", "ok", "source_type", in.SourceType, "outputs", len(outputs), "canonical_url", meta.CanonicalURL)

	s.recorder.Record(model.Conversion{
		SourceType:      in.SourceType,
		Source:          in.Source,
		OutputTypes:     in.OutputTypes,
		SocialPlatforms: in.SocialPlatforms,
		Tone:            in.Tone,
		CanonicalURL:    meta.CanonicalURL,
		Title:           meta.Title,
		Author:          meta.Author,
		WordCount:       meta.WordCount,
		Excerpt:         meta.Excerpt,
		RawContent:      content,
		Outputs:         outputs,
		Provider:        provider.Name(),
		Model:           provider.Model(),
		CreatedAt:       time.Now(),
	})
	return result, nil
}

func (s *convertService) provider() (ai.Provider, error) {
	if s.aiConfig.APIKey == "" {
		return nil, ai.ErrMissingAPIKey
	}
	return s.newProvider(s.aiConfig)
}

// loadContent returns the article text and the untracked metadata.
// Caller supplied title, author and canonical URL win over extracted values.
func (s *convertService) loadContent(ctx context.Context, in ConvertInput) (string, model.ArticleMetadata, error) {
	var (
		content string
		meta    model.ArticleMetadata
	)

	switch in.SourceType {
	case model.SourceURL:
		art, err := s.extractor.Extract(ctx, in.Source)
		if err != nil {
			return "", meta, err
		}
		content = art.Content
		meta = art.Metadata
	default:
		content = in.Source
		words := utf8.RuneCountInString(content) / article.AverageWordLength
		meta.WordCount = &words
	}

	if in.ArticleTitle != "" {
		meta.Title = &in.ArticleTitle
	}
	if in.ArticleAuthor != "" {
		meta.Author = &in.ArticleAuthor
	}
	if in.CanonicalURL != "" {
		meta.CanonicalURL = in.CanonicalURL
	}
	return content, meta, nil
}

func (s *convertService) generate(
	ctx context.Context,
	provider ai.Provider,
	outputType model.OutputType,
	content string,
	meta model.ArticleMetadata,
	in ConvertInput,
) (string, error) {
	trackedURL, err := tracking.Track(meta.CanonicalURL, string(outputType), nil)
	if err != nil {
		return "", fmt.Errorf("track %s backlink: %w", outputType, err)
	}

	tracked := meta
	tracked.CanonicalURL = trackedURL
	prompt := ai.BuildPrompt(outputType, content, tracked, in.SocialPlatforms, in.Tone)

	if err := s.limiter.Wait(ctx); err != nil {
		return "", &ModelError{OutputType: outputType, Err: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := provider.Complete(callCtx, "", prompt)
	if err != nil {
		return "", &ModelError{OutputType: outputType, Err: err}
	}
	return ai.SanitizeOutput(raw, trackedURL), nil
}
