package repository

//go:generate mockgen -source=conversion_repository.go -destination=mock/conversion_repository.go -package=mock

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"repurpose/backend/internal/model"
	"repurpose/backend/internal/snowflake"
)

// ConversionRepository stores conversion snapshots. Rows are never updated or deleted.
type ConversionRepository interface {
	Create(ctx context.Context, c model.Conversion) (model.Conversion, error)
	GetByID(ctx context.Context, id int64) (model.Conversion, error)
	ListRecent(ctx context.Context, limit int) ([]model.Conversion, error)
}

type conversionRepository struct {
	db     dbtx
	driver string
}

// NewConversionRepository creates a repository; driver selects the placeholder style.
func NewConversionRepository(db dbtx, driver string) ConversionRepository {
	return &conversionRepository{db: db, driver: driver}
}

const conversionColumns = `id, source_type, source, output_types, social_platforms, tone, canonical_url,
	title, author, word_count, excerpt, raw_content, outputs, provider, model, created_at`

func (r *conversionRepository) Create(ctx context.Context, c model.Conversion) (model.Conversion, error) {
	if c.ID == 0 {
		c.ID = snowflake.NextID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	outputTypes, err := json.Marshal(orEmpty(c.OutputTypes))
	if err != nil {
		return model.Conversion{}, fmt.Errorf("encode output types: %w", err)
	}
	platforms, err := json.Marshal(orEmpty(c.SocialPlatforms))
	if err != nil {
		return model.Conversion{}, fmt.Errorf("encode platforms: %w", err)
	}
	outputs := c.Outputs
	if outputs == nil {
		outputs = map[model.OutputType]string{}
	}
	outputsJSON, err := json.Marshal(outputs)
	if err != nil {
		return model.Conversion{}, fmt.Errorf("encode outputs: %w", err)
	}

	_, err = r.db.ExecContext(
		ctx,
		rebind(r.driver, `INSERT INTO conversions (`+conversionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		c.ID,
		string(c.SourceType),
		c.Source,
		string(outputTypes),
		string(platforms),
		string(c.Tone),
		c.CanonicalURL,
		nullString(c.Title),
		nullString(c.Author),
		nullInt(c.WordCount),
		nullString(c.Excerpt),
		c.RawContent,
		string(outputsJSON),
		c.Provider,
		c.Model,
		formatTime(c.CreatedAt),
	)
	if err != nil {
		return model.Conversion{}, err
	}
	return c, nil
}

func (r *conversionRepository) GetByID(ctx context.Context, id int64) (model.Conversion, error) {
	row := r.db.QueryRowContext(
		ctx,
		rebind(r.driver, `SELECT `+conversionColumns+` FROM conversions WHERE id = ?`),
		id,
	)
	return scanConversion(row)
}

func (r *conversionRepository) ListRecent(ctx context.Context, limit int) ([]model.Conversion, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(
		ctx,
		rebind(r.driver, `SELECT `+conversionColumns+` FROM conversions ORDER BY created_at DESC, id DESC LIMIT ?`),
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Conversion
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConversion(row scanner) (model.Conversion, error) {
	var (
		c                               model.Conversion
		sourceType, tone, createdAt     string
		outputTypes, platforms, outputs string
		title, author, excerpt          sql.NullString
		wordCount                       sql.NullInt64
	)
	err := row.Scan(
		&c.ID, &sourceType, &c.Source, &outputTypes, &platforms, &tone, &c.CanonicalURL,
		&title, &author, &wordCount, &excerpt, &c.RawContent, &outputs, &c.Provider, &c.Model, &createdAt,
	)
	if err != nil {
		return model.Conversion{}, err
	}

	c.SourceType = model.SourceType(sourceType)
	c.Tone = model.Tone(tone)
	c.Title = stringPtr(title)
	c.Author = stringPtr(author)
	c.Excerpt = stringPtr(excerpt)
	if wordCount.Valid {
		n := int(wordCount.Int64)
		c.WordCount = &n
	}
	if err := json.Unmarshal([]byte(outputTypes), &c.OutputTypes); err != nil {
		return model.Conversion{}, fmt.Errorf("decode output types: %w", err)
	}
	if err := json.Unmarshal([]byte(platforms), &c.SocialPlatforms); err != nil {
		return model.Conversion{}, fmt.Errorf("decode platforms: %w", err)
	}
	if err := json.Unmarshal([]byte(outputs), &c.Outputs); err != nil {
		return model.Conversion{}, fmt.Errorf("decode outputs: %w", err)
	}
	c.CreatedAt, _ = parseTime(createdAt)

	return c, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
