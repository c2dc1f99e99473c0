package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"repurpose/backend/internal/model"
	"repurpose/backend/internal/repository"
	"repurpose/backend/internal/repository/testutil"
)

func stringPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func TestConversionRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewConversionRepository(db, "sqlite")
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Conversion{
		SourceType:      model.SourceURL,
		Source:          "https://example.com/post",
		OutputTypes:     []model.OutputType{model.OutputNewsletter, model.OutputSocial},
		SocialPlatforms: []model.Platform{model.PlatformTwitter},
		Tone:            model.TonePlayful,
		CanonicalURL:    "https://example.com/post",
		Title:           stringPtr("Hello"),
		WordCount:       intPtr(120),
		RawContent:      "Body text.",
		Outputs: map[model.OutputType]string{
			model.OutputNewsletter: "<p>news</p>",
			model.OutputSocial:     "<section data-platform=\"twitter\"></section>",
		},
		Provider: "openai",
		Model:    "gpt-4o-mini",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, model.SourceURL, fetched.SourceType)
	require.Equal(t, []model.OutputType{model.OutputNewsletter, model.OutputSocial}, fetched.OutputTypes)
	require.Equal(t, []model.Platform{model.PlatformTwitter}, fetched.SocialPlatforms)
	require.Equal(t, model.TonePlayful, fetched.Tone)
	require.Equal(t, "Hello", *fetched.Title)
	require.Nil(t, fetched.Author)
	require.Nil(t, fetched.Excerpt)
	require.Equal(t, 120, *fetched.WordCount)
	require.Equal(t, "<p>news</p>", fetched.Outputs[model.OutputNewsletter])
	require.WithinDuration(t, created.CreatedAt, fetched.CreatedAt, time.Millisecond)
}

func TestConversionRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewConversionRepository(db, "sqlite")

	_, err := repo.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestConversionRepository_ListRecent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewConversionRepository(db, "sqlite")
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, model.Conversion{
			SourceType:   model.SourceText,
			Source:       "text",
			OutputTypes:  []model.OutputType{model.OutputEmail},
			CanonicalURL: "https://example.com/" + string(rune('a'+i)),
			Outputs:      map[model.OutputType]string{model.OutputEmail: "<p>mail</p>"},
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	list, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "https://example.com/c", list[0].CanonicalURL)
	require.Equal(t, "https://example.com/b", list[1].CanonicalURL)
	require.Empty(t, list[0].SocialPlatforms)
}
