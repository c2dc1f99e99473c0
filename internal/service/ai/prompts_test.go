package ai_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"repurpose/backend/internal/model"
	"repurpose/backend/internal/service/ai"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func fullMetadata(canonical string) model.ArticleMetadata {
	return model.ArticleMetadata{
		Title:        strPtr("Ten Lessons From Shipping Weekly"),
		Author:       strPtr("Sam Rivera"),
		CanonicalURL: canonical,
		WordCount:    intPtr(1200),
		Excerpt:      strPtr("What a year of weekly releases taught us."),
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	meta := fullMetadata("https://example.com/post?utm_source=repurpose")
	a := ai.BuildPrompt(model.OutputSocial, "body", meta, model.DefaultPlatforms, model.TonePlayful)
	b := ai.BuildPrompt(model.OutputSocial, "body", meta, model.DefaultPlatforms, model.TonePlayful)
	require.Equal(t, a, b)
}

func TestBuildPrompt_BacklinkFollowsCanonical(t *testing.T) {
	first := ai.BuildPrompt(model.OutputNewsletter, "body", fullMetadata("https://example.com/a"), nil, "")
	second := ai.BuildPrompt(model.OutputNewsletter, "body", fullMetadata("https://example.com/b"), nil, "")

	require.NotEqual(t, first, second)
	require.Contains(t, first, ai.BacklinkAnchor("https://example.com/a"))
	require.Contains(t, second, ai.BacklinkAnchor("https://example.com/b"))
	require.Equal(t, first, strings.ReplaceAll(second, "https://example.com/b", "https://example.com/a"))
}

func TestBacklinkAnchor(t *testing.T) {
	require.Equal(t,
		`<a href="https://example.com/x" rel="noopener noreferrer" data-backlink="true">Read the full article</a>`,
		ai.BacklinkAnchor("https://example.com/x"),
	)
}

func TestBuildPrompt_MetadataLines(t *testing.T) {
	prompt := ai.BuildPrompt(model.OutputEmail, "body", fullMetadata("https://example.com/a"), nil, "")
	require.Contains(t, prompt, "Title: Ten Lessons From Shipping Weekly")
	require.Contains(t, prompt, "Author: Sam Rivera")
	require.Contains(t, prompt, "Summary: What a year of weekly releases taught us.")
	require.Contains(t, prompt, "Approximate length: 1200 words")
}

func TestBuildPrompt_OmitsMissingMetadata(t *testing.T) {
	meta := model.ArticleMetadata{CanonicalURL: "https://example.com/a"}
	prompt := ai.BuildPrompt(model.OutputNewsletter, "body", meta, nil, "")
	require.NotContains(t, prompt, "Title:")
	require.NotContains(t, prompt, "Author:")
	require.NotContains(t, prompt, "Summary:")
	require.NotContains(t, prompt, "Approximate length:")
	require.NotContains(t, prompt, "<article_details>")
}

func TestBuildPrompt_AppendsArticleText(t *testing.T) {
	prompt := ai.BuildPrompt(model.OutputNewsletter, "The quick brown fox.", fullMetadata("https://example.com/a"), nil, "")
	require.True(t, strings.HasSuffix(prompt, "Article:\nThe quick brown fox."))
}

func TestBuildPrompt_PerTypeInstructions(t *testing.T) {
	meta := fullMetadata("https://example.com/a")

	newsletter := ai.BuildPrompt(model.OutputNewsletter, "body", meta, nil, "")
	require.Contains(t, newsletter, "exactly three <li>")
	require.Contains(t, newsletter, "60 words")

	email := ai.BuildPrompt(model.OutputEmail, "body", meta, nil, "")
	require.Contains(t, email, `data-role="subject"`)
	require.Contains(t, email, `data-role="preheader"`)
	require.Contains(t, email, `data-role="body"`)
	require.Contains(t, email, `data-role="ps"`)

	social := ai.BuildPrompt(model.OutputSocial, "body", meta, []model.Platform{model.PlatformLinkedIn}, "")
	require.Contains(t, social, "data-platform")
	require.Contains(t, social, "LinkedIn [linkedin]")
	require.NotContains(t, social, "[twitter]")
	require.NotContains(t, social, "[instagram]")
}

func TestBuildPrompt_SocialPlatformOrder(t *testing.T) {
	meta := fullMetadata("https://example.com/a")
	prompt := ai.BuildPrompt(model.OutputSocial, "body", meta, []model.Platform{model.PlatformInstagram, model.PlatformTwitter}, "")

	ig := strings.Index(prompt, "[instagram]")
	tw := strings.Index(prompt, "[twitter]")
	require.Positive(t, ig)
	require.Positive(t, tw)
	require.Less(t, ig, tw)
	require.Contains(t, prompt, "280 characters")
	require.Contains(t, prompt, "five hashtags")
}

func TestBuildPrompt_Tone(t *testing.T) {
	meta := fullMetadata("https://example.com/a")

	for _, tone := range []model.Tone{model.ToneConversational, model.ToneProfessional, model.TonePlayful} {
		prompt := ai.BuildPrompt(model.OutputNewsletter, "body", meta, nil, tone)
		require.Contains(t, prompt, ai.ToneGuidance(tone))
	}

	prompt := ai.BuildPrompt(model.OutputNewsletter, "body", meta, nil, "")
	require.Contains(t, prompt, "friendly, approachable")
}

func TestBuildPrompt_UnknownTypePanics(t *testing.T) {
	require.Panics(t, func() {
		ai.BuildPrompt(model.OutputType("podcast"), "body", fullMetadata("https://example.com/a"), nil, "")
	})
}
