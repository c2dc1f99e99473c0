package ai

import (
	"fmt"
	"strings"

	"repurpose/backend/internal/model"
)

// BacklinkText is the visible text of the tracked backlink.
const BacklinkText = "Read the full article"

const defaultToneGuidance = "Use a friendly, approachable tone."

var toneGuidance = map[model.Tone]string{
	model.ToneConversational: "Use a warm, conversational tone, as if a friend were sharing something useful.",
	model.ToneProfessional:   "Use a polished, professional tone suited to industry peers and decision makers.",
	model.TonePlayful:        "Use a playful, upbeat tone with light humor while keeping the message clear.",
}

type platformStyle struct {
	label    string
	guidance string
}

var platformGuidance = map[model.Platform]platformStyle{
	model.PlatformTwitter: {
		label:    "Twitter/X",
		guidance: "At most 280 characters including the link. Lead with a punchy hook and use no more than two relevant hashtags.",
	},
	model.PlatformLinkedIn: {
		label:    "LinkedIn",
		guidance: "Two or three short paragraphs sharing a professional insight. Close with a question that invites discussion.",
	},
	model.PlatformInstagram: {
		label:    "Instagram",
		guidance: "An energetic caption with short lines, a few fitting emojis and up to five hashtags at the end.",
	},
}

// BacklinkAnchor returns the anchor the model must embed, pointing at href.
func BacklinkAnchor(href string) string {
	return fmt.Sprintf(`<a href="%s" rel="noopener noreferrer" data-backlink="true">%s</a>`, href, BacklinkText)
}

// ToneGuidance returns the instruction for tone, or the default for unknown tones.
func ToneGuidance(tone model.Tone) string {
	if g, ok := toneGuidance[tone]; ok {
		return g
	}
	return defaultToneGuidance
}

// BuildPrompt renders the single user prompt for one output type.
// It is deterministic: equal arguments give equal prompts.
// platforms is only read for the social output and must already carry defaults.
func BuildPrompt(outputType model.OutputType, articleText string, meta model.ArticleMetadata, platforms []model.Platform, tone model.Tone) string {
	anchor := BacklinkAnchor(meta.CanonicalURL)

	var b strings.Builder
	writeContext(&b, meta, tone, anchor)

	b.WriteString("<format>\n")
	switch outputType {
	case model.OutputNewsletter:
		writeNewsletterFormat(&b)
	case model.OutputEmail:
		writeEmailFormat(&b)
	case model.OutputSocial:
		writeSocialFormat(&b, platforms)
	default:
		panic(fmt.Sprintf("ai: unknown output type %q", outputType))
	}
	b.WriteString("</format>\n\n")

	b.WriteString("Article:\n")
	b.WriteString(articleText)
	return b.String()
}

func writeContext(b *strings.Builder, meta model.ArticleMetadata, tone model.Tone, anchor string) {
	b.WriteString("You are an expert content marketer who repurposes blog articles into ready-to-publish marketing copy.\n")
	b.WriteString("The copy must read naturally, stand on its own, and make readers want to click through to the original article.\n\n")

	var details []string
	if meta.Title != nil && *meta.Title != "" {
		details = append(details, "Title: "+*meta.Title)
	}
	if meta.Author != nil && *meta.Author != "" {
		details = append(details, "Author: "+*meta.Author)
	}
	if meta.Excerpt != nil && *meta.Excerpt != "" {
		details = append(details, "Summary: "+*meta.Excerpt)
	}
	if meta.WordCount != nil && *meta.WordCount > 0 {
		details = append(details, fmt.Sprintf("Approximate length: %d words", *meta.WordCount))
	}
	if len(details) > 0 {
		b.WriteString("<article_details>\n")
		b.WriteString(strings.Join(details, "\n"))
		b.WriteString("\n</article_details>\n\n")
	}

	b.WriteString("<guidelines>\n")
	fmt.Fprintf(b, "1. %s\n", ToneGuidance(tone))
	fmt.Fprintf(b, "2. Include this backlink exactly once, copied character for character: %s\n", anchor)
	b.WriteString("3. Only use facts stated in the article. NEVER invent statistics, quotes, names or claims.\n")
	b.WriteString("4. Output ONLY the HTML, without Markdown, code fences, explanations or notes.\n")
	b.WriteString("</guidelines>\n\n")
}

func writeNewsletterFormat(b *strings.Builder) {
	b.WriteString("Write a newsletter feature in semantic HTML (no <html>, <head> or <body> tags):\n")
	b.WriteString("1. An opening <p> that introduces the topic and hooks the reader.\n")
	b.WriteString("2. Two or three short <p> paragraphs covering the main ideas, each no longer than 60 words.\n")
	b.WriteString("3. A <ul> with exactly three <li> key takeaways.\n")
	b.WriteString("4. A closing <p> that ends with the backlink anchor immediately after the closing line.\n")
}

func writeEmailFormat(b *strings.Builder) {
	b.WriteString("Write a marketing email draft in HTML:\n")
	b.WriteString(`1. An <h2 data-role="subject"> subject line of at most 55 characters.` + "\n")
	b.WriteString(`2. A <p data-role="preheader"> preheader of at most 90 characters.` + "\n")
	b.WriteString(`3. A <section data-role="body"> with a greeting, two short paragraphs, a <ul> of highlights, and one call to action that uses the backlink anchor.` + "\n")
	b.WriteString(`4. Optionally, a <p data-role="ps"> postscript.` + "\n")
}

func writeSocialFormat(b *strings.Builder, platforms []model.Platform) {
	b.WriteString("Write one social media post per platform below, in this order.\n")
	b.WriteString(`Wrap each post in <section data-platform="PLATFORM"> using the platform key shown in brackets. `)
	b.WriteString("Each section contains an <h3> with the platform name, one <p> with the post copy, ")
	b.WriteString(`and the backlink anchor appended with natural connecting text such as "Full story:".` + "\n")
	for _, p := range platforms {
		style, ok := platformGuidance[p]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "- %s [%s]: %s\n", style.label, p, style.guidance)
	}
	b.WriteString("Do not repeat the same wording across platforms.\n")
}
