package ai

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

// EmptyOutputPlaceholder is returned when the model produced nothing usable.
const EmptyOutputPlaceholder = "<p>No content was generated for this format.</p>"

var (
	fenceLineRe = regexp.MustCompile("(?m)^[ \\t]*```[\\w-]*[ \\t]*(?:\\r?\\n|$)")
	htmlTagRe   = regexp.MustCompile(`<[a-zA-Z][a-zA-Z0-9-]*(\s[^>]*)?/?>`)
	zeroWidth   = strings.NewReplacer(
		"\u200b", "",
		"\u200c", "",
		"\u200d", "",
		"\u2060", "",
		"\ufeff", "",
	)
)

// CleanOutput removes code-fence marker lines and zero-width characters, then trims.
// Text before the first fence is model chatter and is dropped. A fence left open
// by a truncated response is removed as well.
func CleanOutput(raw string) string {
	s := zeroWidth.Replace(raw)
	if loc := fenceLineRe.FindStringIndex(s); loc != nil {
		s = fenceLineRe.ReplaceAllString(s[loc[0]:], "")
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

// SanitizeOutput turns a model response into HTML that always links trackedURL.
// Plain text or Markdown responses are rendered to HTML first.
func SanitizeOutput(raw, trackedURL string) string {
	out := CleanOutput(raw)
	if out == "" {
		out = EmptyOutputPlaceholder
	}
	if !htmlTagRe.MatchString(out) {
		out = renderMarkdown(out)
	}
	if trackedURL == "" {
		return out
	}
	if strings.Contains(out, trackedURL) || strings.Contains(out, html.EscapeString(trackedURL)) {
		return out
	}
	return out + "\n" + fallbackBacklink(trackedURL)
}

func fallbackBacklink(trackedURL string) string {
	escaped := html.EscapeString(trackedURL)
	return fmt.Sprintf(`<p>Read the full article: <a href="%s" rel="noopener noreferrer" data-backlink="true">%s</a></p>`, escaped, escaped)
}

func renderMarkdown(src string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "<p>" + html.EscapeString(src) + "</p>"
	}
	return strings.TrimSpace(buf.String())
}
