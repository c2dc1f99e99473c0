// Package article fetches blog pages and turns them into readable text and metadata.
package article

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"repurpose/backend/internal/logger"
	"repurpose/backend/internal/model"
)

// AverageWordLength turns a character count into an approximate word count.
const AverageWordLength = 5

// ErrExtraction means the page was fetched but held no readable text.
var ErrExtraction = errors.New("could not find readable content on the page; try pasting the article text instead")

// Article is the extracted content of one page.
type Article struct {
	// Content is the cleaned plain text sent to the model.
	Content  string
	Metadata model.ArticleMetadata
	// HTML is the readability article body, sanitized for display.
	HTML string
}

type Extractor struct {
	fetcher Fetcher
	// cleaner strips scripts, forms and embeds before readability sees the page.
	cleaner   *bluemonday.Policy
	sanitizer *bluemonday.Policy
}

func NewExtractor(fetcher Fetcher) *Extractor {
	p := bluemonday.UGCPolicy()
	p.AllowElements("article", "section", "header", "footer", "figure", "figcaption")
	p.AllowAttrs("lang", "dir").Globally()

	return &Extractor{fetcher: fetcher, cleaner: newPageCleaner(), sanitizer: p}
}

// newPageCleaner keeps document structure, head metadata and the class/id hints
// readability scores on.
func newPageCleaner() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("html", "head", "body", "title", "meta", "main", "article", "section", "header", "footer", "nav", "aside", "figure", "figcaption")
	p.AllowAttrs("name", "property", "content", "itemprop").OnElements("meta")
	p.AllowAttrs("class", "lang", "dir", "itemprop").Globally()
	return p
}

// Extract fetches rawURL and extracts its article text and metadata.
// It fails with *FetchError when the fetch does not succeed and with
// ErrExtraction when neither readability nor the page body yield text.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Article, error) {
	page, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		logger.Warn("article fetch failed", "module", "article", "action", "fetch", "resource", "article", "result", "failed", "url", rawURL, "error", err)
		return nil, err
	}
	return e.ExtractPage(page)
}

// ExtractPage runs extraction on an already fetched page.
func (e *Extractor) ExtractPage(page *Page) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", ErrExtraction, err)
	}

	canonical := ResolveCanonical(doc, page.URL)
	pageTitle := collapseSpaces(doc.Find("title").First().Text())

	var (
		text     string
		rendered string
		meta     readableMeta
	)
	parser := readability.NewParser()
	parsed, err := parser.Parse(bytes.NewReader(e.cleaner.SanitizeBytes(page.Body)), page.URL)
	if err != nil {
		logger.Debug("readability parse failed", "module", "article", "action", "parse", "resource", "article", "result", "failed", "url", page.URL.String(), "error", err)
	} else {
		text, rendered, meta = renderReadable(parsed)
	}

	readable := normalizeText(text)
	content := readable
	if content == "" {
		content = visibleText(doc)
	}
	if content == "" {
		logger.Warn("article empty", "module", "article", "action", "parse", "resource", "article", "result", "failed", "url", page.URL.String())
		return nil, ErrExtraction
	}

	metadata := model.ArticleMetadata{
		CanonicalURL: canonical.Href,
		Title:        firstNonEmpty(meta.title, pageTitle),
		Author:       firstNonEmpty(meta.byline),
		Excerpt:      firstNonEmpty(meta.excerpt),
	}
	if n := utf8.RuneCountInString(readable); n > 0 {
		words := n / AverageWordLength
		metadata.WordCount = &words
	}

	logger.Info("article extracted", "module", "article", "action", "parse", "resource", "article", "result", "ok",
		"url", page.URL.String(), "canonical", canonical.Href, "canonical_source", string(canonical.Source), "chars", utf8.RuneCountInString(content))

	return &Article{
		Content:  content,
		Metadata: metadata,
		HTML:     e.sanitizer.Sanitize(rendered),
	}, nil
}

type readableMeta struct {
	title   string
	byline  string
	excerpt string
}

func renderReadable(a readability.Article) (text, rendered string, meta readableMeta) {
	var textBuf, htmlBuf strings.Builder
	if err := a.RenderText(&textBuf); err == nil {
		text = textBuf.String()
	}
	if err := a.RenderHTML(&htmlBuf); err == nil {
		rendered = htmlBuf.String()
	}
	meta = readableMeta{
		title:   collapseSpaces(a.Title()),
		byline:  collapseSpaces(a.Byline()),
		excerpt: collapseSpaces(a.Excerpt()),
	}
	return text, rendered, meta
}

// visibleText returns the page body text without script-like elements, whitespace collapsed.
func visibleText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, template, svg, iframe").Remove()
	body := doc.Find("body")
	if body.Length() == 0 {
		return collapseSpaces(doc.Text())
	}
	return collapseSpaces(body.Text())
}

var (
	inlineSpaceRe = regexp.MustCompile(`[ \t\f\v\r]+`)
	blankLinesRe  = regexp.MustCompile(`\n\s*\n+`)
	anySpaceRe    = regexp.MustCompile(`\s+`)
)

// normalizeText collapses runs of spaces and keeps single blank lines between paragraphs.
func normalizeText(s string) string {
	s = inlineSpaceRe.ReplaceAllString(s, " ")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(anySpaceRe.ReplaceAllString(s, " "))
}

func firstNonEmpty(values ...string) *string {
	for _, v := range values {
		if v != "" {
			return &v
		}
	}
	return nil
}
