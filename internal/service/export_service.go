package service

//go:generate mockgen -source=export_service.go -destination=mock/export_service.go -package=mock

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

type ExportFormat string

const (
	ExportHTML     ExportFormat = "html"
	ExportMarkdown ExportFormat = "markdown"
	ExportText     ExportFormat = "text"
)

// DefaultExportName is the file name used when the title yields no slug.
const DefaultExportName = "repurposed-content"

const maxSlugLength = 80

var slugInvalidRe = regexp.MustCompile(`[^a-z0-9]+`)

const textBlocks = "h1, h2, h3, h4, h5, h6, p, li, blockquote, pre"

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ExportService interface {
	// Export renders edited output HTML as a downloadable file.
	Export(format ExportFormat, title, htmlContent string) (*ExportFile, error)
}

type exportService struct {
	policy   *bluemonday.Policy
	markdown *converter.Converter
}

func NewExportService() ExportService {
	p := bluemonday.UGCPolicy()
	p.AllowElements("section")
	p.AllowDataAttributes()

	return &exportService{
		policy: p,
		markdown: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

func (s *exportService) Export(format ExportFormat, title, htmlContent string) (*ExportFile, error) {
	var details []string
	switch format {
	case ExportHTML, ExportMarkdown, ExportText:
	default:
		details = append(details, "format must be html, markdown or text")
	}
	if strings.TrimSpace(htmlContent) == "" {
		details = append(details, "html is required")
	}
	if len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	title = strings.TrimSpace(title)
	clean := s.policy.Sanitize(htmlContent)
	name := Slugify(title)

	switch format {
	case ExportMarkdown:
		md, err := s.markdown.ConvertString(clean)
		if err != nil {
			return nil, fmt.Errorf("convert to markdown: %w", err)
		}
		if title != "" {
			md = "# " + title + "\n\n" + md
		}
		return &ExportFile{
			Filename:    name + ".md",
			ContentType: "text/markdown; charset=utf-8",
			Content:     []byte(strings.TrimSpace(md) + "\n"),
		}, nil
	case ExportText:
		text, err := plainText(clean)
		if err != nil {
			return nil, err
		}
		if title != "" {
			text = title + "\n\n" + text
		}
		return &ExportFile{
			Filename:    name + ".txt",
			ContentType: "text/plain; charset=utf-8",
			Content:     []byte(text + "\n"),
		}, nil
	default:
		return &ExportFile{
			Filename:    name + ".html",
			ContentType: "text/html; charset=utf-8",
			Content:     []byte(standaloneDocument(title, clean)),
		}, nil
	}
}

// Slugify turns a title into a file name stem.
func Slugify(title string) string {
	slug := slugInvalidRe.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	if slug == "" {
		return DefaultExportName
	}
	return slug
}

func standaloneDocument(title, body string) string {
	docTitle := title
	if docTitle == "" {
		docTitle = "Repurposed content"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(docTitle))
	b.WriteString("</head>\n<body>\n")
	if title != "" {
		fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(title))
	}
	b.WriteString(body)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

// plainText keeps one paragraph per block element. List items get a dash.
func plainText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var parts []string
	doc.Find(textBlocks).Each(func(_ int, sel *goquery.Selection) {
		if sel.ParentsFiltered(textBlocks).Length() > 0 {
			return
		}
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" {
			return
		}
		if goquery.NodeName(sel) == "li" {
			text = "- " + text
		}
		parts = append(parts, text)
	})

	if len(parts) == 0 {
		return strings.Join(strings.Fields(doc.Text()), " "), nil
	}
	return strings.Join(parts, "\n\n"), nil
}
