package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"repurpose/backend/internal/service"
)

const exportSample = `<h2 data-role="subject">Ship weekly</h2>` +
	`<p>Small releases keep <strong>risk</strong> low.</p>` +
	`<ul><li>Automate tests</li><li><p>Review early</p></li></ul>` +
	`<p><a href="https://example.com/post?utm_source=repurpose" data-backlink="true">Read the full article</a></p>`

func TestExportService_Markdown(t *testing.T) {
	svc := service.NewExportService()

	file, err := svc.Export(service.ExportMarkdown, "Ship Weekly!", exportSample)
	require.NoError(t, err)
	require.Equal(t, "ship-weekly.md", file.Filename)
	require.Equal(t, "text/markdown; charset=utf-8", file.ContentType)

	md := string(file.Content)
	require.True(t, strings.HasPrefix(md, "# Ship Weekly!\n\n"))
	require.Contains(t, md, "## Ship weekly")
	require.Contains(t, md, "**risk**")
	require.Contains(t, md, "Automate tests")
	require.Contains(t, md, "(https://example.com/post?utm_source=repurpose)")
	require.NotContains(t, md, "<p>")
}

func TestExportService_Text(t *testing.T) {
	svc := service.NewExportService()

	file, err := svc.Export(service.ExportText, "", exportSample)
	require.NoError(t, err)
	require.Equal(t, "repurposed-content.txt", file.Filename)
	require.Equal(t, "text/plain; charset=utf-8", file.ContentType)
	require.Equal(t,
		"Ship weekly\n\nSmall releases keep risk low.\n\n- Automate tests\n\n- Review early\n\nRead the full article\n",
		string(file.Content),
	)
}

func TestExportService_HTMLDocument(t *testing.T) {
	svc := service.NewExportService()

	file, err := svc.Export(service.ExportHTML, "Tips & <Tricks>", exportSample+`<script>alert(1)</script>`)
	require.NoError(t, err)
	require.Equal(t, "tips-tricks.html", file.Filename)

	doc := string(file.Content)
	require.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	require.Contains(t, doc, "<title>Tips &amp; &lt;Tricks&gt;</title>")
	require.Contains(t, doc, `data-role="subject"`)
	require.Contains(t, doc, `data-backlink="true"`)
	require.NotContains(t, doc, "<script>")
}

func TestExportService_Validation(t *testing.T) {
	svc := service.NewExportService()

	_, err := svc.Export("pdf", "t", "  ")
	require.ErrorIs(t, err, service.ErrValidation)

	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, []string{"format must be html, markdown or text", "html is required"}, verr.Details)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World", "hello-world"},
		{"  --  ", service.DefaultExportName},
		{"", service.DefaultExportName},
		{"Café 2025: What's New?", "caf-2025-what-s-new"},
		{strings.Repeat("ab ", 40), strings.TrimRight(strings.Repeat("ab-", 27)[:80], "-")},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, service.Slugify(tt.in), tt.in)
	}
}
