package handler_test

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"repurpose/backend/internal/handler"
	"repurpose/backend/internal/service"
	"repurpose/backend/internal/service/mock"
)

func TestExportHandler_Download(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock.NewMockExportService(ctrl)
	e := newTestServer(handler.NewExportHandler(svc).RegisterRoutes)

	svc.EXPECT().
		Export(service.ExportMarkdown, "My Post", "<p>Hi</p>").
		Return(&service.ExportFile{
			Filename:    "my-post.md",
			ContentType: "text/markdown; charset=utf-8",
			Content:     []byte("# My Post\n\nHi\n"),
		}, nil)

	rec := doJSON(e, http.MethodPost, "/api/export", `{"format":"markdown","title":"My Post","html":"<p>Hi</p>"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
	require.Equal(t, `attachment; filename="my-post.md"`, rec.Header().Get(echo.HeaderContentDisposition))
	require.Equal(t, "# My Post\n\nHi\n", rec.Body.String())
}

func TestExportHandler_ValidationError(t *testing.T) {
	e := newTestServer(handler.NewExportHandler(service.NewExportService()).RegisterRoutes)

	rec := doJSON(e, http.MethodPost, "/api/export", `{"format":"docx","html":"<p>Hi</p>"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"format must be html, markdown or text"}, decodeError(t, rec).Details)
}
