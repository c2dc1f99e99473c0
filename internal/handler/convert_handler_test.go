package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"repurpose/backend/internal/handler"
	"repurpose/backend/internal/model"
	"repurpose/backend/internal/service"
	"repurpose/backend/internal/service/ai"
	"repurpose/backend/internal/service/article"
	"repurpose/backend/internal/service/mock"
)

type errorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

func newTestServer(register func(g *echo.Group)) *echo.Echo {
	e := echo.New()
	register(e.Group("/api"))
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestConvertHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock.NewMockConvertService(ctrl)
	e := newTestServer(handler.NewConvertHandler(svc).RegisterRoutes)

	svc.EXPECT().
		Convert(gomock.Any(), service.ConvertInput{
			SourceType:      model.SourceURL,
			Source:          "https://example.com/post",
			OutputTypes:     []model.OutputType{model.OutputSocial},
			SocialPlatforms: []model.Platform{model.PlatformLinkedIn},
			Tone:            model.TonePlayful,
		}).
		Return(&model.ConversionResult{
			Outputs:    map[model.OutputType]string{model.OutputSocial: "<section></section>"},
			Metadata:   model.ArticleMetadata{CanonicalURL: "https://example.com/post"},
			RawContent: "Body",
		}, nil)

	rec := doJSON(e, http.MethodPost, "/api/convert", `{
		"sourceType": "url",
		"source": "https://example.com/post",
		"outputTypes": ["social"],
		"socialPlatforms": ["linkedin"],
		"tone": "playful"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "<section></section>", body["outputs"].(map[string]any)["social"])
	require.Equal(t, "https://example.com/post", body["metadata"].(map[string]any)["canonicalUrl"])
	require.Equal(t, "Body", body["rawContent"])
}

func TestConvertHandler_MissingCanonicalForText(t *testing.T) {
	svc := service.NewConvertService(nil, ai.Config{Provider: ai.ProviderOpenAI, APIKey: "k"}, nil, nil, 0, nil)
	e := newTestServer(handler.NewConvertHandler(svc).RegisterRoutes)

	rec := doJSON(e, http.MethodPost, "/api/convert", `{"sourceType":"text","source":"Some article body.","outputTypes":["newsletter"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeError(t, rec)
	require.Contains(t, body.Error, "canonical URL is required")
	require.Len(t, body.Details, 1)
	require.Contains(t, body.Details[0], "backlink")
}

func TestConvertHandler_EmptyOutputTypes(t *testing.T) {
	svc := service.NewConvertService(nil, ai.Config{Provider: ai.ProviderOpenAI, APIKey: "k"}, nil, nil, 0, nil)
	e := newTestServer(handler.NewConvertHandler(svc).RegisterRoutes)

	rec := doJSON(e, http.MethodPost, "/api/convert", `{"sourceType":"url","source":"https://example.com/post","outputTypes":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeError(t, rec)
	require.Contains(t, strings.ToLower(body.Error), "select at least one output format.")
	require.Equal(t, []string{"Select at least one output format."}, body.Details)
}

func TestConvertHandler_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newTestServer(handler.NewConvertHandler(mock.NewMockConvertService(ctrl)).RegisterRoutes)

	rec := doJSON(e, http.MethodPost, "/api/convert", `{"sourceType":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotEmpty(t, decodeError(t, rec).Details)
}

func TestConvertHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		contains string
	}{
		{
			name:     "fetch",
			err:      &article.FetchError{URL: "https://example.com/x", StatusCode: http.StatusNotFound},
			status:   http.StatusInternalServerError,
			contains: "404",
		},
		{
			name:     "extraction",
			err:      article.ErrExtraction,
			status:   http.StatusInternalServerError,
			contains: "pasting the article text",
		},
		{
			name:     "configuration",
			err:      errors.Join(service.ErrConfiguration, ai.ErrMissingAPIKey),
			status:   http.StatusInternalServerError,
			contains: "AI provider is not configured",
		},
		{
			name:     "model",
			err:      &service.ModelError{OutputType: model.OutputEmail, Err: errors.New("boom")},
			status:   http.StatusInternalServerError,
			contains: "email",
		},
		{
			name:     "unexpected",
			err:      errors.New("secret internals"),
			status:   http.StatusInternalServerError,
			contains: "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := mock.NewMockConvertService(ctrl)
			e := newTestServer(handler.NewConvertHandler(svc).RegisterRoutes)
			svc.EXPECT().Convert(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			rec := doJSON(e, http.MethodPost, "/api/convert", `{"sourceType":"url","source":"https://example.com/x","outputTypes":["email"]}`)
			require.Equal(t, tt.status, rec.Code)

			body := decodeError(t, rec)
			require.Contains(t, body.Error, tt.contains)
			require.Empty(t, body.Details)
			require.NotContains(t, body.Error, "secret")
		})
	}
}
