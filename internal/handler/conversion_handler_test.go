package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"repurpose/backend/internal/handler"
	"repurpose/backend/internal/model"
	"repurpose/backend/internal/service"
	"repurpose/backend/internal/service/mock"
)

func TestConversionHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock.NewMockConversionService(ctrl)
	e := newTestServer(handler.NewConversionHandler(svc).RegisterRoutes)

	svc.EXPECT().List(gomock.Any(), 20).Return([]model.Conversion{{ID: 1234567890123456789, Source: "https://example.com"}}, nil)
	svc.EXPECT().List(gomock.Any(), 5).Return([]model.Conversion{}, nil)

	rec := doJSON(e, http.MethodGet, "/api/conversions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Conversions []map[string]any `json:"conversions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Conversions, 1)
	require.Equal(t, "1234567890123456789", body.Conversions[0]["id"])

	rec = doJSON(e, http.MethodGet, "/api/conversions?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestConversionHandler_ListRejectsBadLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newTestServer(handler.NewConversionHandler(mock.NewMockConversionService(ctrl)).RegisterRoutes)

	for _, q := range []string{"0", "101", "abc"} {
		rec := doJSON(e, http.MethodGet, "/api/conversions?limit="+q, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestConversionHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock.NewMockConversionService(ctrl)
	e := newTestServer(handler.NewConversionHandler(svc).RegisterRoutes)

	svc.EXPECT().Get(gomock.Any(), int64(9)).Return(model.Conversion{ID: 9, CanonicalURL: "https://example.com/post"}, nil)
	svc.EXPECT().Get(gomock.Any(), int64(10)).Return(model.Conversion{}, service.ErrNotFound)

	rec := doJSON(e, http.MethodGet, "/api/conversions/9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"canonicalUrl":"https://example.com/post"`)

	rec = doJSON(e, http.MethodGet, "/api/conversions/10", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/conversions/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConversionHandler_PersistenceDisabled(t *testing.T) {
	e := newTestServer(handler.NewConversionHandler(service.NewConversionService(nil)).RegisterRoutes)

	rec := doJSON(e, http.MethodGet, "/api/conversions", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "persistence is not enabled", decodeError(t, rec).Error)
}

func TestHealthHandler(t *testing.T) {
	e := newTestServer(handler.NewHealthHandler("anthropic", "claude-3-5-haiku-latest", true).RegisterRoutes)

	rec := doJSON(e, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok","provider":"anthropic","model":"claude-3-5-haiku-latest","persistence":true}`, rec.Body.String())
}
