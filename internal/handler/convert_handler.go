package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"repurpose/backend/internal/model"
	"repurpose/backend/internal/service"
)

type ConvertHandler struct {
	service service.ConvertService
}

type convertRequest struct {
	SourceType      string   `json:"sourceType"`
	Source          string   `json:"source"`
	OutputTypes     []string `json:"outputTypes"`
	SocialPlatforms []string `json:"socialPlatforms"`
	Tone            string   `json:"tone"`
	CanonicalURL    string   `json:"canonicalUrl"`
	ArticleTitle    string   `json:"articleTitle"`
	ArticleAuthor   string   `json:"articleAuthor"`
}

type convertResponse struct {
	Outputs    map[model.OutputType]string `json:"outputs"`
	Metadata   model.ArticleMetadata       `json:"metadata"`
	RawContent string                      `json:"rawContent"`
}

func NewConvertHandler(service service.ConvertService) *ConvertHandler {
	return &ConvertHandler{service: service}
}

func (h *ConvertHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/convert", h.Convert)
}

// Convert repurposes an article into marketing formats.
// @Summary Convert an article
// @Description Fetch an article by URL or take pasted text, then generate newsletter, social and email copy with tracked backlinks.
// @Tags convert
// @Accept json
// @Produce json
// @Param request body convertRequest true "Conversion request"
// @Success 200 {object} convertResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /convert [post]
func (h *ConvertHandler) Convert(c echo.Context) error {
	var req convertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "invalid request",
			Details: []string{"request body must be a JSON object"},
		})
	}

	result, err := h.service.Convert(c.Request().Context(), req.toInput())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, convertResponse{
		Outputs:    result.Outputs,
		Metadata:   result.Metadata,
		RawContent: result.RawContent,
	})
}

func (r convertRequest) toInput() service.ConvertInput {
	in := service.ConvertInput{
		SourceType:    model.SourceType(r.SourceType),
		Source:        r.Source,
		Tone:          model.Tone(r.Tone),
		CanonicalURL:  r.CanonicalURL,
		ArticleTitle:  r.ArticleTitle,
		ArticleAuthor: r.ArticleAuthor,
	}
	for _, t := range r.OutputTypes {
		in.OutputTypes = append(in.OutputTypes, model.OutputType(t))
	}
	for _, p := range r.SocialPlatforms {
		in.SocialPlatforms = append(in.SocialPlatforms, model.Platform(p))
	}
	return in
}
