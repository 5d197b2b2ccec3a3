package handler

import (
	"context"
	"net/http"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/dto"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/gateway/genai"
	"github.com/labstack/echo/v4"
)

// ContentGateway is the slice of the generative client the advisor needs.
type ContentGateway interface {
	ExpandIdea(ctx context.Context, seed string) (*genai.ExpandedContent, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type AdvisorHandler struct {
	gateway ContentGateway
}

func NewAdvisorHandler(gateway ContentGateway) *AdvisorHandler {
	return &AdvisorHandler{gateway: gateway}
}

func (h *AdvisorHandler) RegisterRoutes(e *echo.Echo) {
	advisor := e.Group("/api/v1/advisor")
	advisor.POST("/expand", h.Expand)
	advisor.POST("/image", h.Image)
}

func (h *AdvisorHandler) Expand(c echo.Context) error {
	var req dto.ExpandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Seed == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "seed is required")
	}

	content, err := h.gateway.ExpandIdea(c.Request().Context(), req.Seed)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, content)
}

func (h *AdvisorHandler) Image(c echo.Context) error {
	var req dto.ImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Prompt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt is required")
	}

	image, err := h.gateway.GenerateImage(c.Request().Context(), req.Prompt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ImageResponse{ImageBase64: image})
}
