package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"NewsTimeline/internal/domain"
	"NewsTimeline/internal/usecase"
)

// Searcher runs one news search.
type Searcher interface {
	Search(ctx context.Context, req domain.SearchRequest) (domain.Result, error)
}

type SearchHandler struct {
	searcher Searcher
	logger   *slog.Logger
}

func NewSearchHandler(searcher Searcher, logger *slog.Logger) *SearchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandler{searcher: searcher, logger: logger}
}

// Search handles POST /search.
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	res, err := h.searcher.Search(c.Request.Context(), req.toDomain())
	if err != nil {
		status, msg := errorStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("search failed", "keyword", req.Keyword, "error", err, "request_id", c.GetString(requestIDKey))
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, toSearchResponse(res))
}

// Health handles GET /health.
func (h *SearchHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Service: "news-timeline"})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		msg := strings.TrimPrefix(err.Error(), usecase.ErrInvalidRequest.Error()+": ")
		return http.StatusBadRequest, msg
	case errors.Is(err, usecase.ErrUpstream):
		return http.StatusBadGateway, "Could not fetch news right now. Please try again later."
	default:
		return http.StatusInternalServerError, "An unexpected error occurred"
	}
}
