package api

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"pickmycollege/internal/metrics"
	"pickmycollege/internal/models"
	"pickmycollege/internal/recommender"
	"pickmycollege/internal/validation"
)

// Request defaults and bounds.
const (
	defaultCategory      = "GM"
	defaultCount         = 15
	maxCount             = 50
	defaultSummaryLength = 5
	maxSummaryLength     = 10
)

// recommendationPipeline is the surface of the recommender the handler uses.
type recommendationPipeline interface {
	Recommend(ctx context.Context, req recommender.Request) (*recommender.Response, error)
}

// RecommendHandler serves the recommendation endpoint.
type RecommendHandler struct {
	pipeline recommendationPipeline
}

// NewRecommendHandler creates a recommendation handler.
func NewRecommendHandler(pipeline recommendationPipeline) *RecommendHandler {
	return &RecommendHandler{pipeline: pipeline}
}

// Recommend handles GET /api/recommendations.
//
// Query parameters: rank (required integer), categories (CSV, default
// "GM"), location (CSV), branches (CSV), count (default 15), model
// ("perplexity" or "grok", default perplexity), summary_length
// (default 5). Only a malformed rank is a hard failure; everything else
// degrades to defaults or an empty list.
func (h *RecommendHandler) Recommend(c fiber.Ctx) error {
	rankParam := c.Query("rank")
	if rankParam == "" {
		return jsonError(c, fiber.StatusBadRequest, "rank is required")
	}
	rank, err := strconv.Atoi(rankParam)
	if err != nil || rank <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "rank must be a positive integer")
	}

	categories := validation.NormalizeCategories(c.Query("categories", c.Query("category")))
	if len(categories) == 0 {
		categories = []string{defaultCategory}
	}

	req := recommender.Request{
		Rank:          rank,
		Categories:    categories,
		Locations:     validation.SplitFilter(c.Query("location")),
		Branches:      validation.SplitFilter(c.Query("branches")),
		Count:         validation.ClampCount(fiber.Query[int](c, "count"), defaultCount, maxCount),
		Preferred:     parseModel(c.Query("model")),
		SummaryLength: validation.ClampCount(fiber.Query[int](c, "summary_length"), defaultSummaryLength, maxSummaryLength),
	}

	resp, err := h.pipeline.Recommend(c.Context(), req)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to compute recommendations")
	}

	metrics.RecordRecommendation(len(resp.Recommendations))
	return c.JSON(resp)
}

// parseModel maps the model preference parameter to a provider source.
// Unknown values fall back to the primary provider.
func parseModel(raw string) models.Source {
	if raw == string(models.SourceGroq) {
		return models.SourceGroq
	}
	return models.SourcePerplexity
}
