package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

type SearchHandler struct {
	embedder services.Embedder
	index    services.ResumeIndex
}

func NewSearchHandler(embedder services.Embedder, index services.ResumeIndex) *SearchHandler {
	return &SearchHandler{
		embedder: embedder,
		index:    index,
	}
}

// HandleSearch handles GET /search. Finds previously screened resumes similar
// to the query text.
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	if h.index == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Resume index is disabled",
		})
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query parameter 'q' is required",
		})
	}

	limit := c.QueryInt("limit", 5)
	if limit < 1 || limit > 50 {
		limit = 5
	}

	embedding, err := h.embedder.Embed(c.Context(), query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to embed query",
		})
	}

	matches, err := h.index.SearchSimilar(c.Context(), embedding, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	results := make([]models.SearchResultItem, 0, len(matches))
	for _, match := range matches {
		results = append(results, models.SearchResultItem{
			DocumentID: match.ID,
			Name:       match.Name,
			Score:      match.Score,
			Snippet:    match.Snippet,
		})
	}

	return c.JSON(models.SearchResponse{
		Query:   query,
		Results: results,
	})
}
