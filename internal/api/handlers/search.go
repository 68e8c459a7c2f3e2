package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ytgate/ytgate/internal/models"
	"github.com/ytgate/ytgate/internal/utils"
)

type SearchHandler struct{}

func NewSearchHandler() *SearchHandler {
	return &SearchHandler{}
}

// Search godoc
// @Summary Search videos (stub)
// @Description Validates the query but the search backend is not implemented; always returns an empty result list
// @Tags search
// @Produce json
// @Param q query string true "Search query, minimum 2 characters"
// @Param limit query int false "Maximum number of results, default 10"
// @Success 200 {object} models.SearchResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		errorResponse(c, utils.NewValidationError("q query parameter is required and must be at least 2 characters"))
		return
	}

	// Search backend is not wired up; callers must not rely on results.
	c.JSON(http.StatusOK, models.SearchResponse{
		Query:   req.Query,
		Results: []interface{}{},
		Message: "Search is not implemented yet",
	})
}
