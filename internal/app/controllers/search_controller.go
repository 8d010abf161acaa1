package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/depot/internal/app/models/dto"
	"github.com/ekurt/depot/internal/app/services"
	"github.com/ekurt/depot/internal/middleware"
)

// SearchController handles global search queries
type SearchController struct {
	searchService *services.SearchService
}

// NewSearchController creates a new SearchController
func NewSearchController(searchService *services.SearchService) *SearchController {
	return &SearchController{
		searchService: searchService,
	}
}

// Search runs a global search
// @Summary Global search
// @Description Runs one case-insensitive substring search across purchase items, stock items and borrow records
// @Tags search
// @Accept json
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} dto.APIResponse{data=dto.SearchResponse} "Search results"
// @Failure 400 {object} dto.ErrorResponse "Missing or empty search term"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /search [get]
func (c *SearchController) Search(ctx *gin.Context) {
	term := ctx.Query("q")

	results, err := c.searchService.Search(ctx, term)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.SearchResponse{
			Query:     term,
			Purchases: results.Purchases,
			Stock:     results.Stock,
			Borrows:   results.Borrows,
			Total:     results.Total(),
		},
		Timestamp: time.Now(),
	})
}
