package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/depot/internal/app/models/dto"
	"github.com/ekurt/depot/internal/app/services"
	"github.com/ekurt/depot/internal/middleware"
)

// AnalyticsController serves the inventory dashboard
type AnalyticsController struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// GetDashboard retrieves the inventory overview
// @Summary Get dashboard
// @Description Retrieves aggregated counters plus recent purchases, low stock items and active borrows
// @Tags analytics
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard [get]
func (c *AnalyticsController) GetDashboard(ctx *gin.Context) {
	dashboard, err := c.analyticsService.GetDashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.DashboardResponse{
			Stats:           dashboard.Stats,
			RecentPurchases: dashboard.RecentPurchases,
			LowStockItems:   dashboard.LowStockItems,
			ActiveBorrows:   dashboard.ActiveBorrows,
		},
		Timestamp: time.Now(),
	})
}
