package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ekurt/depot/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	stockController *controllers.StockController,
	borrowController *controllers.BorrowController,
	courseController *controllers.CourseController,
	purchaseController *controllers.PurchaseController,
	searchController *controllers.SearchController,
	analyticsController *controllers.AnalyticsController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Stock routes
	stock := v1.Group("/stock")
	{
		stock.POST("", stockController.CreateStockItem)
		stock.GET("", stockController.GetAllStockItems)
		stock.GET("/:id", stockController.GetStockItem)
		stock.PUT("/:id", stockController.UpdateStockItem)
		stock.POST("/:id/transactions", stockController.RecordTransaction)
		stock.GET("/:id/transactions", stockController.GetTransactions)
	}

	// Borrow routes
	borrows := v1.Group("/borrows")
	{
		borrows.POST("", borrowController.Checkout)
		borrows.GET("", borrowController.GetAllBorrowRecords)
		borrows.POST("/:id/return", borrowController.Return)
	}

	// Course routes
	courses := v1.Group("/courses")
	{
		courses.POST("", courseController.CreateCourse)
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/:id", courseController.GetCourse)
		courses.POST("/:id/items", courseController.AddItems)
		courses.POST("/:id/reserve", courseController.ReserveItems)
		courses.POST("/:id/complete", courseController.CompleteCourse)
	}

	// Purchase routes
	purchases := v1.Group("/purchases")
	{
		purchases.POST("", purchaseController.CreatePurchaseItem)
		purchases.GET("", purchaseController.GetAllPurchaseItems)
		purchases.GET("/:id", purchaseController.GetPurchaseItem)
		purchases.PUT("/:id/status", purchaseController.UpdateStatus)
		purchases.DELETE("/:id", purchaseController.DeletePurchaseItem)
	}

	// Search and dashboard
	v1.GET("/search", searchController.Search)
	v1.GET("/dashboard", analyticsController.GetDashboard)
}
