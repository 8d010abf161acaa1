package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/app/models/dto"
	"github.com/ekurt/depot/internal/app/services"
	"github.com/ekurt/depot/internal/middleware"
)

// StockController handles stock item and transaction operations
type StockController struct {
	stockService *services.StockService
}

// NewStockController creates a new StockController
func NewStockController(stockService *services.StockService) *StockController {
	return &StockController{
		stockService: stockService,
	}
}

// CreateStockItem handles stock item creation
// @Summary Create a new stock item
// @Description Creates a stock item with an optional initial quantity. A positive initial quantity is logged as an incoming transaction.
// @Tags stock
// @Accept json
// @Produce json
// @Param request body dto.CreateStockItemRequest true "Stock item information"
// @Success 201 {object} dto.APIResponse{data=models.StockItem} "Stock item created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stock [post]
func (c *StockController) CreateStockItem(ctx *gin.Context) {
	var req dto.CreateStockItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid stock item data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	item, err := c.stockService.CreateStockItem(ctx, req.Name, req.Quantity, req.PurchasePrice, req.Location, req.CourseTag)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      item,
		Timestamp: time.Now(),
	})
}

// GetStockItem retrieves a stock item by ID
// @Summary Get stock item by ID
// @Description Retrieves a specific stock item by its ID
// @Tags stock
// @Accept json
// @Produce json
// @Param id path int true "Stock item ID"
// @Success 200 {object} dto.APIResponse{data=models.StockItem} "Stock item retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid stock item ID"
// @Failure 404 {object} dto.ErrorResponse "Stock item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stock/{id} [get]
func (c *StockController) GetStockItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	item, err := c.stockService.GetStockItem(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      item,
		Timestamp: time.Now(),
	})
}

// GetAllStockItems retrieves all stock items
// @Summary Get all stock items
// @Description Retrieves all stock items, newest first
// @Tags stock
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StockItemListResponse} "Stock items retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stock [get]
func (c *StockController) GetAllStockItems(ctx *gin.Context) {
	items, err := c.stockService.ListStockItems(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.StockItemListResponse{
			Items: items,
			Total: len(items),
		},
		Timestamp: time.Now(),
	})
}

// UpdateStockItem updates the descriptive fields of a stock item
// @Summary Update stock item details
// @Description Updates name, price, location or course tag. Quantities cannot be changed here; use the transactions endpoint.
// @Tags stock
// @Accept json
// @Produce json
// @Param id path int true "Stock item ID"
// @Param request body dto.UpdateStockItemRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.StockItem} "Stock item updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Stock item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stock/{id} [put]
func (c *StockController) UpdateStockItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStockItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid stock item data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	item, err := c.stockService.UpdateStockItem(ctx, id, services.StockDetailsUpdate{
		Name:          req.Name,
		PurchasePrice: req.PurchasePrice,
		Location:      req.Location,
		CourseTag:     req.CourseTag,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      item,
		Timestamp: time.Now(),
	})
}

// RecordTransaction records a manual stock movement
// @Summary Record a stock transaction
// @Description Applies an incoming or outgoing quantity change and appends it to the audit log. Outgoing movements that would drive stock negative are rejected.
// @Tags stock
// @Accept json
// @Produce json
// @Param id path int true "Stock item ID"
// @Param request body dto.RecordTransactionRequest true "Transaction information"
// @Success 201 {object} dto.APIResponse{data=models.StockTransaction} "Transaction recorded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Stock item not found"
// @Failure 409 {object} dto.ErrorResponse "Quantity would go negative"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stock/{id}/transactions [post]
func (c *StockController) RecordTransaction(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RecordTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid transaction data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	txn, err := c.stockService.RecordTransaction(ctx, id, models.TransactionType(req.Type), req.Quantity, req.Reason, req.PerformedBy)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      txn,
		Timestamp: time.Now(),
	})
}

// GetTransactions retrieves the movement history of a stock item
// @Summary Get stock item transactions
// @Description Retrieves all transactions of a stock item, newest first
// @Tags stock
// @Accept json
// @Produce json
// @Param id path int true "Stock item ID"
// @Success 200 {object} dto.APIResponse{data=dto.TransactionListResponse} "Transactions retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid stock item ID"
// @Failure 404 {object} dto.ErrorResponse "Stock item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stock/{id}/transactions [get]
func (c *StockController) GetTransactions(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	txns, err := c.stockService.ListTransactions(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.TransactionListResponse{
			Transactions: txns,
			Total:        len(txns),
		},
		Timestamp: time.Now(),
	})
}

// parseIDParam extracts a positive integer path parameter or writes a 400.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
