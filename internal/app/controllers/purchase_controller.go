package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/depot/internal/app/models"
	"github.com/ekurt/depot/internal/app/models/dto"
	"github.com/ekurt/depot/internal/app/services"
	"github.com/ekurt/depot/internal/middleware"
)

// PurchaseController handles purchase pipeline operations
type PurchaseController struct {
	purchaseService *services.PurchaseService
}

// NewPurchaseController creates a new PurchaseController
func NewPurchaseController(purchaseService *services.PurchaseService) *PurchaseController {
	return &PurchaseController{
		purchaseService: purchaseService,
	}
}

// CreatePurchaseItem handles purchase item creation
// @Summary Create a new purchase item
// @Description Creates a purchase item in the considering state
// @Tags purchases
// @Accept json
// @Produce json
// @Param request body dto.CreatePurchaseItemRequest true "Purchase item information"
// @Success 201 {object} dto.APIResponse{data=models.PurchaseItem} "Purchase item created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /purchases [post]
func (c *PurchaseController) CreatePurchaseItem(ctx *gin.Context) {
	var req dto.CreatePurchaseItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid purchase item data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	item, err := c.purchaseService.CreatePurchaseItem(ctx, services.PurchaseInput{
		Name:       req.Name,
		WhereToBuy: req.WhereToBuy,
		Price:      req.Price,
		Quantity:   req.Quantity,
		CourseTag:  req.CourseTag,
		Link:       req.Link,
	})
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

// GetPurchaseItem retrieves a purchase item by ID
// @Summary Get purchase item by ID
// @Description Retrieves a specific purchase item by its ID
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path int true "Purchase item ID"
// @Success 200 {object} dto.APIResponse{data=models.PurchaseItem} "Purchase item retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid purchase item ID"
// @Failure 404 {object} dto.ErrorResponse "Purchase item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /purchases/{id} [get]
func (c *PurchaseController) GetPurchaseItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	item, err := c.purchaseService.GetPurchaseItem(ctx, id)
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

// GetAllPurchaseItems retrieves all purchase items
// @Summary Get all purchase items
// @Description Retrieves all purchase items, newest first
// @Tags purchases
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PurchaseItemListResponse} "Purchase items retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /purchases [get]
func (c *PurchaseController) GetAllPurchaseItems(ctx *gin.Context) {
	items, err := c.purchaseService.ListPurchaseItems(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PurchaseItemListResponse{
			Items: items,
			Total: len(items),
		},
		Timestamp: time.Now(),
	})
}

// UpdateStatus advances a purchase through its pipeline
// @Summary Update purchase status
// @Description Transitions a purchase item to a new status. Moving to arrived or stored merges the purchased quantity into stock; afterwards the status is frozen.
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path int true "Purchase item ID"
// @Param request body dto.UpdatePurchaseStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.PurchaseItem} "Purchase status updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Purchase item not found"
// @Failure 409 {object} dto.ErrorResponse "Purchase already arrived"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /purchases/{id}/status [put]
func (c *PurchaseController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePurchaseStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	item, err := c.purchaseService.UpdateStatus(ctx, id, models.PurchaseStatus(req.Status))
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

// DeletePurchaseItem removes a purchase item
// @Summary Delete purchase item
// @Description Removes a purchase item from the pipeline
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path int true "Purchase item ID"
// @Success 200 {object} dto.APIResponse "Purchase item deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid purchase item ID"
// @Failure 404 {object} dto.ErrorResponse "Purchase item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /purchases/{id} [delete]
func (c *PurchaseController) DeletePurchaseItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.purchaseService.DeletePurchaseItem(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Purchase item deleted",
		Timestamp: time.Now(),
	})
}
