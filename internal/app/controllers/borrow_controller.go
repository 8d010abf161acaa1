package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/depot/internal/app/models/dto"
	"github.com/ekurt/depot/internal/app/services"
	"github.com/ekurt/depot/internal/middleware"
)

// BorrowController handles checkout and return operations
type BorrowController struct {
	borrowService *services.BorrowService
}

// NewBorrowController creates a new BorrowController
func NewBorrowController(borrowService *services.BorrowService) *BorrowController {
	return &BorrowController{
		borrowService: borrowService,
	}
}

// Checkout handles stock checkout
// @Summary Check out stock
// @Description Removes quantity from the available pool of a stock item and opens a borrow record. Total quantity is untouched.
// @Tags borrows
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Checkout information"
// @Success 201 {object} dto.APIResponse{data=models.BorrowRecord} "Stock checked out successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Stock item not found"
// @Failure 409 {object} dto.ErrorResponse "Insufficient stock"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /borrows [post]
func (c *BorrowController) Checkout(ctx *gin.Context) {
	var req dto.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid checkout data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	record, err := c.borrowService.Checkout(ctx, req.StockItemID, req.BorrowedBy, req.BorrowedQuantity, req.ExpectedReturnDate, req.Remarks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      record,
		Timestamp: time.Now(),
	})
}

// Return handles the return of a borrow record
// @Summary Return borrowed stock
// @Description Closes an active borrow record and restores the returned quantity to the available pool. A record can be returned exactly once.
// @Tags borrows
// @Accept json
// @Produce json
// @Param id path int true "Borrow record ID"
// @Param request body dto.ReturnRequest true "Return information"
// @Success 200 {object} dto.APIResponse{data=models.BorrowRecord} "Stock returned successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Borrow record not found"
// @Failure 409 {object} dto.ErrorResponse "Record already returned or quantity exceeds borrow"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /borrows/{id}/return [post]
func (c *BorrowController) Return(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReturnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid return data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	record, err := c.borrowService.Return(ctx, id, req.ReturnedQuantity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      record,
		Timestamp: time.Now(),
	})
}

// GetAllBorrowRecords retrieves all borrow records
// @Summary Get all borrow records
// @Description Retrieves all borrow records, latest borrow first
// @Tags borrows
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.BorrowRecordListResponse} "Borrow records retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /borrows [get]
func (c *BorrowController) GetAllBorrowRecords(ctx *gin.Context) {
	records, err := c.borrowService.ListBorrowRecords(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.BorrowRecordListResponse{
			Records: records,
			Total:   len(records),
		},
		Timestamp: time.Now(),
	})
}
