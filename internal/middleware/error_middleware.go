package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/depot/internal/app/models/dto"
	"github.com/ekurt/depot/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses. Every
// controller funnels service errors through here so the status codes and
// the error envelope stay uniform across the API.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrStockItemNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Stock item not found")))
	case errors.Is(err, apperrors.ErrBorrowRecordNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Borrow record not found")))
	case errors.Is(err, apperrors.ErrCourseNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found")))
	case errors.Is(err, apperrors.ErrPurchaseItemNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Purchase item not found")))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")))
	case errors.Is(err, apperrors.ErrInsufficientStock):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInsufficientStock, "Insufficient stock for requested quantity")))
	case errors.Is(err, apperrors.ErrStockWouldGoNegative):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeNegativeStock, "Operation would drive stock quantity negative")))
	case errors.Is(err, apperrors.ErrBorrowNotActive):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeBorrowNotActive, "Borrow record has already been returned")))
	case errors.Is(err, apperrors.ErrReturnExceedsBorrow):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeReturnExceeds, "Returned quantity exceeds borrowed quantity")))
	case errors.Is(err, apperrors.ErrPurchaseAlreadyArrived):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodePurchaseFinalized, "Purchase has already arrived and cannot change status")))
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidStateChange, err.Error())))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, err.Error())))
	default:
		c.JSON(500, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
