package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/depot/internal/app/models/dto"
	"github.com/ekurt/depot/internal/app/services"
	"github.com/ekurt/depot/internal/middleware"
)

// CourseController handles course and course item operations
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Description Creates a course in the planning state
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.courseService.CreateCourse(ctx, services.CourseInput{
		Name:         req.Name,
		Description:  req.Description,
		Instructor:   req.Instructor,
		StudentCount: req.StudentCount,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      course,
		Timestamp: time.Now(),
	})
}

// GetCourse retrieves a course with its items
// @Summary Get course by ID
// @Description Retrieves a course together with its registered items
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	details, err := c.courseService.GetCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.CourseResponse{
			Course: details.Course,
			Items:  details.Items,
		},
		Timestamp: time.Now(),
	})
}

// GetAllCourses retrieves all courses
// @Summary Get all courses
// @Description Retrieves all courses, newest first
// @Tags courses
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.CourseListResponse{
			Courses: courses,
			Total:   len(courses),
		},
		Timestamp: time.Now(),
	})
}

// AddItems registers requested items against a course
// @Summary Add items to a course
// @Description Matches each requested item to stock by name, snapshots availability and marks each line sufficient or insufficient. No stock is mutated.
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.AddCourseItemsRequest true "Requested items"
// @Success 201 {object} dto.APIResponse{data=dto.AddCourseItemsResponse} "Items registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/items [post]
func (c *CourseController) AddItems(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddCourseItemsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course items data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	requests := make([]services.CourseItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		requests = append(requests, services.CourseItemRequest{
			ItemName:         item.ItemName,
			RequiredQuantity: item.RequiredQuantity,
		})
	}

	result, err := c.courseService.AddItems(ctx, id, requests)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success: true,
		Data: dto.AddCourseItemsResponse{
			Items:             result.Items,
			TotalItems:        result.TotalItems,
			SufficientItems:   result.SufficientItems,
			InsufficientItems: result.InsufficientItems,
		},
		Timestamp: time.Now(),
	})
}

// ReserveItems reserves stock for a course
// @Summary Reserve course items
// @Description Reserves stock for every sufficient course item. Failures are reported per item and do not undo successful reservations. The course becomes active only when every item reserves.
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReservationResponse} "Reservation processed"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/reserve [post]
func (c *CourseController) ReserveItems(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.courseService.ReserveItems(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.ReservationResponse{
			Success:       result.Success,
			ReservedItems: result.ReservedItems,
			FailedItems:   result.FailedItems,
		},
		Timestamp: time.Now(),
	})
}

// CompleteCourse closes out a course
// @Summary Complete a course
// @Description Completes a course. Reserved items are either returned to the available pool or permanently deducted from total stock, depending on returnItems.
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.CompleteCourseRequest true "Completion options"
// @Success 200 {object} dto.APIResponse{data=dto.CompletionResponse} "Course completed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/complete [post]
func (c *CourseController) CompleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CompleteCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid completion data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.courseService.CompleteCourse(ctx, id, req.ReturnItems)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.CompletionResponse{
			Success:       result.Success,
			ReturnedItems: result.ReturnedItems,
			DeductedItems: result.DeductedItems,
		},
		Timestamp: time.Now(),
	})
}
