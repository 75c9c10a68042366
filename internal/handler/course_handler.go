package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"advising/internal/service"
)

// CourseHandler serves the course catalog.
type CourseHandler struct {
	courses service.CourseService
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(courses service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// CreateCourseRequest represents a new catalog entry.
type CreateCourseRequest struct {
	Code    string `json:"code" validate:"required,max=20"`
	Title   string `json:"title" validate:"required,max=200"`
	Credits int    `json:"credits" validate:"required,min=1,max=6"`
}

// List godoc
// @Summary List the course catalog
// @Tags courses
// @Produce json
// @Success 200 {array} model.Course
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.courses.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, courses)
}

// Create godoc
// @Summary Add a course to the catalog
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateCourseRequest true "Course"
// @Success 201 {object} model.Course
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req CreateCourseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	course, err := h.courses.Create(c.Request().Context(), req.Code, req.Title, req.Credits)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, course)
}
