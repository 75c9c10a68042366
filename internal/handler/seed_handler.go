package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"advising/internal/catalog"
	apperrors "advising/internal/errors"
	"advising/internal/service"
)

// SeedHandler imports course catalogs.
type SeedHandler struct {
	courses service.CourseService
	client  *http.Client
}

// NewSeedHandler creates a new seed handler. A nil client uses http.DefaultClient.
func NewSeedHandler(courses service.CourseService, client *http.Client) *SeedHandler {
	return &SeedHandler{courses: courses, client: client}
}

// ImportCoursesRequest carries either inline courses or a catalog URL.
type ImportCoursesRequest struct {
	Courses []catalog.Entry `json:"courses" validate:"omitempty,dive"`
	URL     string          `json:"url" validate:"omitempty,url"`
}

// ImportCoursesResponse represents the import result.
type ImportCoursesResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ImportCourses godoc
// @Summary Import a course catalog
// @Description Upserts courses by code from the request body or from a JSON/YAML document at url.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ImportCoursesRequest true "Courses or catalog URL"
// @Success 200 {object} ImportCoursesResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /admin/courses/import [post]
func (h *SeedHandler) ImportCourses(c echo.Context) error {
	var req ImportCoursesRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if (len(req.Courses) == 0) == (req.URL == "") {
		return fail(c, apperrors.Validation("provide either courses or url"))
	}

	courses := catalog.ToCourses(req.Courses)
	if req.URL != "" {
		fetched, err := catalog.Load(c.Request().Context(), h.client, req.URL)
		if err != nil {
			return fail(c, apperrors.Validation("cannot read catalog: %v", err))
		}
		courses = fetched
	}

	count, err := h.courses.Import(c.Request().Context(), courses)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, ImportCoursesResponse{
		Message: "courses imported",
		Count:   count,
	})
}
