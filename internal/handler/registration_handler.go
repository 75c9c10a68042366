package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"advising/internal/model"
	"advising/internal/service"
)

// RegistrationHandler serves student course registration.
type RegistrationHandler struct {
	registrations service.RegistrationService
}

// NewRegistrationHandler creates a new registration handler.
func NewRegistrationHandler(registrations service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

// RegisterCoursesRequest lists the courses to add.
type RegisterCoursesRequest struct {
	CourseIDs []string `json:"courseIds" validate:"dive,uuid"`
}

// RegisterCoursesResponse reports the new registrations.
type RegisterCoursesResponse struct {
	Message       string               `json:"message"`
	Registrations []model.Registration `json:"registrations"`
}

// Register godoc
// @Summary Register for courses
// @Description Adds the selected courses if the total stays within the 24 credit limit.
// @Tags student
// @Accept json
// @Produce json
// @Param request body RegisterCoursesRequest true "Course ids"
// @Success 201 {object} RegisterCoursesResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /student/register-courses [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	_, studentID, err := identityWithID(c)
	if err != nil {
		return err
	}

	var req RegisterCoursesRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	courseIDs := make([]uuid.UUID, 0, len(req.CourseIDs))
	for _, raw := range req.CourseIDs {
		courseIDs = append(courseIDs, uuid.MustParse(raw))
	}

	created, err := h.registrations.Register(c.Request().Context(), studentID, courseIDs)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, RegisterCoursesResponse{
		Message:       "courses registered",
		Registrations: created,
	})
}

// Enrollment godoc
// @Summary List my registered courses
// @Tags student
// @Produce json
// @Success 200 {object} service.Enrollment
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /student/courses [get]
func (h *RegistrationHandler) Enrollment(c echo.Context) error {
	_, studentID, err := identityWithID(c)
	if err != nil {
		return err
	}

	enrollment, err := h.registrations.Enrollment(c.Request().Context(), studentID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, enrollment)
}
