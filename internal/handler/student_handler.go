package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"advising/internal/service"
)

// StudentHandler serves student listings to staff.
type StudentHandler struct {
	students service.StudentService
}

// NewStudentHandler creates a student handler.
func NewStudentHandler(students service.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List students with their registered courses
// @Tags staff
// @Produce json
// @Success 200 {array} service.StudentSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /students [get]
func (h *StudentHandler) List(c echo.Context) error {
	students, err := h.students.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, students)
}
