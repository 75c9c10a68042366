package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"advising/internal/auth"
	"advising/internal/model"
	"advising/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookies     *auth.SessionCookie
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookies *auth.SessionCookie) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"userType" validate:"omitempty,oneof=student admin advisor"`
}

// StudentSignupRequest represents a student registration request.
type StudentSignupRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	MatricNumber string `json:"matricNumber" validate:"required"`
}

// StaffSignupRequest represents an admin or advisor registration request.
type StaffSignupRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	AdminCode string `json:"adminCode" validate:"required"`
}

// SessionResponse carries the identity of the current session.
type SessionResponse struct {
	User      auth.Identity `json:"user"`
	ExpiresAt string        `json:"expires_at,omitempty"`
}

// UserResponse is a created account without credentials.
type UserResponse struct {
	Message string        `json:"message"`
	User    auth.Identity `json:"user"`
}

// Login godoc
// @Summary Log in and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	identity, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, model.Role(req.UserType))
	if err != nil {
		return fail(c, err)
	}

	h.cookies.Persist(c, token)
	return c.JSON(http.StatusOK, SessionResponse{
		User:      identity,
		ExpiresAt: token.ExpiresAt.UTC().Format(http.TimeFormat),
	})
}

// Signup godoc
// @Summary Register a student account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body StudentSignupRequest true "Student details"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req StudentSignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.SignupStudent(c.Request().Context(), service.StudentSignup{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		MatricNumber: req.MatricNumber,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, UserResponse{
		Message: "account created",
		User:    auth.IdentityFromUser(user),
	})
}

// AdminSignup godoc
// @Summary Register an admin account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body StaffSignupRequest true "Admin details and registration code"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/admin/signup [post]
func (h *AuthHandler) AdminSignup(c echo.Context) error {
	return h.staffSignup(c, model.RoleAdmin)
}

// AdvisorSignup godoc
// @Summary Register an advisor account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body StaffSignupRequest true "Advisor details and registration code"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/advisor/signup [post]
func (h *AuthHandler) AdvisorSignup(c echo.Context) error {
	return h.staffSignup(c, model.RoleAdvisor)
}

func (h *AuthHandler) staffSignup(c echo.Context, role model.Role) error {
	var req StaffSignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.SignupStaff(c.Request().Context(), service.StaffSignup{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		Role:             role,
		RegistrationCode: req.AdminCode,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, UserResponse{
		Message: "account created",
		User:    auth.IdentityFromUser(user),
	})
}

// Logout godoc
// @Summary End the session
// @Description Clears the session cookie. Succeeds with or without a session.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.Clear(c)
	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out",
	})
}

// Session godoc
// @Summary Describe the current session
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SessionResponse{User: *id})
}
