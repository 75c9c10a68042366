package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"advising/internal/auth"
	"advising/internal/model"
	"advising/internal/service"
)

// PageHandler serves the view models behind the role dashboards and the
// login landing pages.
type PageHandler struct {
	courses       service.CourseService
	registrations service.RegistrationService
	students      service.StudentService
	messages      service.MessageService
}

// NewPageHandler creates a page handler.
func NewPageHandler(
	courses service.CourseService,
	registrations service.RegistrationService,
	students service.StudentService,
	messages service.MessageService,
) *PageHandler {
	return &PageHandler{
		courses:       courses,
		registrations: registrations,
		students:      students,
		messages:      messages,
	}
}

// StudentDashboard is the student landing view.
type StudentDashboard struct {
	User       auth.Identity       `json:"user"`
	Enrollment *service.Enrollment `json:"enrollment"`
	Messages   []model.Message     `json:"messages"`
}

// StudentCoursesPage is the registration view: the catalog and what is held.
type StudentCoursesPage struct {
	User       auth.Identity       `json:"user"`
	Catalog    []model.Course      `json:"catalog"`
	Enrollment *service.Enrollment `json:"enrollment"`
}

// AdminDashboard is the admin landing view.
type AdminDashboard struct {
	User           auth.Identity            `json:"user"`
	Courses        []model.Course           `json:"courses"`
	Students       []service.StudentSummary `json:"students"`
	RecentMessages []model.Message          `json:"recent_messages"`
}

// AdvisorDashboard is the advisor landing view.
type AdvisorDashboard struct {
	User     auth.Identity            `json:"user"`
	Students []service.StudentSummary `json:"students"`
	Messages []model.Message          `json:"messages"`
}

// LoginPage describes a login form for one role.
type LoginPage struct {
	Role       model.Role `json:"role"`
	LoginURL   string     `json:"login_url"`
	SignupURL  string     `json:"signup_url"`
	RedirectTo string     `json:"redirect_to"`
}

// StudentDashboard godoc
// @Summary Student dashboard view
// @Tags pages
// @Produce json
// @Success 200 {object} StudentDashboard
// @Success 303 "Redirect to the student login page"
// @Router /student/dashboard [get]
func (h *PageHandler) StudentDashboard(c echo.Context) error {
	id, userID, err := identityWithID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	enrollment, err := h.registrations.Enrollment(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	messages, err := h.messages.Conversation(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, StudentDashboard{User: *id, Enrollment: enrollment, Messages: messages})
}

// StudentCourses godoc
// @Summary Student course registration view
// @Tags pages
// @Produce json
// @Success 200 {object} StudentCoursesPage
// @Success 303 "Redirect to the student login page"
// @Router /student/courses [get]
func (h *PageHandler) StudentCourses(c echo.Context) error {
	id, userID, err := identityWithID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	catalog, err := h.courses.List(ctx)
	if err != nil {
		return fail(c, err)
	}
	enrollment, err := h.registrations.Enrollment(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, StudentCoursesPage{User: *id, Catalog: catalog, Enrollment: enrollment})
}

// AdminDashboard godoc
// @Summary Admin dashboard view
// @Tags pages
// @Produce json
// @Success 200 {object} AdminDashboard
// @Success 303 "Redirect to the admin login page"
// @Router /admin/dashboard [get]
func (h *PageHandler) AdminDashboard(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	courses, err := h.courses.List(ctx)
	if err != nil {
		return fail(c, err)
	}
	students, err := h.students.List(ctx)
	if err != nil {
		return fail(c, err)
	}
	recent, err := h.messages.Recent(ctx, 10)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, AdminDashboard{User: *id, Courses: courses, Students: students, RecentMessages: recent})
}

// AdvisorDashboard godoc
// @Summary Advisor dashboard view
// @Tags pages
// @Produce json
// @Success 200 {object} AdvisorDashboard
// @Success 303 "Redirect to the advisor login page"
// @Router /advisor/dashboard [get]
func (h *PageHandler) AdvisorDashboard(c echo.Context) error {
	id, userID, err := identityWithID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	students, err := h.students.List(ctx)
	if err != nil {
		return fail(c, err)
	}
	messages, err := h.messages.Conversation(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, AdvisorDashboard{User: *id, Students: students, Messages: messages})
}

// LoginLanding returns the login page handler for role. A caller already
// signed in with that role is sent to the role's dashboard.
func (h *PageHandler) LoginLanding(role model.Role) echo.HandlerFunc {
	dashboard := "/" + string(role) + "/dashboard"
	signup := "/api/auth/signup"
	if role != model.RoleStudent {
		signup = "/api/auth/" + string(role) + "/signup"
	}

	return func(c echo.Context) error {
		if id, ok := auth.IdentityFrom(c); ok && id.Role == role {
			return c.Redirect(http.StatusSeeOther, dashboard)
		}
		return c.JSON(http.StatusOK, LoginPage{
			Role:       role,
			LoginURL:   "/api/auth/login",
			SignupURL:  signup,
			RedirectTo: dashboard,
		})
	}
}
