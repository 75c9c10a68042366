package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"advising/internal/auth"
	"advising/internal/handler"
	"advising/internal/logger"
	"advising/internal/model"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth         *handler.AuthHandler
	Courses      *handler.CourseHandler
	Seed         *handler.SeedHandler
	Registration *handler.RegistrationHandler
	Messages     *handler.MessageHandler
	Students     *handler.StudentHandler
	Pages        *handler.PageHandler
}

// Register wires routes and middleware. Every request passes through the
// session middleware and the area gate before reaching a handler.
func Register(e *echo.Echo, codec *auth.Codec, cookies *auth.SessionCookie, authz *auth.Authorizer, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(auth.SessionMiddleware(codec, cookies))
	e.Use(auth.Gate(authz))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Login landing pages
	e.GET("/auth/student/login", h.Pages.LoginLanding(model.RoleStudent))
	e.GET("/auth/admin/login", h.Pages.LoginLanding(model.RoleAdmin))
	e.GET("/auth/advisor/login", h.Pages.LoginLanding(model.RoleAdvisor))

	// Page areas
	e.GET("/student/dashboard", h.Pages.StudentDashboard)
	e.GET("/student/courses", h.Pages.StudentCourses)
	e.GET("/admin/dashboard", h.Pages.AdminDashboard)
	e.GET("/advisor/dashboard", h.Pages.AdvisorDashboard)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/admin/signup", h.Auth.AdminSignup)
	api.POST("/auth/advisor/signup", h.Auth.AdvisorSignup)
	api.POST("/auth/logout", h.Auth.Logout)

	// Any signed-in role
	api.GET("/auth/session", h.Auth.Session)
	api.GET("/courses", h.Courses.List)

	// Student routes
	api.POST("/student/register-courses", h.Registration.Register)
	api.GET("/student/courses", h.Registration.Enrollment)
	api.GET("/student/messages", h.Messages.Conversation)
	api.POST("/student/messages", h.Messages.Send)

	// Advisor routes
	api.GET("/advisor/messages", h.Messages.Conversation)
	api.POST("/advisor/messages", h.Messages.Send)

	// Admin routes
	api.GET("/admin/courses", h.Courses.List)
	api.POST("/admin/courses", h.Courses.Create)
	api.POST("/admin/courses/import", h.Seed.ImportCourses)
	api.GET("/admin/messages", h.Messages.Recent)

	// Admin or advisor
	api.GET("/students", h.Students.List)
}

// requestLogger emits one structured line per request.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := logger.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				event = logger.Error().Err(v.Error)
			case v.Error != nil:
				event = logger.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
