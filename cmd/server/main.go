package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"advising/docs"
	"advising/internal/auth"
	"advising/internal/cache"
	"advising/internal/config"
	"advising/internal/db"
	"advising/internal/handler"
	"advising/internal/logger"
	"advising/internal/repository"
	"advising/internal/router"
	"advising/internal/service"
)

// @title Academic Advising API
// @version 1.0
// @description Course registration, messaging and catalog administration for students, advisors and admins.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}

	if os.Getenv("RESET_DB") == "true" {
		if cfg.IsProduction() {
			logger.Fatal().Msg("RESET_DB is not allowed in production")
		}
		logger.Warn().Msg("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			logger.Fatal().Err(err).Msg("reset database")
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable; catalog cache and registration lock degrade to the database")
	}
	cancelPing()

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	courseRepo := repository.NewCourseRepository(gormDB)
	registrationRepo := repository.NewRegistrationRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)

	// Session components
	codec, err := auth.NewCodec(auth.CodecConfig{
		Secret: []byte(cfg.SessionSecret),
		TTL:    cfg.SessionTTL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("session codec")
	}
	cookies := auth.NewSessionCookie(cfg.IsProduction())
	authz := auth.NewAuthorizer(auth.DefaultAreas()...)

	// Services
	authService, err := service.NewAuthService(userRepo, codec, cfg.AdminRegistrationCode)
	if err != nil {
		logger.Fatal().Err(err).Msg("auth service")
	}
	courseService := service.NewCourseService(courseRepo, cacheClient)
	registrationService := service.NewRegistrationService(registrationRepo, cacheClient, cfg.RegistrationLockTTL)
	messageService := service.NewMessageService(messageRepo, userRepo)
	studentService := service.NewStudentService(userRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(e, codec, cookies, authz, router.Handlers{
		Auth:         handler.NewAuthHandler(authService, cookies),
		Courses:      handler.NewCourseHandler(courseService),
		Seed:         handler.NewSeedHandler(courseService, &http.Client{Timeout: 15 * time.Second}),
		Registration: handler.NewRegistrationHandler(registrationService),
		Messages:     handler.NewMessageHandler(messageService),
		Students:     handler.NewStudentHandler(studentService),
		Pages:        handler.NewPageHandler(courseService, registrationService, studentService, messageService),
	})

	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
		docs.SwaggerInfo.Host = host
	}
	logger.Info().Str("url", swaggerURL(cfg)).Msg("swagger documentation available")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
}

func swaggerURL(cfg *config.Config) string {
	switch {
	case cfg.SwaggerHost == "":
		return "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	case strings.HasPrefix(cfg.SwaggerHost, "http://"), strings.HasPrefix(cfg.SwaggerHost, "https://"):
		return cfg.SwaggerHost + "/swagger/index.html"
	default:
		return "http://" + cfg.SwaggerHost + "/swagger/index.html"
	}
}
