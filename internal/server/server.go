// Package server is the thin HTTP wrapper around the validation pipeline:
// multipart parsing in, report JSON out. No validation logic lives here.
package server

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mvanroy/permit-validator/internal/common"
	"github.com/mvanroy/permit-validator/internal/pipeline"
	"github.com/mvanroy/permit-validator/internal/repository"
)

type Server struct {
	app       *fiber.App
	validator *pipeline.Validator
	audit     *repository.SubmissionStore // nil when audit persistence is disabled
	logger    *slog.Logger
}

func New(cfg common.ServerConfig, validator *pipeline.Validator, audit *repository.SubmissionStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	s := &Server{
		app:       app,
		validator: validator,
		audit:     audit,
		logger:    logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	s.app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	s.app.Get("/health", s.handleHealth)
	s.app.Post("/validate-documents", s.handleValidateDocuments)
	s.app.Post("/check-content", s.handleCheckContent)
}

// Listen blocks serving HTTP until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests with a grace period.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
