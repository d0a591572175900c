package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mvanroy/permit-validator/internal/common"
	"github.com/mvanroy/permit-validator/internal/ocr"
	"github.com/mvanroy/permit-validator/internal/pipeline"
	"github.com/mvanroy/permit-validator/internal/repository"
	"github.com/mvanroy/permit-validator/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Extractor is built once and shared by all concurrent validations.
	extractor := ocr.NewExtractor(ocr.Config{
		Pdftotext:   cfg.OCR.Pdftotext,
		Pdftoppm:    cfg.OCR.Pdftoppm,
		Tesseract:   cfg.OCR.Tesseract,
		Lang:        cfg.OCR.Lang,
		DPI:         cfg.OCR.DPI,
		MaxPages:    cfg.OCR.MaxPages,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)

	validator := pipeline.NewValidator(extractor, logger)

	// Audit store is optional; without DB_URL the service is stateless.
	var audit *repository.SubmissionStore
	if cfg.Database.DSN != "" {
		pool, err := repository.Open(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error("opening audit database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := repository.HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
			logger.Error("audit database health failed", "error", err)
			os.Exit(1)
		}
		audit = repository.NewSubmissionStore(pool, logger)
		if err := audit.EnsureSchema(ctx); err != nil {
			logger.Error("preparing audit schema", "error", err)
			os.Exit(1)
		}
		logger.Info("audit store enabled")
	}

	srv := server.New(cfg.Server, validator, audit, logger)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errc:
		if err != nil {
			logger.Error("http serve failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down...")
		if err := srv.Shutdown(10 * time.Second); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}
	logger.Info("stopped")
}
