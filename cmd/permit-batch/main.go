package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mvanroy/permit-validator/internal/common"
	"github.com/mvanroy/permit-validator/internal/export"
	"github.com/mvanroy/permit-validator/internal/manifest"
	"github.com/mvanroy/permit-validator/internal/ocr"
	"github.com/mvanroy/permit-validator/internal/pipeline"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		manifestPath = flag.String("manifest", "", "path to the submission manifest JSON (required)")
		out          = flag.String("out", "", "output report JSON path (optional, defaults to stdout)")
		xlsx         = flag.String("xlsx", "", "also write an XLSX review sheet to this path (optional)")
		timeout      = flag.Duration("timeout", 5*time.Minute, "overall processing timeout")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *manifestPath == "" {
		printError("Error: --manifest is required\n")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	facts, docs, err := manifest.Load(*manifestPath)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
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

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	report := validator.ValidateSubmission(ctx, facts, docs)
	logger.Info("validation finished",
		"submission_id", report.SubmissionID,
		"documents", len(report.Results),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		printError("Error: encode report: %v\n", err)
		os.Exit(1)
	}
	if *out == "" {
		fmt.Println(string(body))
	} else {
		if err := os.WriteFile(*out, body, 0o644); err != nil {
			printError("Error: write report: %v\n", err)
			os.Exit(1)
		}
		logger.Info("report written", "path", *out)
	}

	if *xlsx != "" {
		path := *xlsx
		if !strings.HasSuffix(path, ".xlsx") {
			path = filepath.Clean(path) + ".xlsx"
		}
		wb, err := export.NewService(logger).WriteReportXLSX(facts, report)
		if err != nil {
			printError("Error: export XLSX: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, wb, 0o644); err != nil {
			printError("Error: write XLSX: %v\n", err)
			os.Exit(1)
		}
		logger.Info("review sheet written", "path", path)
	}
}
