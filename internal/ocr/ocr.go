package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mvanroy/permit-validator/internal/classify"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang     string // tesseract language set, default "eng+nld"
	DPI      int    // rasterization DPI for scanned pages, default 300
	MaxPages int    // 0 = no limit

	TessdataDir string
}

type Result struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "pdf-ocr"
	Language string
	Duration time.Duration
	Warnings []string
}

// Extractor turns raw document bytes into a single text string. It is
// constructed once per process and holds no per-call mutable state, so
// concurrent extractions may share it.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng+nld"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Extract picks a strategy based on the document's classification: native
// text layer when one exists, rasterize + OCR otherwise. Pages are processed
// in document order and concatenated.
func (e *Extractor) Extract(ctx context.Context, data []byte, cls classify.Classification) (Result, error) {
	start := time.Now()

	path, cleanup, err := spool(data)
	if err != nil {
		return Result{}, err
	}
	defer cleanup()

	var res Result
	if cls == classify.Text {
		e.logger.Debug("starting extraction", "method", "pdf-text", "bytes", len(data))
		res, err = e.pdfToText(ctx, path)
	} else {
		e.logger.Debug("starting extraction", "method", "pdf-ocr", "bytes", len(data), "classification", string(cls))
		res, err = e.pdfToOCR(ctx, path)
	}
	res.Language = e.cfg.Lang
	res.Duration = time.Since(start)
	return res, err
}

// spool writes the uploaded bytes to a temp file for the poppler tools.
func spool(data []byte) (string, func(), error) {
	dir, err := os.MkdirTemp("", "pv-doc-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }
	path := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("spool document: %w", err)
	}
	return path, cleanup, nil
}
