package ocr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mvanroy/permit-validator/internal/classify"
)

// fakeRunner stands in for the poppler and tesseract binaries. pdftoppm
// writes empty png files next to the prefix it is given, tesseract answers
// with canned text per page.
type fakeRunner struct {
	textOut  string   // pdftotext stdout
	pngPages int      // images "rendered" by pdftoppm
	failPage string   // image base name tesseract refuses
	calls    []string // tool names in invocation order
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, filepath.Base(name))
	switch filepath.Base(name) {
	case "pdftotext":
		return []byte(f.textOut), nil, nil
	case "pdftoppm":
		prefix := args[len(args)-1]
		for i := 1; i <= f.pngPages; i++ {
			if err := os.WriteFile(fmt.Sprintf("%s-%d.png", prefix, i), nil, 0o600); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	case "tesseract":
		base := filepath.Base(args[0])
		if base == f.failPage {
			return nil, []byte("read_params_file failed"), errors.New("exit status 1")
		}
		// tokens arrive with ragged whitespace, like real OCR output
		return []byte("  tekst \n van  " + strings.TrimSuffix(base, ".png") + " \n"), nil, nil
	}
	return nil, nil, fmt.Errorf("unexpected tool %s", name)
}

func newTestExtractor(r Runner, cfg Config) *Extractor {
	e := NewExtractor(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.runner = r
	return e
}

func TestExtractUsesTextLayer(t *testing.T) {
	runner := &fakeRunner{textOut: "eerste pagina\ftweede pagina"}
	e := newTestExtractor(runner, Config{})

	res, err := e.Extract(context.Background(), []byte("%PDF"), classify.Text)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Method != "pdf-text" {
		t.Errorf("method: got %q", res.Method)
	}
	if res.Pages != 2 {
		t.Errorf("pages: got %d, want 2", res.Pages)
	}
	if strings.Contains(res.Text, "\f") {
		t.Error("form feeds must be stripped")
	}
	if want := []string{"pdftotext"}; len(runner.calls) != 1 || runner.calls[0] != want[0] {
		t.Errorf("calls: got %v, want %v", runner.calls, want)
	}
}

func TestExtractOCRsScannedPages(t *testing.T) {
	runner := &fakeRunner{pngPages: 3}
	e := newTestExtractor(runner, Config{})

	res, err := e.Extract(context.Background(), []byte("%PDF"), classify.Image)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Method != "pdf-ocr" {
		t.Errorf("method: got %q", res.Method)
	}
	if res.Pages != 3 {
		t.Errorf("pages: got %d, want 3", res.Pages)
	}
	if want := "tekst van page-1 tekst van page-2 tekst van page-3"; res.Text != want {
		t.Errorf("text: got %q, want %q", res.Text, want)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("warnings: got %v", res.Warnings)
	}
}

func TestExtractHonorsMaxPages(t *testing.T) {
	runner := &fakeRunner{pngPages: 5}
	e := newTestExtractor(runner, Config{MaxPages: 2})

	res, err := e.Extract(context.Background(), []byte("%PDF"), classify.Image)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Pages != 2 {
		t.Errorf("pages: got %d, want 2", res.Pages)
	}
}

func TestExtractSkipsFailedPage(t *testing.T) {
	runner := &fakeRunner{pngPages: 2, failPage: "page-1.png"}
	e := newTestExtractor(runner, Config{})

	res, err := e.Extract(context.Background(), []byte("%PDF"), classify.Image)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(res.Text, "page-2") || strings.Contains(res.Text, "page-1") {
		t.Errorf("text: got %q", res.Text)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings: got %v, want one entry", res.Warnings)
	}
}

func TestExtractNoPagesRendered(t *testing.T) {
	runner := &fakeRunner{pngPages: 0}
	e := newTestExtractor(runner, Config{})

	_, err := e.Extract(context.Background(), []byte("%PDF"), classify.Image)
	if err == nil {
		t.Fatal("expected error when pdftoppm renders nothing")
	}
}

func TestNewExtractorDefaults(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	if e.cfg.Pdftotext != "pdftotext" || e.cfg.Pdftoppm != "pdftoppm" || e.cfg.Tesseract != "tesseract" {
		t.Errorf("tool defaults: got %+v", e.cfg)
	}
	if e.cfg.Lang != "eng+nld" {
		t.Errorf("lang: got %q", e.cfg.Lang)
	}
	if e.cfg.DPI != 300 {
		t.Errorf("dpi: got %d", e.cfg.DPI)
	}
}
