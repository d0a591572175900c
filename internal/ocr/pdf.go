package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func (e *Extractor) pdfToText(ctx context.Context, path string) (Result, error) {
	// pdftotext -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return Result{Method: "pdf-text", Warnings: []string{string(errb)}}, err
	}
	text := string(out)
	// pdftotext separates pages with a form feed
	pages := 1 + strings.Count(text, "\f")
	text = strings.ReplaceAll(text, "\f", "")
	return Result{Text: text, Pages: pages, Method: "pdf-text"}, nil
}

func (e *Extractor) pdfToOCR(ctx context.Context, path string) (Result, error) {
	tmpDir, err := os.MkdirTemp("", "pv-pp-*")
	if err != nil {
		return Result{Method: "pdf-ocr"}, err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return Result{Method: "pdf-ocr", Warnings: []string{string(errb)}}, err
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return Result{Method: "pdf-ocr", Warnings: []string{"pdftoppm produced no images"}}, fmt.Errorf("no pages rendered")
	}

	var b strings.Builder
	var warns []string
	for _, img := range matches {
		txt, err := e.tesseract(ctx, img)
		if err != nil {
			warns = append(warns, err.Error())
			continue
		}
		if b.Len() > 0 && txt != "" {
			b.WriteString(" ")
		}
		b.WriteString(txt)
	}
	return Result{Text: b.String(), Pages: len(matches), Method: "pdf-ocr", Warnings: warns}, nil
}

// tesseract OCRs a single page image and returns the recognized tokens
// joined by single spaces.
func (e *Extractor) tesseract(ctx context.Context, imgPath string) (string, error) {
	args := []string{imgPath, "stdout", "-l", e.cfg.Lang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract %s: %v: %s", filepath.Base(imgPath), err, clip(string(errb), 512))
	}
	return strings.Join(strings.Fields(string(out)), " "), nil
}
