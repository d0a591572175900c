// Package pipeline orchestrates one submission: classify every attachment,
// extract its text, run the matching rule set for its document type and
// aggregate the outcomes into a single report. Documents are independent of
// each other; one failing never taints another.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mvanroy/permit-validator/constants"
	"github.com/mvanroy/permit-validator/internal/classify"
	"github.com/mvanroy/permit-validator/internal/match"
	"github.com/mvanroy/permit-validator/internal/ocr"
)

// TextExtractor is the extraction seam; *ocr.Extractor satisfies it and
// tests substitute canned text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, cls classify.Classification) (ocr.Result, error)
}

type Validator struct {
	extractor TextExtractor
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Validator)

// WithClock fixes the time source; validation outcomes are relative to
// "now", so tests need a stable clock.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

func NewValidator(extractor TextExtractor, logger *slog.Logger, opts ...Option) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	v := &Validator{extractor: extractor, logger: logger, now: time.Now}
	for _, o := range opts {
		o(v)
	}
	return v
}

// ValidateSubmission produces the full report for one batch of attachments.
// Every expected document kind gets a classification entry and exactly one
// result, success or error.
func (v *Validator) ValidateSubmission(ctx context.Context, facts match.Facts, docs map[constants.DocumentKind][]byte) *Report {
	report := &Report{
		SubmissionID: uuid.New(),
		PDFChecks:    make(map[constants.DocumentKind]classify.Classification, len(constants.AllKinds)),
		Results:      make(map[constants.DocumentKind]match.Result, len(constants.AllKinds)),
	}

	for _, kind := range constants.AllKinds {
		report.PDFChecks[kind] = classify.Classify(docs[kind])
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, kind := range constants.AllKinds {
		g.Go(func() error {
			res := v.validateDocument(ctx, kind, docs[kind], report.PDFChecks[kind], facts)
			mu.Lock()
			report.Results[kind] = res
			mu.Unlock()
			return nil
		})
	}
	// workers never return errors; failures live inside each Result
	_ = g.Wait()

	v.logger.Info("submission validated",
		"submission_id", report.SubmissionID,
		"documents", len(report.Results),
	)
	return report
}

// CheckContent is the standalone classifier probe for a single document.
func (v *Validator) CheckContent(data []byte) classify.Classification {
	return classify.Classify(data)
}

func (v *Validator) validateDocument(ctx context.Context, kind constants.DocumentKind, data []byte, cls classify.Classification, facts match.Facts) (res match.Result) {
	// a matcher must yield exactly one result, whatever happens inside
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("validation panicked", "kind", string(kind), "panic", r)
			res = match.Errf(match.ErrInternal, "validation failed: %v", r)
		}
	}()

	if len(data) == 0 {
		return match.Errf(match.ErrMissing, "no document uploaded for %s", kind)
	}

	extracted, err := v.extractor.Extract(ctx, data, cls)
	if err != nil {
		v.logger.Warn("extraction failed", "kind", string(kind), "classification", string(cls), "error", err)
		if cls == classify.Unreadable {
			return match.Errf(match.ErrUnreadable, "document is not readable: %v", err)
		}
		return match.Errf(match.ErrExtraction, "text extraction failed: %v", err)
	}
	v.logger.Debug("extracted document",
		"kind", string(kind),
		"method", extracted.Method,
		"pages", extracted.Pages,
		"bytes", len(extracted.Text),
	)

	now := v.now()
	switch kind {
	case constants.IDCard:
		return match.IDCard(extracted.Text, facts, now)
	case constants.KBORegisterExtract:
		return match.KBORegister(extracted.Text, facts)
	case constants.GazettePublication:
		return match.Gazette(extracted.Text, facts)
	case constants.MoralityCertificate:
		return match.Morality(extracted.Text, facts, now)
	case constants.CommercialLease:
		return match.Lease(extracted.Text, facts)
	case constants.LiabilityInsurance:
		return match.Insurance(extracted.Text, facts, now)
	case constants.ElectricCertificate:
		return match.Electrical(extracted.Text, facts)
	default:
		return match.Errf(match.ErrInternal, "unknown document kind %q", kind)
	}
}
