// Package export renders a validation report as an XLSX workbook for
// operator review.
package export

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mvanroy/permit-validator/constants"
	"github.com/mvanroy/permit-validator/internal/match"
	"github.com/mvanroy/permit-validator/internal/pipeline"
)

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteReportXLSX returns an XLSX workbook (as bytes) with one row per
// document check, plus the document's content classification.
func (s *Service) WriteReportXLSX(facts match.Facts, report *pipeline.Report) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Validation"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{"Document", "Content", "Check", "Value"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	write := func(row, col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	row := 2
	for _, kind := range constants.AllKinds {
		cls := report.PDFChecks[kind]
		res, ok := report.Results[kind]
		if !ok {
			continue
		}

		if res.Failed() {
			write(row, 1, string(kind))
			write(row, 2, string(cls))
			write(row, 3, "error")
			write(row, 4, res.ErrorMessage())
			row++
			continue
		}

		// stable check order inside each document
		names := make([]string, 0, len(res.Fields()))
		for name := range res.Fields() {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			v, _ := res.Field(name)
			write(row, 1, string(kind))
			write(row, 2, string(cls))
			write(row, 3, name)
			write(row, 4, fmt.Sprintf("%v", v))
			row++
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "B", 12)
	_ = f.SetColWidth(sheet, "C", "C", 28)
	_ = f.SetColWidth(sheet, "D", "D", 42)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("report exported",
		"submission_id", report.SubmissionID,
		"applicant", facts.FullName(),
		"rows", row-2,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
