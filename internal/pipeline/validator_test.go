package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mvanroy/permit-validator/constants"
	"github.com/mvanroy/permit-validator/internal/classify"
	"github.com/mvanroy/permit-validator/internal/match"
	"github.com/mvanroy/permit-validator/internal/ocr"
)

var testNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

// stubExtractor maps raw upload bytes to canned extracted text.
type stubExtractor struct {
	texts map[string]string
	err   error
}

func (s *stubExtractor) Extract(_ context.Context, data []byte, _ classify.Classification) (ocr.Result, error) {
	if s.err != nil {
		return ocr.Result{}, s.err
	}
	return ocr.Result{Text: s.texts[string(data)], Method: "stub", Pages: 1}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testFacts() match.Facts {
	return match.Facts{
		FirstName:       "Jane",
		LastName:        "Doe",
		CompanyName:     "Analytus ICT Services",
		CompanyNumber:   "BE 0456.789.123",
		OwnerName:       "WS Company BV",
		BusinessAddress: "Grotestraat 3, 3600 Genk",
	}
}

func allDocs() map[constants.DocumentKind][]byte {
	docs := make(map[constants.DocumentKind][]byte, len(constants.AllKinds))
	for _, kind := range constants.AllKinds {
		docs[kind] = []byte(kind)
	}
	return docs
}

func TestValidateSubmissionEveryKindGetsOneResult(t *testing.T) {
	stub := &stubExtractor{texts: map[string]string{
		string(constants.IDCard):              "Jane Doe geldig tot 01.05.2030",
		string(constants.KBORegisterExtract):  "analytus ict services 0456789123 jane doe",
		string(constants.GazettePublication):  "analytus ict services 0456.789.123",
		string(constants.MoralityCertificate): "Jane Doe Datum: 01/06/2025",
		string(constants.LiabilityInsurance):  "analytus ict services van 1 januari 2025 tot 31 december 2030",
		string(constants.CommercialLease):     "Seller: Name: WS Company BV Address: X VAT located at Grotestraat 3, 3600 Genk.",
		string(constants.ElectricCertificate): "Adres: Grotestraat 3, 3600 Genk\nde installatie is conform",
	}}
	v := NewValidator(stub, testLogger(), WithClock(func() time.Time { return testNow }))

	report := v.ValidateSubmission(context.Background(), testFacts(), allDocs())

	if len(report.Results) != len(constants.AllKinds) {
		t.Fatalf("results: got %d, want %d", len(report.Results), len(constants.AllKinds))
	}
	if len(report.PDFChecks) != len(constants.AllKinds) {
		t.Fatalf("pdf_checks: got %d, want %d", len(report.PDFChecks), len(constants.AllKinds))
	}
	for _, kind := range constants.AllKinds {
		res, ok := report.Result(kind)
		if !ok {
			t.Fatalf("%s: no result", kind)
		}
		if res.Failed() {
			t.Errorf("%s: unexpected error %s", kind, res.ErrorMessage())
		}
	}

	id, _ := report.Result(constants.IDCard)
	if !id.Bool("name_match") || !id.Bool("expiry_valid") {
		t.Error("id card checks failed on matching input")
	}
	mor, _ := report.Result(constants.MoralityCertificate)
	if !mor.Bool("date_valid") {
		t.Error("morality date_valid: got false, want true against fixed clock")
	}
}

func TestValidateSubmissionMissingDocument(t *testing.T) {
	stub := &stubExtractor{texts: map[string]string{}}
	v := NewValidator(stub, testLogger())

	docs := allDocs()
	delete(docs, constants.CommercialLease)
	report := v.ValidateSubmission(context.Background(), testFacts(), docs)

	res, _ := report.Result(constants.CommercialLease)
	if got := res.ErrorKind(); got != match.ErrMissing {
		t.Errorf("error kind: got %q, want %q", got, match.ErrMissing)
	}
	// the other documents are unaffected
	other, _ := report.Result(constants.IDCard)
	if other.Failed() {
		t.Errorf("id card: unexpected error %s", other.ErrorMessage())
	}
}

// Bytes that are not a PDF classify as unreadable, and an extraction error
// on such a document surfaces as an unreadable-document result, never as a
// pipeline failure.
func TestValidateSubmissionUnreadableDocument(t *testing.T) {
	stub := &stubExtractor{err: errors.New("cannot parse file")}
	v := NewValidator(stub, testLogger())

	report := v.ValidateSubmission(context.Background(), testFacts(), allDocs())

	for _, kind := range constants.AllKinds {
		if cls := report.PDFChecks[kind]; cls != classify.Unreadable {
			t.Errorf("%s: classification %q, want %q", kind, cls, classify.Unreadable)
		}
		res, _ := report.Result(kind)
		if got := res.ErrorKind(); got != match.ErrUnreadable {
			t.Errorf("%s: error kind %q, want %q", kind, got, match.ErrUnreadable)
		}
	}
}

func TestReportJSONShape(t *testing.T) {
	stub := &stubExtractor{texts: map[string]string{}}
	v := NewValidator(stub, testLogger())

	docs := allDocs()
	delete(docs, constants.IDCard)
	report := v.ValidateSubmission(context.Background(), testFacts(), docs)

	raw, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, ok := decoded["pdf_checks"]; !ok {
		t.Error("missing pdf_checks key")
	}
	for _, kind := range constants.AllKinds {
		if _, ok := decoded[kind.ResultKey()]; !ok {
			t.Errorf("missing result key %q", kind.ResultKey())
		}
	}

	var idCard map[string]string
	if err := json.Unmarshal(decoded[constants.IDCard.ResultKey()], &idCard); err != nil {
		t.Fatalf("id card result: %v", err)
	}
	if idCard["error"] == "" {
		t.Error("missing document must render as an error object")
	}
}

func TestCheckContent(t *testing.T) {
	v := NewValidator(&stubExtractor{}, testLogger())
	if got := v.CheckContent([]byte("plainly not a pdf")); got != classify.Unreadable {
		t.Errorf("classification: got %q, want %q", got, classify.Unreadable)
	}
}
