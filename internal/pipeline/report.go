package pipeline

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/mvanroy/permit-validator/constants"
	"github.com/mvanroy/permit-validator/internal/classify"
	"github.com/mvanroy/permit-validator/internal/match"
)

// Report is the aggregated outcome of one submission: a classification per
// attachment plus one match result per document type.
type Report struct {
	SubmissionID uuid.UUID
	PDFChecks    map[constants.DocumentKind]classify.Classification
	Results      map[constants.DocumentKind]match.Result
}

// MarshalJSON renders the external response shape: a "pdf_checks" map keyed
// by attachment name and one top-level key per document result
// (id_card_valid, kbo_register_valid, ...).
func (r *Report) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Results)+1)

	checks := make(map[string]string, len(r.PDFChecks))
	for kind, cls := range r.PDFChecks {
		checks[string(kind)] = string(cls)
	}
	out["pdf_checks"] = checks

	for kind, res := range r.Results {
		out[kind.ResultKey()] = res
	}
	return json.Marshal(out)
}

// Result returns the match result for one document kind.
func (r *Report) Result(kind constants.DocumentKind) (match.Result, bool) {
	res, ok := r.Results[kind]
	return res, ok
}
