// Package match implements the per-document-type rule sets that compare
// extracted document text against the applicant's declared facts. Every
// matcher returns exactly one Result per invocation, success or failure;
// nothing escapes a matcher as a panic or unhandled error.
package match

import (
	"encoding/json"
	"fmt"
)

// ErrKind distinguishes the failure categories a document can hit. The kind
// is part of the contract so callers can tell malformed input apart from an
// internal fault.
type ErrKind string

const (
	ErrUnreadable ErrKind = "unreadable_document"
	ErrExtraction ErrKind = "extraction_failed"
	ErrMissing    ErrKind = "missing_attachment"
	ErrInternal   ErrKind = "internal"
)

// Result is the tagged outcome of one matcher invocation: either a map of
// named checks (booleans and extracted raw values) or an error record. The
// two shapes are mutually exclusive.
type Result struct {
	fields  map[string]any
	errKind ErrKind
	errMsg  string
}

// Ok wraps a successful check map.
func Ok(fields map[string]any) Result {
	return Result{fields: fields}
}

// Errf builds a failed result for a single document.
func Errf(kind ErrKind, format string, args ...any) Result {
	return Result{errKind: kind, errMsg: fmt.Sprintf(format, args...)}
}

// Failed reports whether this result carries an error instead of fields.
func (r Result) Failed() bool {
	return r.errKind != ""
}

// ErrorKind returns the failure category, or "" for a successful result.
func (r Result) ErrorKind() ErrKind {
	return r.errKind
}

// ErrorMessage returns the failure description, or "" for a successful result.
func (r Result) ErrorMessage() string {
	return r.errMsg
}

// Fields returns the check map of a successful result; nil after a failure.
func (r Result) Fields() map[string]any {
	return r.fields
}

// Field returns one named check value.
func (r Result) Field(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Bool returns a named boolean check, false if absent or not a bool.
func (r Result) Bool(name string) bool {
	v, ok := r.fields[name].(bool)
	return ok && v
}

func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(map[string]string{"error": r.errMsg})
	}
	return json.Marshal(r.fields)
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if msg, ok := m["error"].(string); ok && len(m) == 1 {
		r.errKind = ErrInternal
		r.errMsg = msg
		r.fields = nil
		return nil
	}
	r.fields = m
	r.errKind = ""
	r.errMsg = ""
	return nil
}

// NotFound is the value reported for an absent date or extracted field.
// Absence is not an error; the result stays successful.
const NotFound = "Not found"
