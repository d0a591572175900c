package match

import "strings"

// Facts holds the applicant-declared values a submission is checked
// against. Matchers read it, never mutate it.
type Facts struct {
	FirstName       string
	LastName        string
	CompanyName     string
	CompanyNumber   string
	OwnerName       string // building owner on the lease agreement
	BusinessAddress string
}

// FullName is the declared "first last" form used by name checks.
func (f Facts) FullName() string {
	return strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName)
}
