package match

import (
	"strings"

	"github.com/mvanroy/permit-validator/internal/textnorm"
)

// KBORegister checks a company-registry extract: company name as
// case-insensitive substring, company number on digit characters only, and
// the manager's name either as a full "first last" substring or with both
// parts present anywhere in the text.
func KBORegister(text string, facts Facts) Result {
	normalized := textnorm.Fold(text)

	companyNameMatch := strings.Contains(normalized, strings.ToLower(facts.CompanyName))
	companyNumberMatch := digitsMatch(facts.CompanyNumber, normalized)

	first := strings.ToLower(strings.TrimSpace(facts.FirstName))
	last := strings.ToLower(strings.TrimSpace(facts.LastName))
	fullNameFound := strings.Contains(normalized, first+" "+last)
	managerNameMatch := fullNameFound ||
		(strings.Contains(normalized, first) && strings.Contains(normalized, last))

	return Ok(map[string]any{
		"company_name_match":   companyNameMatch,
		"company_number_match": companyNumberMatch,
		"manager_name_match":   managerNameMatch,
	})
}

// digitsMatch compares a declared number against text with all punctuation
// ignored: "BE 0123.456.789" matches "0123456789".
func digitsMatch(declared, text string) bool {
	wanted := textnorm.DigitsOnly(declared)
	if wanted == "" {
		return false
	}
	return strings.Contains(textnorm.DigitsOnly(text), wanted)
}
