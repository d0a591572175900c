package match

import (
	"strings"

	"github.com/mvanroy/permit-validator/internal/textnorm"
)

// Gazette checks an official-gazette publication for the declared company
// name and number. Same policies as the registry extract, applied
// independently to this document.
func Gazette(text string, facts Facts) Result {
	normalized := textnorm.Fold(text)

	return Ok(map[string]any{
		"company_name_match":   strings.Contains(normalized, strings.ToLower(facts.CompanyName)),
		"company_number_match": digitsMatch(facts.CompanyNumber, normalized),
	})
}
