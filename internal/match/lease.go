package match

import (
	"regexp"
	"strings"

	"github.com/mvanroy/permit-validator/internal/textnorm"
)

var (
	// seller block: "Seller: Name: <owner> Address: <...> VAT"
	sellerRe = regexp.MustCompile(`(?is)seller:\s*name:\s*(.*?)\s*address:\s*(.*?)\s*vat`)
	// premises: "located at <address>" up to "the Buyer" or end of text
	premisesRe = regexp.MustCompile(`(?is)located at\s+(.*?)\s*(?:\bthe buyer\b|$)`)
)

// Lease extracts the building owner from the labeled seller block and the
// premises address from the "located at" clause, then compares both against
// the declared values after stripping every non-alphanumeric character.
// Unlike the other matchers this requires exact equality of the normalized
// forms, not containment: lease parties and premises must match verbatim.
func Lease(text string, facts Facts) Result {
	extractedOwner := ""
	if m := sellerRe.FindStringSubmatch(text); m != nil {
		extractedOwner = strings.TrimSpace(m[1])
	}

	extractedAddress := ""
	if m := premisesRe.FindStringSubmatch(text); m != nil {
		extractedAddress = strings.Join(strings.Fields(m[1]), " ")
	}

	ownerMatch := extractedOwner != "" &&
		textnorm.AlphaNumOnly(facts.OwnerName) == textnorm.AlphaNumOnly(extractedOwner)
	addressMatch := extractedAddress != "" &&
		textnorm.AlphaNumOnly(facts.BusinessAddress) == textnorm.AlphaNumOnly(extractedAddress)

	return Ok(map[string]any{
		"building_owner_match":     ownerMatch,
		"restaurant_address_match": addressMatch,
		"extracted_owner":          extractedOwner,
		"extracted_address":        extractedAddress,
	})
}
