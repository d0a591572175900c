package match

import (
	"regexp"
	"strings"

	"github.com/mvanroy/permit-validator/internal/textnorm"
)

var (
	conformityRe  = regexp.MustCompile(`(?i)de installatie is conform`)
	addressLineRe = regexp.MustCompile(`(?i)adres:[ \t]*(.*)`)
)

// Electrical checks an electrical-compliance certificate for the literal
// conformity statement and for an "Adres:" line matching the declared
// business address. Address lines and the declared address are normalized
// the same way and containment counts in either direction; the first
// matching line wins.
func Electrical(text string, facts Facts) Result {
	conformityFound := conformityRe.MatchString(text)

	normExpected := textnorm.Address(facts.BusinessAddress)

	extractedAddress := ""
	addressMatch := false
	for _, m := range addressLineRe.FindAllStringSubmatch(text, -1) {
		normLine := textnorm.Address(m[1])
		if normLine == "" {
			continue
		}
		if strings.Contains(normExpected, normLine) || strings.Contains(normLine, normExpected) {
			extractedAddress = strings.TrimSpace(m[1])
			addressMatch = true
			break
		}
	}

	return Ok(map[string]any{
		"conformity_statement_found": conformityFound,
		"address_match":              addressMatch,
		"extracted_address":          extractedAddress,
		"expected_address":           facts.BusinessAddress,
	})
}
