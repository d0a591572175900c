package match

import (
	"strings"
	"time"

	"github.com/mvanroy/permit-validator/internal/dates"
	"github.com/mvanroy/permit-validator/internal/textnorm"
)

// Insurance checks a liability-insurance copy: company name as substring
// and coverage expiry from the "van <date> tot <date>" period lines, whose
// dates are written with Dutch or English month names. The latest end date
// across all periods is the coverage expiry; it must lie strictly after
// now. When no period is found at all the coverage counts as expired.
func Insurance(text string, facts Facts, now time.Time) Result {
	normalized := textnorm.Fold(text)
	companyNameMatch := strings.Contains(normalized, strings.ToLower(facts.CompanyName))

	expiryValid := false
	var endDate any = NotFound
	if ends := dates.CoverageEnds(text); len(ends) > 0 {
		latest := ends[0]
		for _, t := range ends[1:] {
			if t.After(latest) {
				latest = t
			}
		}
		endDate = latest.Format(dates.ISO)
		expiryValid = latest.After(now)
	}

	return Ok(map[string]any{
		"company_name_match": companyNameMatch,
		"expiry_valid":       expiryValid,
		"end_date":           endDate,
		"current_date":       now.Format(dates.ISO),
	})
}
