package match

import (
	"regexp"
	"strings"
	"time"

	"github.com/mvanroy/permit-validator/internal/dates"
	"github.com/mvanroy/permit-validator/internal/textnorm"
)

// IDCard checks that both declared name parts occur in the card text, in
// either order, and that the card carries an expiry date strictly in the
// future. Among all future-dated candidates the latest one is taken as the
// expiry.
func IDCard(text string, facts Facts, now time.Time) Result {
	// keep date separators; everything else noisy becomes a space
	clean := textnorm.Keep(text, "./-")

	first := regexp.QuoteMeta(strings.ToLower(strings.TrimSpace(facts.FirstName)))
	last := regexp.QuoteMeta(strings.ToLower(strings.TrimSpace(facts.LastName)))
	namePat, err := regexp.Compile(`\b` + first + `\b.*?\b` + last + `\b|\b` + last + `\b.*?\b` + first + `\b`)
	if err != nil {
		return Errf(ErrInternal, "compile name pattern: %v", err)
	}
	nameMatch := namePat.MatchString(clean)

	expiryDate := NotFound
	latest, ok := dates.LatestFuture(clean, now)
	if ok {
		expiryDate = latest.Format(dates.ISO)
	}

	return Ok(map[string]any{
		"name_match":   nameMatch,
		"expiry_valid": ok,
		"expiry_date":  expiryDate,
	})
}
