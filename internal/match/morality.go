package match

import (
	"strings"
	"time"

	"github.com/mvanroy/permit-validator/internal/dates"
	"github.com/mvanroy/permit-validator/internal/textnorm"
)

// MoralityMaxAge is the trailing validity window for a morality
// certificate: it must have been issued within the last 30 days.
const MoralityMaxAge = 30 * 24 * time.Hour

// Morality checks the applicant's name and the certificate issue date. The
// date is the one following the "datum" label; it is valid when it is not
// in the future and at most 30 days old. A certificate dated exactly 30
// days ago is still valid.
func Morality(text string, facts Facts, now time.Time) Result {
	normalized := textnorm.Fold(text)
	// slashes survive so the date stays findable in the stripped form too
	clean := textnorm.Keep(text, "/")

	first := strings.ToLower(strings.TrimSpace(facts.FirstName))
	last := strings.ToLower(strings.TrimSpace(facts.LastName))
	nameValid := strings.Contains(normalized, first+" "+last) ||
		(strings.Contains(clean, first) && strings.Contains(clean, last))

	dateValid := false
	var certificateDate any
	if d, ok := dates.AfterLabel(normalized); ok {
		certificateDate = d.Format(dates.ISO)
		dateValid = dates.WithinTrailingWindow(d, now, MoralityMaxAge)
	}

	return Ok(map[string]any{
		"name_valid":       nameValid,
		"date_valid":       dateValid,
		"certificate_date": certificateDate,
	})
}
