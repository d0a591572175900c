// Package dates locates calendar dates in free text and applies the
// validity rules the matchers share: latest-future selection for expiry
// dates and trailing-window checks for issuance dates. Text coming out of
// OCR is noisy, so every pattern tolerates mixed separators and parse
// failures are dropped silently.
package dates

import (
	"regexp"
	"strings"
	"time"
)

// ISO is the canonical layout used when reporting dates back to the caller.
const ISO = "2006-01-02"

type pattern struct {
	re     *regexp.Regexp
	layout string
}

// Expiry patterns, in preference order. The labeled form tolerates up to 20
// junk characters between the label and the date, which absorbs common OCR
// artifacts.
var expiryPatterns = []pattern{
	{regexp.MustCompile(`(?i)(?:geldig|valid|valable|verloopt|expires?)[^\d]{1,20}(\d{2}[./-]\d{2}[./-]\d{4})`), "02.01.2006"},
	{regexp.MustCompile(`\b(\d{2}[./-]\d{2}[./-]\d{4})\b`), "02.01.2006"},
	{regexp.MustCompile(`\b(\d{4}[./-]\d{2}[./-]\d{2})\b`), "2006-01-02"},
	{regexp.MustCompile(`\b(\d{2} \d{2} \d{4})\b`), "02 01 2006"},
}

var sepRe = regexp.MustCompile(`[/-]`)

// normalizeSeparators rewrites slash/dash separators so a single layout per
// pattern suffices.
func normalizeSeparators(s, to string) string {
	return sepRe.ReplaceAllString(s, to)
}

// FutureDates returns every date candidate in text that lies strictly after
// now, scanning all expiry patterns.
func FutureDates(text string, now time.Time) []time.Time {
	var out []time.Time
	for _, p := range expiryPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			raw := m[1]
			if strings.Contains(p.layout, ".") {
				raw = normalizeSeparators(raw, ".")
			} else if strings.Contains(p.layout, "-") {
				raw = normalizeSeparators(raw, "-")
			}
			t, err := time.Parse(p.layout, raw)
			if err != nil {
				continue
			}
			if t.After(now) {
				out = append(out, t)
			}
		}
	}
	return out
}

// LatestFuture picks the most generous reading of an expiry: the maximum of
// all strictly-future candidates. ok is false when no candidate exists.
func LatestFuture(text string, now time.Time) (latest time.Time, ok bool) {
	for _, t := range FutureDates(text, now) {
		if !ok || t.After(latest) {
			latest = t
			ok = true
		}
	}
	return latest, ok
}

// Labeled date handling: dd/mm/yyyy-ish token directly after a label such as
// "datum", or the first date-shaped token anywhere after that label.
var (
	labeledDateRe = regexp.MustCompile(`(?i)datum\s*:?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`)
	looseDateRe   = regexp.MustCompile(`\b(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})\b`)
)

// AfterLabel finds the date tied to the "datum" label in text. It prefers a
// date immediately following the label and falls back to the first
// date-shaped token in the remainder of the text after the label.
func AfterLabel(text string) (time.Time, bool) {
	m := labeledDateRe.FindStringSubmatch(text)
	if m == nil {
		_, rest, found := strings.Cut(strings.ToLower(text), "datum")
		if !found {
			return time.Time{}, false
		}
		m = looseDateRe.FindStringSubmatch(rest)
		if m == nil {
			return time.Time{}, false
		}
	}
	return ParseDayFirst(m[1])
}

var anySepRe = regexp.MustCompile(`[/\-.]`)

// ParseDayFirst parses a day-first numeric date with any of the tolerated
// separators and a two- or four-digit year.
func ParseDayFirst(raw string) (time.Time, bool) {
	raw = anySepRe.ReplaceAllString(raw, "/")
	for _, layout := range []string{"2/1/2006", "2/1/06"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// WithinTrailingWindow reports whether d is valid as an issuance date: not
// in the future and at most maxAge old relative to now. The comparison is
// on calendar dates, so a certificate dated exactly maxAge before now is
// still valid regardless of the time of day.
func WithinTrailingWindow(d, now time.Time, maxAge time.Duration) bool {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	d, now = day(d), day(now)
	if d.After(now) {
		return false
	}
	return now.Sub(d) <= maxAge
}

// Dutch and English month names, used by the insurance period parser.
var monthNames = map[string]time.Month{
	"januari": time.January, "january": time.January,
	"februari": time.February, "february": time.February,
	"maart": time.March, "march": time.March,
	"april": time.April,
	"mei":   time.May, "may": time.May,
	"juni": time.June, "june": time.June,
	"juli": time.July, "july": time.July,
	"augustus": time.August, "august": time.August,
	"september": time.September,
	"oktober":   time.October, "october": time.October,
	"november": time.November,
	"december": time.December,
}

var monthNameDateRe = regexp.MustCompile(`^\s*(\d{1,2})\s+([a-zA-Z]+)\s+(\d{4})\s*$`)

// ParseMonthName parses "17 augustus 2027" or "17 august 2027" style dates.
func ParseMonthName(raw string) (time.Time, bool) {
	raw = anySepRe.ReplaceAllString(raw, " ")
	m := monthNameDateRe.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := monthNames[strings.ToLower(m[2])]
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse("2 1 2006", m[1]+" "+monthNumber(month)+" "+m[3])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func monthNumber(m time.Month) string {
	return time.Date(2000, m, 1, 0, 0, 0, 0, time.UTC).Format("1")
}

// "van <date> tot <date>" coverage periods on liability-insurance copies.
var periodRe = regexp.MustCompile(`(?i)van\s+(\d{1,2}\s+\w+\s+\d{4})\s+tot\s+(\d{1,2}\s+\w+\s+\d{4})`)

// CoverageEnds returns the end date of every "van ... tot ..." range found
// in text, skipping ranges whose end date does not parse.
func CoverageEnds(text string) []time.Time {
	var out []time.Time
	for _, m := range periodRe.FindAllStringSubmatch(text, -1) {
		if t, ok := ParseMonthName(m[2]); ok {
			out = append(out, t)
		}
	}
	return out
}
