// Package normalize coerces loosely-formatted caller fields into the exact
// formats the RLM scheduling API requires. Every operation is total:
// unparseable input degrades to a documented default instead of failing.
package normalize

import (
	"regexp"
	"strings"
	"time"
)

const (
	// DateTimeLayout is the upstream timestamp contract (local, no zone).
	DateTimeLayout = "2006-01-02T15:04:05"
	// DateLayout is the upstream schedule-date contract.
	DateLayout = "2006-01-02"

	longFormLayout = "January 2, 2006 3:04:05 PM"
)

// isoDateTimeLayouts recognize datetime-shaped input. Go's parser accepts a
// fractional second after the seconds field even when the layout omits it.
var isoDateTimeLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// scheduleDateLayouts are tried in order; the first successful parse wins.
// MM/DD/YYYY deliberately precedes DD/MM/YYYY, so ambiguous inputs like
// 03/04/2025 resolve to March 4. Upstream behavior depends on this order.
var scheduleDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"January 2, 2006",
	"2 January 2006",
}

var (
	weekdayPrefix = regexp.MustCompile(`^[A-Za-z]+,\s*`)
	tzSuffix      = regexp.MustCompile(`\s+[A-Z]{3,4}$`)
)

// consentTruthy is the accepted truthy set for consent flags.
var consentTruthy = map[string]bool{
	"true": true,
	"yes":  true,
	"1":    true,
	"y":    true,
}

// Normalizer holds the clock used for blank-date fallbacks. Injecting it
// keeps normalization deterministic under test.
type Normalizer struct {
	now func() time.Time
}

// New creates a Normalizer backed by the real clock.
func New() *Normalizer {
	return NewWithClock(time.Now)
}

// NewWithClock creates a Normalizer with an explicit time source.
func NewWithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Blank maps absent-looking values to def. Empty, whitespace-only, "null"
// and "none" (case-insensitive) count as absent; everything else passes
// through unchanged.
func (n *Normalizer) Blank(value, def string) string {
	if isBlank(value) {
		return def
	}
	return value
}

// Consent canonicalizes a consent flag to "true" or "false". Only the
// truthy set {"true","yes","1","y"} (case-insensitive) maps to "true".
func (n *Normalizer) Consent(value string) string {
	if consentTruthy[strings.ToLower(strings.TrimSpace(value))] {
		return "true"
	}
	return "false"
}

// DateTime coerces a timestamp to the upstream YYYY-MM-DDTHH:MM:SS form.
// Parse attempts run in order and the chain falls back to the current local
// time; it never fails.
func (n *Normalizer) DateTime(value string) string {
	v := strings.TrimSpace(value)
	if isBlank(v) {
		return n.now().Format(DateTimeLayout)
	}

	// Already canonical.
	if len(v) == len(DateTimeLayout) {
		if _, err := time.Parse(DateTimeLayout, v); err == nil {
			return v
		}
	}

	// Long form such as "Monday, August 4, 2025 4:50:15 AM EDT": drop the
	// weekday and the timezone abbreviation, then parse what remains.
	stripped := tzSuffix.ReplaceAllString(weekdayPrefix.ReplaceAllString(v, ""), "")
	if t, err := time.Parse(longFormLayout, stripped); err == nil {
		return t.Format(DateTimeLayout)
	}

	for _, layout := range isoDateTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(DateTimeLayout)
		}
	}

	return n.now().Format(DateTimeLayout)
}

// ScheduleDate coerces a date to the upstream YYYY-MM-DD form. Datetime
// input keeps its date part; the format list is tried in order and the
// chain falls back to the current local date. Never fails.
func (n *Normalizer) ScheduleDate(value string) string {
	v := strings.TrimSpace(value)
	if isBlank(v) {
		return n.now().Format(DateLayout)
	}

	// Already canonical.
	if len(v) == len(DateLayout) {
		if _, err := time.Parse(DateLayout, v); err == nil {
			return v
		}
	}

	// Datetime-shaped input: keep the date part.
	if len(v) > len(DateLayout) {
		for _, layout := range isoDateTimeLayouts {
			if _, err := time.Parse(layout, v); err == nil {
				return v[:len(DateLayout)]
			}
		}
	}

	for _, layout := range scheduleDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(DateLayout)
		}
	}

	return n.now().Format(DateLayout)
}

func isBlank(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "null", "none":
		return true
	}
	return false
}
