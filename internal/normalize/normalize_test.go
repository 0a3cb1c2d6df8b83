package normalize

import (
	"testing"
	"time"
)

// fixedClock pins normalization fallbacks to a known instant.
func fixedClock() time.Time {
	return time.Date(2025, time.August, 4, 10, 30, 0, 0, time.Local)
}

func newTestNormalizer() *Normalizer {
	return NewWithClock(fixedClock)
}

func TestNormalizer_Blank(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name  string
		value string
		def   string
		want  string
	}{
		{"empty string", "", "fallback", "fallback"},
		{"whitespace only", "   ", "fallback", "fallback"},
		{"literal null lowercase", "null", "fallback", "fallback"},
		{"literal null uppercase", "NULL", "fallback", "fallback"},
		{"literal none", "None", "fallback", "fallback"},
		{"real value unchanged", "RYDER01", "fallback", "RYDER01"},
		{"value with spaces unchanged", "John Smith", "fallback", "John Smith"},
		{"empty default", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Blank(tt.value, tt.def); got != tt.want {
				t.Errorf("Blank(%q, %q) = %q, want %q", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestNormalizer_Consent(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"yes uppercase", "YES", "true"},
		{"yes lowercase", "yes", "true"},
		{"true", "true", "true"},
		{"true mixed case", "True", "true"},
		{"one", "1", "true"},
		{"y", "y", "true"},
		{"y uppercase", "Y", "true"},
		{"zero", "0", "false"},
		{"no", "no", "false"},
		{"empty", "", "false"},
		{"whitespace", "  ", "false"},
		{"garbage", "maybe", "false"},
		{"literal null", "null", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Consent(tt.value); got != tt.want {
				t.Errorf("Consent(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalizer_ScheduleDate(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"blank falls back to current date", "", "2025-08-04"},
		{"literal null falls back", "null", "2025-08-04"},
		{"already canonical", "2025-08-04", "2025-08-04"},
		{"slash ymd", "2025/08/04", "2025-08-04"},
		{"iso datetime with zone", "2025-08-04T10:30:00Z", "2025-08-04"},
		{"iso datetime without zone", "2025-08-04T10:30:00", "2025-08-04"},
		{"iso datetime with fraction", "2025-08-04T10:30:00.123456", "2025-08-04"},
		{"space datetime", "2025-08-04 10:30:00", "2025-08-04"},
		{"us slash date", "08/04/2025", "2025-08-04"},
		{"ambiguous slash date prefers MM/DD", "03/04/2025", "2025-03-04"},
		{"day-first slash date when month invalid", "25/12/2025", "2025-12-25"},
		{"long month day year", "August 4, 2025", "2025-08-04"},
		{"day month year", "4 August 2025", "2025-08-04"},
		{"unparseable falls back", "next tuesday", "2025-08-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.ScheduleDate(tt.value); got != tt.want {
				t.Errorf("ScheduleDate(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalizer_ScheduleDate_Idempotent(t *testing.T) {
	n := newTestNormalizer()

	inputs := []string{"", "2025-08-04", "2025/08/04", "08/04/2025", "2025-08-04T10:30:00Z", "garbage"}
	for _, input := range inputs {
		once := n.ScheduleDate(input)
		twice := n.ScheduleDate(once)
		if once != twice {
			t.Errorf("ScheduleDate not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalizer_DateTime(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"blank falls back to current time", "", "2025-08-04T10:30:00"},
		{"literal none falls back", "None", "2025-08-04T10:30:00"},
		{"already canonical", "2025-08-04T04:50:15", "2025-08-04T04:50:15"},
		{"long form with weekday and zone", "Monday, August 4, 2025 4:50:15 AM EDT", "2025-08-04T04:50:15"},
		{"long form without weekday", "August 4, 2025 4:50:15 PM", "2025-08-04T16:50:15"},
		{"long form without zone", "Monday, August 4, 2025 4:50:15 AM", "2025-08-04T04:50:15"},
		{"iso with trailing z", "2025-08-04T04:50:15Z", "2025-08-04T04:50:15"},
		{"iso with offset", "2025-08-04T04:50:15+05:00", "2025-08-04T04:50:15"},
		{"iso with fraction", "2025-08-04T04:50:15.250", "2025-08-04T04:50:15"},
		{"space separated", "2025-08-04 04:50:15", "2025-08-04T04:50:15"},
		{"unparseable falls back", "sometime soon", "2025-08-04T10:30:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.DateTime(tt.value); got != tt.want {
				t.Errorf("DateTime(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalizer_DateTime_Idempotent(t *testing.T) {
	n := newTestNormalizer()

	inputs := []string{"", "2025-08-04T04:50:15", "Monday, August 4, 2025 4:50:15 AM EDT", "garbage"}
	for _, input := range inputs {
		once := n.DateTime(input)
		twice := n.DateTime(once)
		if once != twice {
			t.Errorf("DateTime not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
