package ui

import (
	"testing"
	"time"
)

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	cases := []struct {
		name string
		then time.Time
		want string
	}{
		{name: "unset", then: time.Time{}, want: "-"},
		{name: "seconds", then: now.Add(-45 * time.Second), want: "just now"},
		{name: "future skew", then: now.Add(time.Minute), want: "just now"},
		{name: "minutes", then: now.Add(-2*time.Minute - 10*time.Second), want: "2m ago"},
		{name: "hours", then: now.Add(-3*time.Hour - 5*time.Minute), want: "3h ago"},
		{name: "days", then: now.Add(-50 * time.Hour), want: "2d ago"},
		{name: "weeks", then: now.Add(-15 * 24 * time.Hour), want: "2w ago"},
		{name: "same year", then: time.Date(2025, 3, 4, 9, 0, 0, 0, time.Local), want: "Mar 4"},
		{name: "older year", then: time.Date(2023, 11, 20, 9, 0, 0, 0, time.Local), want: "Nov 20 2023"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTimeAgo(tc.then, now); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(time.Time{}); got != "-" {
		t.Fatalf("expected - for zero time, got %s", got)
	}

	then := time.Date(2025, 3, 4, 5, 6, 0, 0, time.Local)
	if got := FormatTimestamp(then); got != "2025-03-04 05:06" {
		t.Fatalf("expected 2025-03-04 05:06, got %s", got)
	}
}
