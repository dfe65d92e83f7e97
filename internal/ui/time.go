package ui

import (
	"strconv"
	"time"

	internalage "github.com/amonks/noteit/internal/age"
)

// TimestampLayout is how absolute times are shown.
const TimestampLayout = "2006-01-02 15:04"

// FormatTimeAgo describes how long ago a note changed: "just now", "5m ago",
// "3h ago", "2d ago", "3w ago". Anything older than four weeks is shown as a
// date. Unset times render as "-".
func FormatTimeAgo(then time.Time, now time.Time) string {
	age, ok := internalage.AgeData(then, now)
	if !ok {
		return "-"
	}

	const (
		day  = 24 * time.Hour
		week = 7 * day
	)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return ago(age/time.Minute, "m")
	case age < day:
		return ago(age/time.Hour, "h")
	case age < week:
		return ago(age/day, "d")
	case age < 5*week:
		return ago(age/week, "w")
	}

	local := then.Local()
	if local.Year() == now.Local().Year() {
		return local.Format("Jan 2")
	}
	return local.Format("Jan 2 2006")
}

func ago(n time.Duration, unit string) string {
	return strconv.FormatInt(int64(n), 10) + unit + " ago"
}

// FormatTimestamp renders then in local time, or "-" when unset.
func FormatTimestamp(then time.Time) string {
	if then.IsZero() {
		return "-"
	}
	return then.Local().Format(TimestampLayout)
}
