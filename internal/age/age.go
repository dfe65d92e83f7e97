// Package age computes how old a server timestamp is.
package age

import "time"

// AgeData returns how long ago then was, relative to now. It reports false
// when then is unset. Timestamps ahead of now, from clock skew between the
// client and the server, count as zero.
func AgeData(then time.Time, now time.Time) (time.Duration, bool) {
	if then.IsZero() {
		return 0, false
	}
	if then.After(now) {
		return 0, true
	}
	return now.Sub(then), true
}
