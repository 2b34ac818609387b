// ABOUTME: Clock interface so "now" fallbacks and future-date checks are testable
// ABOUTME: Production uses the system clock; tests inject a fixed instant

package interfaces

import "time"

// Clock supplies the current time. The date resolver's "now" fallback and
// the future-release filter both read it, which keeps pipeline runs
// reproducible under test.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the system time.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Tests use it to pin the
// fallback date and the future-release boundary.
type FixedClock struct {
	Instant time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.Instant }
