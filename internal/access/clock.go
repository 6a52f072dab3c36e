package access

import "time"

// Clock abstracts time.Now so suspension-expiry comparisons are
// testable. Production code uses SystemClock; tests inject a fake.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
