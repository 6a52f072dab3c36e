package access

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when the target member is absent or not
// enrolled. Handlers map it to a 404.
var ErrNotFound = errors.New("member not found")

// ForbiddenError is returned when the viewer is suspended or has just
// exceeded the preview quota. Handlers map it to a 403. Until carries
// the suspension expiry for the user-facing message when known.
type ForbiddenError struct {
	Reason string
	Until  *time.Time
}

func (e *ForbiddenError) Error() string {
	if e.Until != nil {
		return fmt.Sprintf("%s (blocked until %s)", e.Reason, e.Until.Format("02.01.2006"))
	}
	return e.Reason
}

// ValidationError rejects bad input (out-of-range emergency duration,
// empty reason) before any state mutation occurs. Handlers map it to
// a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
