package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound marks lookups for entries or shows that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition marks watch-queue operations attempted from the
	// wrong lifecycle state (promote on non-queued, demote on non-watching).
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrNotYetAvailable marks promotions blocked because the entry's next
	// episode has not aired yet.
	ErrNotYetAvailable = errors.New("not yet available")
	// ErrExternalUnavailable marks catalog calls that failed or timed out.
	// Scheduling decisions treat it as "episode unavailable", never a crash.
	ErrExternalUnavailable = errors.New("catalog unavailable")
	// ErrValidation marks rejected caller input.
	ErrValidation = errors.New("validation error")
	// ErrTimeout marks operations that exceeded their deadline.
	ErrTimeout = errors.New("timeout")
	// ErrTransient marks failures that may succeed on retry.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes operation context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// AvailabilityError reports that an episode has not been released. AirDate is
// nil when the catalog has no known air date.
type AvailabilityError struct {
	ShowID  int64
	Season  int
	Episode int
	AirDate *time.Time
}

// Error implements the error interface.
func (e *AvailabilityError) Error() string {
	when := "unknown"
	if e.AirDate != nil {
		when = e.AirDate.Format("2006-01-02")
	}
	return fmt.Sprintf("show %d S%02dE%02d not yet available (airs: %s)", e.ShowID, e.Season, e.Episode, when)
}

// Unwrap ties availability errors to the ErrNotYetAvailable marker.
func (e *AvailabilityError) Unwrap() error {
	return ErrNotYetAvailable
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
