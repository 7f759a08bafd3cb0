package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTranscript is returned when the request transcript is blank
	// after trimming whitespace.
	ErrEmptyTranscript = errors.New("pipeline: no transcript provided")

	// ErrNoAudio is returned when an audio request carries no file.
	ErrNoAudio = errors.New("pipeline: no audio file provided")
)

// QuotaError reports that a monthly usage limit would be exceeded. Handlers
// map it to HTTP 429.
type QuotaError struct {
	Resource  string
	Remaining float64
	Limit     float64
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("pipeline: monthly %s limit reached (%.1f of %.1f remaining)", e.Resource, e.Remaining, e.Limit)
}

// IsQuotaError reports whether err is a QuotaError, unwrapping as needed.
func IsQuotaError(err error) (*QuotaError, bool) {
	var qe *QuotaError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}
