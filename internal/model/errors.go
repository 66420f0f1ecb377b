package model

import "fmt"

// MalformedInputError reports that no JSON document could be recovered from the input.
type MalformedInputError struct {
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed input: %s: %v", e.Reason, e.Err)
	}
	return "malformed input: " + e.Reason
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// InvalidTimingError reports an event whose computed duration is negative.
type InvalidTimingError struct {
	Label    string
	Start    float64
	Duration float64
}

func (e *InvalidTimingError) Error() string {
	return fmt.Sprintf("invalid timing for %q: start=%v dur=%v", e.Label, e.Start, e.Duration)
}
