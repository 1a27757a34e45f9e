package consolidator

import (
	"errors"
	"fmt"
)

// ErrInvalidPeriod rejects requests whose start date falls after the end
// date.
var ErrInvalidPeriod = errors.New("invalid period: start date is after end date")

// ErrUnknownSource rejects a requested source name the registry does not
// know.
var ErrUnknownSource = errors.New("unknown data source")

// SourceFetchError wraps an upstream gateway failure for one source. The
// consolidation engine treats it as recoverable: the source is dropped
// with a missing_data warning and the remaining sources proceed.
type SourceFetchError struct {
	Source string
	Err    error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("fetch source %s: %v", e.Source, e.Err)
}

func (e *SourceFetchError) Unwrap() error { return e.Err }

// ConsolidationError marks a fatal request-level failure during summary or
// quality assembly, as opposed to a recoverable per-source fetch issue.
type ConsolidationError struct {
	Err error
}

func (e *ConsolidationError) Error() string {
	return fmt.Sprintf("consolidation failed: %v", e.Err)
}

func (e *ConsolidationError) Unwrap() error { return e.Err }
