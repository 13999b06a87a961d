package blur

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by Run after the Orchestrator has been closed.
var ErrClosed = errors.New("blur: orchestrator closed")

// ConfigurationError reports a malformed kernel or input buffer.
// It is detected before any worker starts and before the output buffer is
// allocated.
type ConfigurationError struct {
	// Reason describes the violated precondition.
	Reason string

	// Err is the underlying sentinel, e.g. filter.ErrIncompleteRow.
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return "blur: configuration: " + e.Reason
	}
	return fmt.Sprintf("blur: configuration: %s: %v", e.Reason, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// WorkerFailure reports a fault inside the task computing output rows
// [Start, End). The whole run fails and no buffer is returned.
type WorkerFailure struct {
	Start int
	End   int
	Err   error
}

func (e *WorkerFailure) Error() string {
	return fmt.Sprintf("blur: worker failed on rows [%d, %d): %v", e.Start, e.End, e.Err)
}

func (e *WorkerFailure) Unwrap() error { return e.Err }
