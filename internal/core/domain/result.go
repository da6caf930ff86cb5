package domain

import "time"

// Status is the overall outcome of an operation.
type Status string

// Available statuses.
const (
	// StatusSucceeded means everything requested was produced.
	StatusSucceeded Status = "succeeded"

	// StatusPartial means output was produced but some items were skipped.
	StatusPartial Status = "partial"

	// StatusFailed means the operation was aborted.
	StatusFailed Status = "failed"
)

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// Description returns a human-readable description of the status.
func (s Status) Description() string {
	switch s {
	case StatusSucceeded:
		return "Succeeded"
	case StatusPartial:
		return "Partially succeeded"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// SkippedItem is an input that was left out of an otherwise successful run.
type SkippedItem struct {
	Path   string
	Reason string
}

// Result is the typed outcome of one operation.
type Result struct {
	// ID uniquely identifies this run.
	ID string

	// Operation is what was run.
	Operation Operation

	// Status is the overall outcome.
	Status Status

	// Inputs are the source paths (folder or document). Never passwords.
	Inputs []string

	// Output is the destination file or directory.
	Output string

	// Files lists every file written, in page order.
	Files []string

	// Pages is the number of pages produced or processed.
	Pages int

	// Skipped lists inputs left out of the output.
	Skipped []SkippedItem

	// Warnings are notes that did not affect the outcome.
	Warnings []string

	// Err is set when Status is StatusFailed.
	Err error

	StartedAt time.Time
	EndedAt   time.Time
}

// NewResult starts a result for op.
func NewResult(id string, op Operation, output string, inputs ...string) *Result {
	return &Result{
		ID:        id,
		Operation: op,
		Inputs:    inputs,
		Output:    output,
		StartedAt: time.Now(),
	}
}

// Skip records an input that was left out.
func (r *Result) Skip(path string, err error) {
	r.Skipped = append(r.Skipped, SkippedItem{Path: path, Reason: err.Error()})
}

// Warn records a note for the caller.
func (r *Result) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Fail finishes the result as failed and returns err for convenience.
func (r *Result) Fail(err error) error {
	r.Status = StatusFailed
	r.Err = err
	r.EndedAt = time.Now()
	return err
}

// Finish marks the result succeeded, or partial if anything was skipped.
func (r *Result) Finish() {
	r.Status = StatusSucceeded
	if len(r.Skipped) > 0 {
		r.Status = StatusPartial
	}
	r.EndedAt = time.Now()
}

// OK returns true unless the operation failed.
func (r *Result) OK() bool {
	return r.Status != StatusFailed
}

// Duration returns how long the operation took.
func (r *Result) Duration() time.Duration {
	if r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}
