package domain

import "time"

// HistoryEntry is the persisted record of one operation.
// It never contains a password.
type HistoryEntry struct {
	ID        string
	Operation Operation
	Status    Status
	Inputs    []string
	Output    string
	Pages     int
	Skipped   int
	Error     string
	StartedAt time.Time
	EndedAt   time.Time
}

// NewHistoryEntry projects a result into a history entry.
func NewHistoryEntry(r *Result) HistoryEntry {
	entry := HistoryEntry{
		ID:        r.ID,
		Operation: r.Operation,
		Status:    r.Status,
		Inputs:    append([]string(nil), r.Inputs...),
		Output:    r.Output,
		Pages:     r.Pages,
		Skipped:   len(r.Skipped),
		StartedAt: r.StartedAt,
		EndedAt:   r.EndedAt,
	}
	if r.Err != nil {
		entry.Error = r.Err.Error()
	}
	return entry
}
