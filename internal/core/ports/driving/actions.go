package driving

import "context"

// ActionService opens produced files for external actors.
// This is used by TUI and CLI adapters.
type ActionService interface {
	// OpenPath opens a file or folder in the default application.
	OpenPath(ctx context.Context, path string) error
}
