package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure ActionService implements the interface.
var _ driving.ActionService = (*ActionService)(nil)

// ActionService opens produced files and folders.
type ActionService struct {
	goos  string
	start func(name string, args ...string) error
}

// NewActionService creates a new action service.
func NewActionService() *ActionService {
	return &ActionService{
		goos:  runtime.GOOS,
		start: startCommand,
	}
}

// OpenPath opens a file or folder in the default application.
func (s *ActionService) OpenPath(_ context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return domain.ErrInvalidInput
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return err
	}

	name, args, err := openerCommand(s.goos, path)
	if err != nil {
		return err
	}
	return s.start(name, args...)
}

// openerCommand returns the OS command that opens path.
func openerCommand(goos, path string) (string, []string, error) {
	switch goos {
	case osDarwin:
		return "open", []string{path}, nil
	case osLinux:
		return "xdg-open", []string{path}, nil
	case osWindows:
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// startCommand launches the opener without waiting for it.
func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}
