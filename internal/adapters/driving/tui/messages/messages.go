// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main action menu.
	ViewMenu ViewType = iota
	// ViewForm collects the inputs of an action.
	ViewForm
	// ViewResult shows the outcome of an action.
	ViewResult
	// ViewHistory lists past operations.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewForm:
		return "form"
	case ViewResult:
		return "result"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Action identifies a menu action that takes input.
type Action int

const (
	// ActionSelectFolder chooses the image folder for conversion.
	ActionSelectFolder Action = iota
	// ActionConvert converts the selected folder to a PDF.
	ActionConvert
	// ActionEncrypt protects a PDF with a password.
	ActionEncrypt
	// ActionDecrypt removes password protection.
	ActionDecrypt
	// ActionExtract renders the pages of a PDF to images.
	ActionExtract
)

// String returns the menu label of the action.
func (a Action) String() string {
	switch a {
	case ActionSelectFolder:
		return "Select image folder"
	case ActionConvert:
		return "Convert images to PDF"
	case ActionEncrypt:
		return "Encrypt PDF"
	case ActionDecrypt:
		return "Decrypt PDF"
	case ActionExtract:
		return "Extract images from PDF"
	default:
		return "Unknown"
	}
}

// ActionSelected is sent when a menu action is chosen.
type ActionSelected struct {
	Action Action
}

// FormSubmitted carries the values entered for an action, keyed by field.
type FormSubmitted struct {
	Action Action
	Values map[string]string
}

// FormCancelled is sent when a form is abandoned.
type FormCancelled struct{}

// FolderSelected carries the result of scanning a chosen folder.
type FolderSelected struct {
	Folder string
	Images int
	Err    error
}

// OperationCompleted carries the outcome of an operation.
type OperationCompleted struct {
	Result *domain.Result
	Err    error
}

// HistoryLoaded carries recent history entries.
type HistoryLoaded struct {
	Entries []domain.HistoryEntry
	Err     error
}

// PathOpened signals an output was handed to the OS opener.
type PathOpened struct {
	Path string
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
