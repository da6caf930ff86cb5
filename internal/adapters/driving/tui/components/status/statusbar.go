// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateWorking State = "working"
	StateError   State = "error"
	StateResult  State = "result"
)

// Bar displays the selected folder, application state and key hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	folder  string
	images  int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateWorking:
		return s.styles.Muted.Render("Working…")
	case StateError:
		if s.message != "" {
			return s.styles.Failure.Render(s.message)
		}
		return s.styles.Failure.Render("Error")
	case StateReady, StateResult:
		if s.message != "" {
			return s.styles.Normal.Render(s.message)
		}
	}
	if s.folder != "" {
		return s.styles.Normal.Render(fmt.Sprintf("Folder: %s (%d images)", s.folder, s.images))
	}
	return s.styles.Muted.Render("No folder selected")
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StateWorking:
		return ""
	case StateResult:
		bindings = s.keymap.ResultHelp()
	case StateReady, StateError:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a transient message. An empty message shows the folder.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetFolder records the selected image folder.
func (s *Bar) SetFolder(folder string, images int) {
	s.folder = folder
	s.images = images
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the state and message. The folder is kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
