// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/styles"
)

// maskChar replaces each character of a secret prompt.
const maskChar = '•'

// Prompt wraps a bubbles textinput with a label. A secret prompt masks
// what is typed.
type Prompt struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewPrompt creates a new prompt component.
func NewPrompt(s *styles.Styles) *Prompt {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Width = 50

	return &Prompt{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the prompt.
func (p *Prompt) Init() tea.Cmd {
	return textinput.Blink
}

// Configure resets the prompt for a new question.
func (p *Prompt) Configure(label, placeholder string, secret bool) tea.Cmd {
	p.label = label
	p.textinput.Reset()
	p.textinput.Placeholder = placeholder
	if secret {
		p.textinput.EchoMode = textinput.EchoPassword
		p.textinput.EchoCharacter = maskChar
	} else {
		p.textinput.EchoMode = textinput.EchoNormal
	}
	return p.textinput.Focus()
}

// Update handles input messages.
func (p *Prompt) Update(msg tea.Msg) (*Prompt, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the prompt.
func (p *Prompt) View() string {
	label := p.styles.Title.Render(p.label + ": ")
	field := p.styles.InputField.Render(p.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Label returns the current label.
func (p *Prompt) Label() string {
	return p.label
}

// Value returns the current input value.
func (p *Prompt) Value() string {
	return p.textinput.Value()
}

// SetValue sets the input value.
func (p *Prompt) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Secret returns true if input is masked.
func (p *Prompt) Secret() bool {
	return p.textinput.EchoMode == textinput.EchoPassword
}

// Focused returns whether the prompt is focused.
func (p *Prompt) Focused() bool {
	return p.textinput.Focused()
}

// Blur removes focus from the prompt.
func (p *Prompt) Blur() {
	p.textinput.Blur()
}

// SetWidth sets the width of the prompt.
func (p *Prompt) SetWidth(width int) {
	p.width = width
	// Account for label and border
	inputWidth := width - len(p.label) - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// Width returns the current width.
func (p *Prompt) Width() int {
	return p.width
}
