// Package form provides the prompt sequence that collects an action's inputs.
package form

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/styles"
)

// Field keys shared with the app.
const (
	KeyFolder    = "folder"
	KeySource    = "source"
	KeyOutput    = "output"
	KeyOutputDir = "output_dir"
	KeyPassword  = "password"
)

// Field is one prompt of a form.
type Field struct {
	Key         string
	Label       string
	Placeholder string

	// Secret masks the input.
	Secret bool

	// Optional fields may be left empty. Leaving a required field empty
	// cancels the form.
	Optional bool
}

// FieldsFor returns the prompts of an action, in order.
func FieldsFor(action messages.Action) []Field {
	switch action {
	case messages.ActionSelectFolder:
		return []Field{
			{Key: KeyFolder, Label: "Image folder", Placeholder: "~/Pictures/scans"},
		}
	case messages.ActionConvert:
		return []Field{
			{Key: KeyOutput, Label: "Save PDF as", Placeholder: "album.pdf"},
		}
	case messages.ActionEncrypt:
		return []Field{
			{Key: KeySource, Label: "PDF to encrypt", Placeholder: "report.pdf"},
			{Key: KeyOutput, Label: "Save encrypted PDF as", Placeholder: "report-locked.pdf"},
			{Key: KeyPassword, Label: "Password", Secret: true},
		}
	case messages.ActionDecrypt:
		return []Field{
			{Key: KeySource, Label: "PDF to decrypt", Placeholder: "report-locked.pdf"},
			{Key: KeyOutput, Label: "Save decrypted PDF as", Placeholder: "report.pdf"},
			{Key: KeyPassword, Label: "Password", Secret: true},
		}
	case messages.ActionExtract:
		return []Field{
			{Key: KeySource, Label: "PDF to extract from", Placeholder: "slides.pdf"},
			{Key: KeyOutputDir, Label: "Save images in", Placeholder: "slides-pages"},
			{Key: KeyPassword, Label: "Password (if protected)", Secret: true, Optional: true},
		}
	default:
		return nil
	}
}

// View asks each field of a form in turn.
type View struct {
	styles *styles.Styles
	prompt *input.Prompt
	action messages.Action
	fields []Field
	values map[string]string
	index  int
	width  int
	height int
}

// NewView creates a new form view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		prompt: input.NewPrompt(s),
		values: make(map[string]string),
		width:  80,
		height: 24,
	}
}

// Start resets the form for an action and focuses the first prompt.
func (v *View) Start(action messages.Action) tea.Cmd {
	v.action = action
	v.fields = FieldsFor(action)
	v.values = make(map[string]string, len(v.fields))
	v.index = 0
	if len(v.fields) == 0 {
		return cancel
	}
	return tea.Batch(v.configure(), v.prompt.Init())
}

func (v *View) configure() tea.Cmd {
	f := v.fields[v.index]
	cmd := v.prompt.Configure(f.Label, f.Placeholder, f.Secret)
	v.prompt.SetWidth(v.width)
	return cmd
}

func cancel() tea.Msg {
	return messages.FormCancelled{}
}

// Update handles messages for the form view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return v, cancel
		case tea.KeyEnter:
			return v, v.submitField()
		}
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

// submitField stores the current answer and advances.
func (v *View) submitField() tea.Cmd {
	if v.index >= len(v.fields) {
		return nil
	}
	f := v.fields[v.index]
	value := v.prompt.Value()
	if !f.Secret {
		value = strings.TrimSpace(value)
	}
	if value == "" && !f.Optional {
		return cancel
	}
	v.values[f.Key] = value

	v.index++
	if v.index < len(v.fields) {
		return v.configure()
	}

	v.prompt.Blur()
	submitted := messages.FormSubmitted{Action: v.action, Values: v.values}
	return func() tea.Msg { return submitted }
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.action.String()))
	b.WriteString("\n\n")

	for i := 0; i < v.index && i < len(v.fields); i++ {
		f := v.fields[i]
		answer := v.values[f.Key]
		switch {
		case f.Secret && answer != "":
			answer = strings.Repeat("•", 8)
		case answer == "":
			answer = "(none)"
		}
		b.WriteString(v.styles.Muted.Render(f.Label+": ") + v.styles.Path.Render(answer))
		b.WriteString("\n")
	}

	if v.index < len(v.fields) {
		b.WriteString(v.prompt.View())
		b.WriteString("\n\n")
		hint := "[Enter] Next  [Esc] Cancel"
		if !v.fields[v.index].Optional {
			hint += "  (leave empty to cancel)"
		}
		b.WriteString(v.styles.Help.Render(hint))
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.prompt.SetWidth(width)
}

// Action returns the action being collected.
func (v *View) Action() messages.Action {
	return v.action
}

// Current returns the field being asked, or nil when complete.
func (v *View) Current() *Field {
	if v.index >= len(v.fields) {
		return nil
	}
	return &v.fields[v.index]
}
