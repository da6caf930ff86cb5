// Package result renders the outcome of an operation.
package result

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driving"
)

// maxListed caps the skipped items and files shown.
const maxListed = 8

// View shows a success, partial success or failure.
type View struct {
	styles  *styles.Styles
	actions driving.ActionService
	ctx     context.Context

	title  string
	result *domain.Result
	err    error
	notice string

	width  int
	height int
}

// NewView creates a new result view. The action service is optional;
// without it outputs cannot be opened.
func NewView(s *styles.Styles, actions driving.ActionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		actions: actions,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used when opening outputs.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetResult shows the outcome of an operation.
func (v *View) SetResult(title string, result *domain.Result, err error) {
	v.title = title
	v.result = result
	v.err = err
	v.notice = ""
}

// SetError shows a failure that happened before any operation ran.
func (v *View) SetError(title string, err error) {
	v.SetResult(title, nil, err)
}

// Update handles messages for the result view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "o":
			return v, v.open()
		}

	case messages.PathOpened:
		if msg.Err != nil {
			v.notice = "Could not open: " + msg.Err.Error()
		} else {
			v.notice = "Opened " + msg.Path
		}
	}
	return v, nil
}

// open hands the output to the OS opener.
func (v *View) open() tea.Cmd {
	target := v.Target()
	if target == "" || v.actions == nil {
		return nil
	}
	actions, ctx := v.actions, v.ctx
	return func() tea.Msg {
		return messages.PathOpened{Path: target, Err: actions.OpenPath(ctx, target)}
	}
}

// Target returns the path that "open" would open, or "" if there is none.
func (v *View) Target() string {
	if v.err != nil || v.result == nil || !v.result.OK() {
		return ""
	}
	return v.result.Output
}

// View renders the result.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.title))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Failure.Render("✗ Failed"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Normal.Render(Describe(v.err)))
		b.WriteString("\n")
	case v.result != nil:
		b.WriteString(v.renderResult())
	}

	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "[Esc] Back"
	if v.Target() != "" && v.actions != nil {
		hint = "[o] Open output  " + hint
	}
	b.WriteString(v.styles.Help.Render(hint))
	return b.String()
}

func (v *View) renderResult() string {
	r := v.result
	var b strings.Builder

	switch r.Status {
	case domain.StatusSucceeded:
		b.WriteString(v.styles.Success.Render("✓ Done"))
	case domain.StatusPartial:
		b.WriteString(v.styles.Partial.Render(fmt.Sprintf("! Done, %d skipped", len(r.Skipped))))
	case domain.StatusFailed:
		b.WriteString(v.styles.Failure.Render("✗ Failed"))
	}
	b.WriteString("\n\n")

	var body strings.Builder
	if r.Pages > 0 {
		body.WriteString(v.styles.Label.Render("Pages") + fmt.Sprintf("%d\n", r.Pages))
	}
	if r.Output != "" {
		body.WriteString(v.styles.Label.Render("Output") + v.styles.Path.Render(r.Output) + "\n")
	}
	if len(r.Files) > 1 {
		body.WriteString(v.styles.Label.Render("Files") + fmt.Sprintf("%d written\n", len(r.Files)))
	}
	body.WriteString(v.styles.Label.Render("Took") + r.Duration().Round(time.Millisecond).String())
	b.WriteString(v.styles.Panel.Render(body.String()))
	b.WriteString("\n")

	for i, s := range r.Skipped {
		if i == maxListed {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  … and %d more\n", len(r.Skipped)-maxListed)))
			break
		}
		b.WriteString(v.styles.Partial.Render("  skipped ") + s.Path + v.styles.Muted.Render(": "+s.Reason) + "\n")
	}
	for _, w := range r.Warnings {
		b.WriteString(v.styles.Partial.Render("  note ") + w + "\n")
	}
	return b.String()
}

// Describe turns an operation error into a message for the user.
func Describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoFolderSelected):
		return "No folder selected. Choose \"Select image folder\" first."
	case errors.Is(err, domain.ErrNoImages):
		return "No images found in the selected folder."
	case errors.Is(err, domain.ErrNoPages):
		return "None of the images could be read."
	case errors.Is(err, domain.ErrWrongPassword):
		return "Incorrect password."
	case errors.Is(err, domain.ErrAlreadyEncrypted):
		return "The document is already encrypted."
	case errors.Is(err, domain.ErrRendererNotFound):
		return "pdftoppm was not found. Install poppler, or run\n" +
			"  pdfdesk settings set render.binary /path/to/pdftoppm"
	default:
		return err.Error()
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Result returns the result shown.
func (v *View) Result() *domain.Result {
	return v.result
}

// Err returns the error shown.
func (v *View) Err() error {
	return v.err
}
