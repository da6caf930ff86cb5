// Package history lists past operations.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driving"
)

// Limit is the number of entries loaded.
const Limit = 50

// View shows recent operations.
type View struct {
	styles  *styles.Styles
	service driving.HistoryService
	ctx     context.Context

	entries  []domain.HistoryEntry
	selected int
	err      error
	loading  bool

	width  int
	height int
}

// NewView creates a new history view. A nil service shows an empty list.
func NewView(s *styles.Styles, service driving.HistoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		service: service,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for loading.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init returns a command that loads the entries.
func (v *View) Init() tea.Cmd {
	if v.service == nil {
		v.entries = nil
		v.err = domain.ErrNotImplemented
		return nil
	}
	v.loading = true
	service, ctx := v.service, v.ctx
	return func() tea.Msg {
		entries, err := service.List(ctx, Limit)
		return messages.HistoryLoaded{Entries: entries, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.HistoryLoaded:
		v.loading = false
		v.entries = msg.Entries
		v.err = msg.Err
		v.selected = 0

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.entries)-1 {
				v.selected++
			}
		case "esc", "q":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}
	return v, nil
}

// View renders the history list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("History"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading…"))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Failure.Render("Could not load history: " + v.err.Error()))
		b.WriteString("\n")
	case len(v.entries) == 0:
		b.WriteString(v.styles.Muted.Render("Nothing here yet."))
		b.WriteString("\n")
	default:
		start, rows := v.visible()
		for i, e := range rows {
			b.WriteString(v.renderEntry(e, start+i == v.selected))
			b.WriteString("\n")
		}
		if sel := v.Selected(); sel != nil {
			b.WriteString("\n")
			b.WriteString(v.renderDetail(*sel))
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] Navigate  [Esc] Back"))
	return b.String()
}

// visible returns the entries that fit the height, keeping the selection in view.
func (v *View) visible() (int, []domain.HistoryEntry) {
	rows := v.height - 12
	if rows < 3 {
		rows = 3
	}
	if len(v.entries) <= rows {
		return 0, v.entries
	}
	start := 0
	if v.selected >= rows {
		start = v.selected - rows + 1
	}
	return start, v.entries[start : start+rows]
}

func (v *View) renderEntry(e domain.HistoryEntry, selected bool) string {
	marker := "  "
	style := v.styles.Normal
	if selected {
		marker = "> "
		style = v.styles.Selected
	}
	line := fmt.Sprintf("%s%s  %-24s %s",
		marker, e.StartedAt.Local().Format("2006-01-02 15:04"), e.Operation.Description(), v.status(e.Status))
	return style.Render(line)
}

func (v *View) status(s domain.Status) string {
	switch s {
	case domain.StatusSucceeded:
		return v.styles.Success.Render(s.String())
	case domain.StatusPartial:
		return v.styles.Partial.Render(s.String())
	default:
		return v.styles.Failure.Render(s.String())
	}
}

func (v *View) renderDetail(e domain.HistoryEntry) string {
	var b strings.Builder
	b.WriteString(v.styles.Label.Render("Input") + strings.Join(e.Inputs, ", ") + "\n")
	b.WriteString(v.styles.Label.Render("Output") + v.styles.Path.Render(e.Output) + "\n")
	b.WriteString(v.styles.Label.Render("Pages") + fmt.Sprintf("%d", e.Pages))
	if e.Skipped > 0 {
		b.WriteString(fmt.Sprintf(" (%d skipped)", e.Skipped))
	}
	if e.Error != "" {
		b.WriteString("\n" + v.styles.Label.Render("Error") + v.styles.Failure.Render(e.Error))
	}
	return v.styles.Panel.Render(b.String())
}

// Selected returns the highlighted entry, or nil.
func (v *View) Selected() *domain.HistoryEntry {
	if v.selected < 0 || v.selected >= len(v.entries) {
		return nil
	}
	return &v.entries[v.selected]
}

// Entries returns the loaded entries.
func (v *View) Entries() []domain.HistoryEntry {
	return v.entries
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
