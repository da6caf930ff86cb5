// Package menu provides the main action menu for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
// Exactly one of Action, View or Quit applies.
type Item struct {
	Label  string
	Action *messages.Action
	View   messages.ViewType
	Quit   bool
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

func action(a messages.Action) Item {
	return Item{Label: a.String(), Action: &a}
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			action(messages.ActionSelectFolder),
			action(messages.ActionConvert),
			action(messages.ActionEncrypt),
			action(messages.ActionDecrypt),
			action(messages.ActionExtract),
			{Label: "History", View: messages.ViewHistory},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			return v, v.choose(v.items[v.selected])

		case "?":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewHelp}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	switch {
	case item.Quit:
		return tea.Quit
	case item.Action != nil:
		a := *item.Action
		return func() tea.Msg {
			return messages.ActionSelected{Action: a}
		}
	default:
		return func() tea.Msg {
			return messages.ViewChanged{View: item.View}
		}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("pdfdesk"))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Images to PDF, encryption and page extraction"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(item.Label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(item.Label))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu items.
func (v *View) Items() []Item {
	return v.items
}
