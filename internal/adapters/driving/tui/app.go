package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/views/form"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui/views/result"
	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView    *menu.View
	formView    *form.View
	resultView  *result.View
	historyView *history.View
	statusBar   *status.Bar

	// session carries the selected folder between actions.
	session domain.Session

	// action is the action whose form or result is shown.
	action messages.Action

	// working is set while an operation runs. Keys are ignored meanwhile.
	working bool

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingImageService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		formView:    form.NewView(s),
		resultView:  result.NewView(s, ports.Actions),
		historyView: history.NewView(s, ports.History),
		statusBar:   status.NewBar(s, keymap.DefaultKeyMap()),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and the operations it runs.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.resultView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("pdfdesk")
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.working {
			return a, nil
		}
		return a, a.updateView(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		a.statusBar.Clear()
		if msg.View == messages.ViewHistory {
			return a, a.historyView.Init()
		}
		return a, nil

	case messages.ActionSelected:
		return a, a.startAction(msg.Action)

	case messages.FormCancelled:
		a.currentView = messages.ViewMenu
		return a, nil

	case messages.FormSubmitted:
		return a, a.run(msg)

	case messages.FolderSelected:
		a.working = false
		if msg.Err != nil {
			a.showError(msg.Err)
			return a, nil
		}
		a.session.SelectFolder(msg.Folder, msg.Images)
		a.statusBar.SetFolder(msg.Folder, msg.Images)
		a.statusBar.Clear()
		a.currentView = messages.ViewMenu
		return a, nil

	case messages.OperationCompleted:
		a.working = false
		a.err = msg.Err
		a.resultView.SetResult(a.action.String(), msg.Result, msg.Err)
		a.statusBar.SetState(status.StateResult)
		if msg.Err != nil {
			a.statusBar.SetState(status.StateError)
		}
		a.currentView = messages.ViewResult
		return a, nil

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.PathOpened:
		a.resultView, cmd = a.resultView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Anything else (cursor blink and the like) belongs to the form.
	if a.currentView == messages.ViewForm {
		a.formView, cmd = a.formView.Update(msg)
		return a, cmd
	}
	return a, nil
}

// updateView forwards a key to the active view.
func (a *App) updateView(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewForm:
		a.formView, cmd = a.formView.Update(msg)
	case messages.ViewResult:
		a.resultView, cmd = a.resultView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// startAction opens the form of an action. Converting without a folder
// fails straight away.
func (a *App) startAction(action messages.Action) tea.Cmd {
	a.action = action
	a.err = nil
	if action == messages.ActionConvert && !a.session.HasFolder() {
		a.showError(domain.ErrNoFolderSelected)
		return nil
	}
	a.currentView = messages.ViewForm
	return a.formView.Start(action)
}

// showError puts an error in the result view.
func (a *App) showError(err error) {
	a.err = err
	a.resultView.SetError(a.action.String(), err)
	a.statusBar.SetState(status.StateError)
	a.currentView = messages.ViewResult
}

// run starts the submitted action in the background.
func (a *App) run(msg messages.FormSubmitted) tea.Cmd {
	a.action = msg.Action
	a.working = true
	a.statusBar.SetState(status.StateWorking)
	a.statusBar.SetMessage("")

	ctx, ports, session := a.ctx, a.ports, a.session
	v := msg.Values

	switch msg.Action {
	case messages.ActionSelectFolder:
		folder := expandHome(v[form.KeyFolder])
		return func() tea.Msg {
			refs, err := ports.Images.ListImages(ctx, folder)
			return messages.FolderSelected{Folder: folder, Images: len(refs), Err: err}
		}

	case messages.ActionConvert:
		req, err := session.ConvertRequest(expandHome(v[form.KeyOutput]))
		if err != nil {
			return completed(nil, err)
		}
		return func() tea.Msg {
			return completedMsg(ports.Images.Convert(ctx, req))
		}

	case messages.ActionEncrypt:
		req := domain.EncryptRequest{
			Source:   expandHome(v[form.KeySource]),
			Output:   expandHome(v[form.KeyOutput]),
			Password: v[form.KeyPassword],
		}
		return func() tea.Msg {
			return completedMsg(ports.Security.Encrypt(ctx, req))
		}

	case messages.ActionDecrypt:
		req := domain.DecryptRequest{
			Source:   expandHome(v[form.KeySource]),
			Output:   expandHome(v[form.KeyOutput]),
			Password: v[form.KeyPassword],
		}
		return func() tea.Msg {
			return completedMsg(ports.Security.Decrypt(ctx, req))
		}

	case messages.ActionExtract:
		req := domain.ExtractRequest{
			Source:    expandHome(v[form.KeySource]),
			OutputDir: expandHome(v[form.KeyOutputDir]),
			Password:  v[form.KeyPassword],
		}
		return func() tea.Msg {
			return completedMsg(ports.Extract.Extract(ctx, req))
		}
	}

	a.working = false
	return nil
}

func completedMsg(r *domain.Result, err error) tea.Msg {
	return messages.OperationCompleted{Result: r, Err: err}
}

func completed(r *domain.Result, err error) tea.Cmd {
	return func() tea.Msg {
		return completedMsg(r, err)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewForm:
		body = a.formView.View()
	case messages.ViewResult:
		body = a.resultView.View()
	case messages.ViewHistory:
		body = a.historyView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	gap := a.height - strings.Count(body, "\n") - 2
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Forms:
  enter       Confirm and continue
  esc         Cancel (an empty answer cancels too)

Results:
  o           Open the output
  esc         Back to menu

Select an image folder before converting. Every image in it
becomes one page, scaled to fit and centred.

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Session returns the selections carried between actions.
func (a *App) Session() domain.Session {
	return a.session
}

// Working returns true while an operation runs.
func (a *App) Working() bool {
	return a.working
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.formView.SetDimensions(width, height)
	a.resultView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
