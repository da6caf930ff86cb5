package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfdesk/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive shell",
	Long: `Launch the interactive terminal shell.

Choose an action from the menu and answer its prompts. Select an image
folder first to convert it; the folder stays selected for the session.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Confirm
  Esc      - Back / Cancel
  o        - Open the output of the last operation
  ?        - Help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts collects the configured services for the shell.
func tuiPorts() *tui.Ports {
	return &tui.Ports{
		Images:   imageService,
		Security: securityService,
		Extract:  extractService,
		History:  historyService,
		Actions:  actionService,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
