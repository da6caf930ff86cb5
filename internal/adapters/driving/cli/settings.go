package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change page, render, security and history settings.

Settings are stored in config.toml in the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting. Keys:

  page.size             A3, A4, A5, Letter or Legal
  page.orientation      portrait or landscape
  compose.jpeg_quality  1-100
  render.binary         path to pdftoppm
  render.dpi            36-1200
  render.format         jpeg or png
  security.key_length   128 or 256
  history.enabled       true or false
  history.keep          entries to keep (0 keeps all)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Page]")
	cmd.Printf("  Size: %s\n", settings.Page.Size)
	cmd.Printf("  Orientation: %s\n", settings.Page.Orientation)
	cmd.Printf("  JPEG quality: %d\n", settings.Compose.JPEGQuality)
	cmd.Println()

	cmd.Println("[Render]")
	binary := settings.Render.Binary
	if binary == "" {
		binary = "pdftoppm (from PATH)"
	}
	cmd.Printf("  Binary: %s\n", binary)
	cmd.Printf("  DPI: %d\n", settings.Render.DPI)
	cmd.Printf("  Format: %s\n", settings.Render.Format.Description())
	status := "available"
	if extractService != nil {
		if err := extractService.RendererStatus(); err != nil {
			status = "not found"
		}
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Security]")
	cmd.Printf("  Encryption: AES-%d\n", settings.Security.KeyLength)
	cmd.Println()

	cmd.Println("[History]")
	if settings.History.Enabled {
		cmd.Printf("  Enabled: yes\n")
		cmd.Printf("  Keep: %d\n", settings.History.Keep)
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s to %s\n", args[0], args[1])
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Reset(args[0]); err != nil {
		return fmt.Errorf("failed to reset %s: %w", args[0], err)
	}
	cmd.Printf("Reset %s to its default\n", args[0])
	return nil
}
