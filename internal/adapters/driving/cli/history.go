package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent operations",
	Long: `Lists recent operations, most recent first, with their outcome.
Passwords are never recorded.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all history entries",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries (0 for all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output entries as JSON")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	entries, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if historyJSON {
		return outputHistoryJSON(cmd, entries)
	}
	return outputHistoryTable(cmd, entries)
}

func outputHistoryJSON(cmd *cobra.Command, entries []domain.HistoryEntry) error {
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputHistoryTable(cmd *cobra.Command, entries []domain.HistoryEntry) error {
	if len(entries) == 0 {
		cmd.Println("No history.")
		return nil
	}

	for i := range entries {
		e := &entries[i]
		cmd.Printf("  %s  %-14s %-10s %s\n",
			e.StartedAt.Local().Format("2006-01-02 15:04"), e.Operation, e.Status, e.Output)
		if e.Skipped > 0 {
			cmd.Printf("      %d skipped\n", e.Skipped)
		}
		if e.Error != "" {
			cmd.Printf("      %s\n", e.Error)
		}
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}
	if err := historyService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	cmd.Println("History cleared.")
	return nil
}
