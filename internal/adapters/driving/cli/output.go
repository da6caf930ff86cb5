package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// printResult writes a result summary. Skipped items and warnings are listed
// so a partial success is never mistaken for a full one.
func printResult(cmd *cobra.Command, result *domain.Result) {
	if result == nil {
		return
	}

	switch result.Status {
	case domain.StatusSucceeded:
		cmd.Printf("%s: done\n", result.Operation.Description())
	case domain.StatusPartial:
		cmd.Printf("%s: done with %d skipped\n", result.Operation.Description(), len(result.Skipped))
	case domain.StatusFailed:
		cmd.Printf("%s: failed\n", result.Operation.Description())
		return
	}

	if result.Pages > 0 {
		cmd.Printf("  Pages:  %d\n", result.Pages)
	}
	if result.Output != "" {
		cmd.Printf("  Output: %s\n", result.Output)
	}
	if len(result.Files) > 1 {
		cmd.Printf("  Files:  %d written\n", len(result.Files))
	}
	for _, s := range result.Skipped {
		cmd.Printf("  Skipped %s: %s\n", s.Path, s.Reason)
	}
	for _, w := range result.Warnings {
		cmd.Printf("  Warning: %s\n", w)
	}
}

// operationError wraps a failed operation for the command's return value.
func operationError(op domain.Operation, err error) error {
	return fmt.Errorf("%s failed: %w", strings.ToLower(op.Description()), err)
}

// readPassword prompts for a password. A terminal reads without echo;
// anything else is read as one line.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	cmd.Print(prompt)
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}
	return readLine(in)
}

func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// passwordArg returns the --password flag or prompts for one.
// An empty password is rejected.
func passwordArg(cmd *cobra.Command, flagValue, prompt string) (string, error) {
	password := flagValue
	if password == "" {
		var err error
		password, err = readPassword(cmd, prompt)
		if err != nil {
			return "", err
		}
	}
	if password == "" {
		return "", fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	return password, nil
}
