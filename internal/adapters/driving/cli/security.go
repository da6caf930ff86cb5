package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

var (
	encryptOutput   string
	encryptPassword string
	decryptOutput   string
	decryptPassword string
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt [file.pdf]",
	Short: "Write a password-protected copy of a PDF",
	Long: `Writes a copy of the PDF that needs the password to open.
The password is prompted for without echo unless --password is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncrypt,
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [file.pdf]",
	Short: "Write an unprotected copy of a PDF",
	Long: `Opens a password-protected PDF and writes a copy without protection.
The password is prompted for without echo unless --password is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecrypt,
}

func init() {
	encryptCmd.Flags().StringVarP(&encryptOutput, "output", "o", "", "PDF file to write (required)")
	encryptCmd.Flags().StringVarP(&encryptPassword, "password", "p", "", "password (prompted if omitted)")
	_ = encryptCmd.MarkFlagRequired("output")

	decryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "PDF file to write (required)")
	decryptCmd.Flags().StringVarP(&decryptPassword, "password", "p", "", "password (prompted if omitted)")
	_ = decryptCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	if securityService == nil {
		return errors.New("security service not configured")
	}

	password, err := passwordArg(cmd, encryptPassword, "Password: ")
	if err != nil {
		return err
	}

	result, err := securityService.Encrypt(cmd.Context(), domain.EncryptRequest{
		Source:   args[0],
		Output:   encryptOutput,
		Password: password,
	})
	if err != nil {
		return operationError(domain.OpEncrypt, err)
	}
	printResult(cmd, result)
	return nil
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	if securityService == nil {
		return errors.New("security service not configured")
	}

	password, err := passwordArg(cmd, decryptPassword, "Password: ")
	if err != nil {
		return err
	}

	result, err := securityService.Decrypt(cmd.Context(), domain.DecryptRequest{
		Source:   args[0],
		Output:   decryptOutput,
		Password: password,
	})
	if err != nil {
		return operationError(domain.OpDecrypt, err)
	}
	printResult(cmd, result)
	return nil
}
