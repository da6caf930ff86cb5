package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfdesk/internal/adapters/driven/render/poppler"
	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

var (
	extractOutput   string
	extractDPI      int
	extractFormat   string
	extractEmbedded bool
	extractPassword string
)

var extractCmd = &cobra.Command{
	Use:   "extract [file.pdf]",
	Short: "Render every page of a PDF to an image file",
	Long: `Renders each page of the PDF to image_<n>.jpg in the output directory,
numbered from 1. The directory is created if it does not exist.

Rendering uses pdftoppm from poppler. With --embedded the images stored
in the document are extracted instead and pdftoppm is not needed.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "directory to write images into (required)")
	extractCmd.Flags().IntVar(&extractDPI, "dpi", 0, "render resolution (default from settings)")
	extractCmd.Flags().StringVar(&extractFormat, "format", "", "jpeg or png (default from settings)")
	extractCmd.Flags().BoolVar(&extractEmbedded, "embedded", false, "extract embedded images instead of rendering pages")
	extractCmd.Flags().StringVarP(&extractPassword, "password", "p", "", "password for a protected PDF")
	_ = extractCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractService == nil {
		return errors.New("extract service not configured")
	}

	req := domain.ExtractRequest{
		Source:    args[0],
		OutputDir: extractOutput,
		Password:  extractPassword,
		Embedded:  extractEmbedded,
		DPI:       extractDPI,
		Format:    domain.RenderFormat(extractFormat),
	}

	result, err := extractService.Extract(cmd.Context(), req)
	if errors.Is(err, domain.ErrWrongPassword) && req.Password == "" {
		// Protected source and no password given: ask once.
		req.Password, err = passwordArg(cmd, "", "Password: ")
		if err != nil {
			return err
		}
		result, err = extractService.Extract(cmd.Context(), req)
	}
	if err != nil {
		if errors.Is(err, domain.ErrRendererNotFound) {
			cmd.PrintErrln(poppler.InstallInstructions())
		}
		return operationError(domain.OpExtract, err)
	}
	printResult(cmd, result)
	return nil
}
