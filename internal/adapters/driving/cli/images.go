package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

var (
	convertOutput    string
	convertPageSize  string
	convertLandscape bool
	convertWatch     bool
)

var imagesCmd = &cobra.Command{
	Use:   "images [folder]",
	Short: "List the images in a folder",
	Long: `Lists the .jpg, .jpeg and .png files in a folder in the order
they become pages. Other files and subfolders are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runImages,
}

var convertCmd = &cobra.Command{
	Use:   "convert [folder]",
	Short: "Convert a folder of images to one PDF",
	Long: `Combines every image in the folder into one PDF, one page per image,
in name order. Each image is scaled to fit the page without distortion and
centred. Images that cannot be read are skipped and reported.

With --watch the PDF is rebuilt whenever an image in the folder changes,
until interrupted. A failed rebuild, for example after the folder is emptied,
leaves the previous PDF in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "PDF file to write (required)")
	convertCmd.Flags().StringVar(&convertPageSize, "page-size", "", "page size: A3, A4, A5, Letter or Legal (default from settings)")
	convertCmd.Flags().BoolVar(&convertLandscape, "landscape", false, "use landscape pages")
	convertCmd.Flags().BoolVarP(&convertWatch, "watch", "w", false, "rebuild when the folder changes")
	_ = convertCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(imagesCmd)
	rootCmd.AddCommand(convertCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	if imageService == nil {
		return errors.New("image service not configured")
	}

	refs, err := imageService.ListImages(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if len(refs) == 0 {
		cmd.Println("No images found.")
		return nil
	}
	for i, ref := range refs {
		cmd.Printf("  [%d] %s\n", i+1, ref.Name())
	}
	cmd.Printf("\n%d images\n", len(refs))
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	if imageService == nil {
		return errors.New("image service not configured")
	}

	req := domain.ConvertRequest{
		Folder:   args[0],
		Output:   convertOutput,
		PageSize: convertPageSize,
	}
	if convertLandscape {
		req.Orientation = domain.OrientationLandscape
	}

	if convertWatch {
		return runConvertWatch(cmd, req)
	}

	result, err := imageService.Convert(cmd.Context(), req)
	if err != nil {
		return operationError(domain.OpConvert, err)
	}
	printResult(cmd, result)
	return nil
}

// runConvertWatch rebuilds until interrupted.
func runConvertWatch(cmd *cobra.Command, req domain.ConvertRequest) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", req.Folder)
	return watchService.Watch(ctx, req, func(result *domain.Result, err error) {
		if err != nil {
			cmd.PrintErrf("Rebuild failed: %v\n", err)
			if result != nil {
				for _, w := range result.Warnings {
					cmd.PrintErrf("  Warning: %s\n", w)
				}
			}
			return
		}
		printResult(cmd, result)
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
