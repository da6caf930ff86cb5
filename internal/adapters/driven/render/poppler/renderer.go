// Package poppler rasterizes PDF pages with poppler's pdftoppm.
//
// pdftoppm is an external binary. It is located at construction time and
// invoked once per page through a CommandRunner, which tests replace.
package poppler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driven"
)

// DefaultBinary is looked up on PATH when no binary is configured.
const DefaultBinary = "pdftoppm"

// Ensure Renderer implements the interface.
var _ driven.Rasterizer = (*Renderer)(nil)

// CommandRunner runs an external command and returns its combined output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Renderer renders single PDF pages to image files.
type Renderer struct {
	binary   string
	runner   CommandRunner
	lookPath func(string) (string, error)
}

// New creates a renderer for binary, or DefaultBinary if empty.
func New(binary string) *Renderer {
	return NewWithRunner(binary, execRunner{})
}

// NewWithRunner creates a renderer that invokes commands through runner.
func NewWithRunner(binary string, runner CommandRunner) *Renderer {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return &Renderer{
		binary:   binary,
		runner:   runner,
		lookPath: exec.LookPath,
	}
}

// Binary returns the configured binary name or path.
func (r *Renderer) Binary() string {
	return r.binary
}

// CheckAvailable returns domain.ErrRendererNotFound if the binary cannot be found.
func (r *Renderer) CheckAvailable() error {
	if _, err := r.lookPath(r.binary); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrRendererNotFound, r.binary)
	}
	return nil
}

// RenderPage renders one page of src to dstBase plus the format's extension
// and returns the written path.
func (r *Renderer) RenderPage(
	ctx context.Context,
	src string,
	page int,
	dstBase string,
	opts domain.RenderOptions,
) (string, error) {
	if page < 1 {
		return "", fmt.Errorf("%w: page %d", domain.ErrInvalidInput, page)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := r.runner.Run(ctx, r.binary, Args(src, page, dstBase, opts)...)
	if err != nil {
		return "", classify(err, out)
	}

	dst := dstBase + formatOf(opts).Extension()
	if _, err := os.Stat(dst); err != nil {
		return "", fmt.Errorf("%s did not write %s: %w", r.binary, dst, err)
	}
	return dst, nil
}

// Args builds the pdftoppm arguments rendering exactly one page to
// dstBase. -singlefile stops pdftoppm appending its own page suffix.
func Args(src string, page int, dstBase string, opts domain.RenderOptions) []string {
	n := strconv.Itoa(page)
	args := []string{"-f", n, "-l", n, "-singlefile"}
	if opts.DPI > 0 {
		args = append(args, "-r", strconv.Itoa(opts.DPI))
	}
	switch formatOf(opts) {
	case domain.RenderFormatPNG:
		args = append(args, "-png")
	default:
		args = append(args, "-jpeg")
		if opts.Quality > 0 && opts.Quality <= 100 {
			args = append(args, "-jpegopt", "quality="+strconv.Itoa(opts.Quality))
		}
	}
	if opts.Password != "" {
		args = append(args, "-upw", opts.Password)
	}
	return append(args, src, dstBase)
}

func formatOf(opts domain.RenderOptions) domain.RenderFormat {
	if opts.Format.IsValid() {
		return opts.Format
	}
	return domain.RenderFormatJPEG
}

// classify turns a failed run into a domain error, keeping pdftoppm's message.
func classify(err error, output []byte) error {
	msg := strings.TrimSpace(string(output))
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", domain.ErrRendererNotFound, err)
	}
	if strings.Contains(strings.ToLower(msg), "password") {
		return fmt.Errorf("%w: %s", domain.ErrWrongPassword, msg)
	}
	if msg != "" {
		return fmt.Errorf("%w: %s", err, msg)
	}
	return err
}

// InstallInstructions returns platform-specific installation instructions.
func InstallInstructions() string {
	return `pdftoppm is required to extract page images. Install poppler:

  macOS:          brew install poppler
  Ubuntu/Debian:  sudo apt install poppler-utils
  Fedora:         sudo dnf install poppler-utils
  Windows:        download poppler from https://github.com/oschwartz10612/poppler-windows

Or point pdfdesk at an existing binary:
  export PDFDESK_PDFTOPPM=/path/to/pdftoppm
  pdfdesk settings set render.binary /path/to/pdftoppm`
}
