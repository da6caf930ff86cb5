package poppler

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// fakeRunner records calls and writes the file pdftoppm would have written.
type fakeRunner struct {
	calls  [][]string
	output []byte
	err    error
	write  bool
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return f.output, f.err
	}
	if f.write {
		base := args[len(args)-1]
		ext := ".jpg"
		for _, a := range args {
			if a == "-png" {
				ext = ".png"
			}
		}
		if err := os.WriteFile(base+ext, []byte("img"), 0o644); err != nil {
			return nil, err
		}
	}
	return f.output, nil
}

func TestNew_DefaultBinary(t *testing.T) {
	assert.Equal(t, DefaultBinary, New("").Binary())
	assert.Equal(t, "/opt/bin/pdftoppm", New("/opt/bin/pdftoppm").Binary())
}

func TestArgs(t *testing.T) {
	tests := []struct {
		name string
		opts domain.RenderOptions
		want []string
	}{
		{
			name: "jpeg defaults",
			opts: domain.RenderOptions{},
			want: []string{"-f", "2", "-l", "2", "-singlefile", "-jpeg", "in.pdf", "out/image_2"},
		},
		{
			name: "jpeg with dpi and quality",
			opts: domain.RenderOptions{DPI: 150, Format: domain.RenderFormatJPEG, Quality: 85},
			want: []string{"-f", "2", "-l", "2", "-singlefile", "-r", "150", "-jpeg", "-jpegopt", "quality=85", "in.pdf", "out/image_2"},
		},
		{
			name: "png with password",
			opts: domain.RenderOptions{DPI: 72, Format: domain.RenderFormatPNG, Quality: 90, Password: "pw"},
			want: []string{"-f", "2", "-l", "2", "-singlefile", "-r", "72", "-png", "-upw", "pw", "in.pdf", "out/image_2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Args("in.pdf", 2, "out/image_2", tt.opts))
		})
	}
}

func TestRenderer_RenderPage_WritesFile(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{write: true}
	r := NewWithRunner("pdftoppm", runner)

	path, err := r.RenderPage(context.Background(), "doc.pdf", 1, filepath.Join(dir, "image_1"), domain.RenderOptions{DPI: 150})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "image_1.jpg"), path)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "pdftoppm", runner.calls[0][0])
}

func TestRenderer_RenderPage_PNG(t *testing.T) {
	dir := t.TempDir()
	r := NewWithRunner("", &fakeRunner{write: true})

	path, err := r.RenderPage(context.Background(), "doc.pdf", 3, filepath.Join(dir, "image_3"),
		domain.RenderOptions{Format: domain.RenderFormatPNG})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "image_3.png"), path)
}

func TestRenderer_RenderPage_MissingOutput(t *testing.T) {
	r := NewWithRunner("", &fakeRunner{write: false})

	_, err := r.RenderPage(context.Background(), "doc.pdf", 1, filepath.Join(t.TempDir(), "image_1"), domain.RenderOptions{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRenderer_RenderPage_Errors(t *testing.T) {
	tests := []struct {
		name   string
		runner *fakeRunner
		want   error
	}{
		{
			name:   "wrong password",
			runner: &fakeRunner{err: errors.New("exit status 1"), output: []byte("Command Line Error: Incorrect password\n")},
			want:   domain.ErrWrongPassword,
		},
		{
			name:   "binary vanished",
			runner: &fakeRunner{err: exec.ErrNotFound},
			want:   domain.ErrRendererNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewWithRunner("", tt.runner)
			_, err := r.RenderPage(context.Background(), "doc.pdf", 1, "image_1", domain.RenderOptions{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRenderer_RenderPage_KeepsToolMessage(t *testing.T) {
	r := NewWithRunner("", &fakeRunner{err: errors.New("exit status 99"), output: []byte("Syntax Error: broken xref\n")})

	_, err := r.RenderPage(context.Background(), "doc.pdf", 1, "image_1", domain.RenderOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 99")
	assert.Contains(t, err.Error(), "broken xref")
}

func TestRenderer_RenderPage_InvalidPage(t *testing.T) {
	runner := &fakeRunner{}
	r := NewWithRunner("", runner)

	_, err := r.RenderPage(context.Background(), "doc.pdf", 0, "image_0", domain.RenderOptions{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, runner.calls)
}

func TestRenderer_RenderPage_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := &fakeRunner{}

	_, err := NewWithRunner("", runner).RenderPage(ctx, "doc.pdf", 1, "image_1", domain.RenderOptions{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, runner.calls)
}

func TestRenderer_CheckAvailable(t *testing.T) {
	r := NewWithRunner("pdftoppm", &fakeRunner{})

	r.lookPath = func(string) (string, error) { return "/usr/bin/pdftoppm", nil }
	assert.NoError(t, r.CheckAvailable())

	r.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	err := r.CheckAvailable()
	assert.ErrorIs(t, err, domain.ErrRendererNotFound)
	assert.Contains(t, err.Error(), "pdftoppm")
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftoppm")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
	assert.Contains(t, instructions, "PDFDESK_PDFTOPPM")
}

// Integration test - only runs if pdftoppm is available.
func TestRenderer_Integration(t *testing.T) {
	r := New("")
	if err := r.CheckAvailable(); err != nil {
		t.Skip("pdftoppm not available, skipping integration test")
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "doc.pdf")
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 16)
	pdf.AddPage()
	pdf.Cell(40, 10, "one")
	pdf.AddPage()
	pdf.Cell(40, 10, "two")
	require.NoError(t, pdf.OutputFileAndClose(src))

	path, err := r.RenderPage(context.Background(), src, 2, filepath.Join(dir, "image_2"), domain.RenderOptions{DPI: 36})

	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
