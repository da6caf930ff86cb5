package pdfcpu

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driven"
	"github.com/custodia-labs/pdfdesk/internal/logger"
)

// Ensure ImageExtractor implements the interface.
var _ driven.ImageExtractor = (*ImageExtractor)(nil)

// ImageExtractor writes the images embedded in a PDF, in page order,
// as image_<n>.<ext>. Identical images are written once.
type ImageExtractor struct{}

// NewImageExtractor creates a new embedded image extractor.
func NewImageExtractor() *ImageExtractor {
	return &ImageExtractor{}
}

// ExtractImages extracts into dir and returns the written paths.
func (e *ImageExtractor) ExtractImages(ctx context.Context, src, dir, password string) ([]string, error) {
	tempDir, err := os.MkdirTemp("", "pdfdesk-img")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	if err := api.ExtractImagesFile(src, tempDir, nil, configuration(password)); err != nil {
		return nil, classify(fmt.Errorf("extracting images: %w", err))
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("read temp dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool { return naturalLess(names[i], names[j]) })

	seen := make(map[string]bool)
	written := make([]string, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		data, err := os.ReadFile(filepath.Join(tempDir, name))
		if err != nil {
			return written, fmt.Errorf("read extracted image: %w", err)
		}
		sum := sha256.Sum256(data)
		hash := hex.EncodeToString(sum[:])
		if seen[hash] {
			logger.Debug("skipping duplicate image %s", name)
			continue
		}
		seen[hash] = true

		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".jpeg" {
			ext = ".jpg"
		}
		dst := filepath.Join(dir, domain.PageImageBase(len(written)+1)+ext)
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", dst, err)
		}
		written = append(written, dst)
	}

	if dups := len(names) - len(written); dups > 0 {
		logger.Info("skipped %d duplicate image(s)", dups)
	}
	return written, nil
}

// naturalLess orders names with embedded numbers numerically,
// so "doc_2_Im0" sorts before "doc_10_Im0".
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ca, cb := rune(a[0]), rune(b[0])
		if unicode.IsDigit(ca) && unicode.IsDigit(cb) {
			na, restA := leadingDigits(a)
			nb, restB := leadingDigits(b)
			if na != nb {
				return numberLess(na, nb)
			}
			a, b = restA, restB
			continue
		}
		if ca != cb {
			return ca < cb
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

// leadingDigits splits off the leading run of digits, without leading zeros.
func leadingDigits(s string) (string, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return strings.TrimLeft(s[:i], "0"), s[i:]
}

// numberLess compares two digit strings of any length numerically.
func numberLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
