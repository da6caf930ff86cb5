package imagefs

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png" // PNG decoder
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/image/draw"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ImageSource = (*Source)(nil)

// Source lists and loads images from a directory.
type Source struct{}

// NewSource creates a new filesystem image source.
func NewSource() *Source {
	return &Source{}
}

// List returns the regular files in dir with a supported image extension,
// sorted ascending by path. Subdirectories are not descended into.
func (s *Source) List(ctx context.Context, dir string) ([]domain.ImageRef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, domain.NewOpError(domain.OpConvert, domain.KindEnumeration, dir,
			fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !domain.IsImageFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !isRegularFile(entry, path) {
			continue
		}
		paths = append(paths, path)
	}

	slices.Sort(paths)
	paths = slices.Compact(paths)

	refs := make([]domain.ImageRef, len(paths))
	for i, p := range paths {
		refs[i] = domain.ImageRef{Path: p}
	}
	return refs, nil
}

// isRegularFile follows symlinks so a link to an image is listed
// and a link to a directory is not.
func isRegularFile(entry os.DirEntry, path string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Load decodes the image and returns it as an opaque RGB JPEG buffer.
// Baseline RGB JPEGs are passed through untouched. Everything else
// (greyscale, paletted, CMYK, alpha) is drawn onto white and re-encoded.
func (s *Source) Load(ctx context.Context, ref domain.ImageRef, quality int) (*domain.Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, itemError(ref, err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, itemError(ref, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err))
	}

	b := img.Bounds()
	raster := &domain.Raster{Width: b.Dx(), Height: b.Dy()}
	if raster.Width <= 0 || raster.Height <= 0 {
		return nil, itemError(ref, fmt.Errorf("%w: empty image", domain.ErrInvalidInput))
	}

	if format == "jpeg" && isRGB(img) {
		raster.JPEG = data
		return raster, nil
	}

	buf, err := EncodeJPEG(ToOpaqueRGB(img), quality)
	if err != nil {
		return nil, itemError(ref, err)
	}
	raster.JPEG = buf
	raster.Converted = true
	return raster, nil
}

// isRGB reports whether img is already in an opaque RGB-compatible model.
func isRGB(img image.Image) bool {
	switch img.ColorModel() {
	case color.YCbCrModel, color.RGBAModel, color.RGBA64Model:
		if o, ok := img.(interface{ Opaque() bool }); ok {
			return o.Opaque()
		}
		return true
	default:
		return false
	}
}

// ToOpaqueRGB composites img onto a white canvas of the same size.
func ToOpaqueRGB(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// EncodeJPEG encodes img into an in-memory JPEG buffer.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func itemError(ref domain.ImageRef, err error) error {
	return domain.NewOpError(domain.OpConvert, domain.KindItem, ref.Path, err)
}
