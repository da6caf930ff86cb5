package imagefs

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeJPEG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
}

func solidRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func names(refs []domain.ImageRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Name()
	}
	return out
}

func TestSource_List_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jpg", "a.png", "IMG.PNG", "c.JPEG", "notes.txt", "IMG.TXT", "archive.png.zip"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.png"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "folder.png", "inner.jpg"), []byte("x"), 0o644))

	refs, err := NewSource().List(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, []string{"IMG.PNG", "a.png", "b.jpg", "c.JPEG"}, names(refs))
	for _, r := range refs {
		assert.Equal(t, dir, filepath.Dir(r.Path))
	}
}

func TestSource_List_EmptyDirectory(t *testing.T) {
	refs, err := NewSource().List(context.Background(), t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestSource_List_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	refs, err := NewSource().List(context.Background(), missing)

	require.Error(t, err)
	assert.Nil(t, refs)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domain.KindEnumeration, domain.KindOf(err))
}

func TestSource_List_FollowsSymlinkToFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "real.png")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	if err := os.Symlink(target, filepath.Join(dir, "link.png")); err != nil {
		t.Skip("symlinks not supported")
	}
	if err := os.Symlink(t.TempDir(), filepath.Join(dir, "dirlink.jpg")); err != nil {
		t.Skip("symlinks not supported")
	}

	refs, err := NewSource().List(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, []string{"link.png"}, names(refs))
}

func TestSource_List_Cancelled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("x"), 0o644))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSource().List(ctx, dir)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSource_Load_PNGIsConverted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tall.png")
	writePNG(t, path, solidRGBA(100, 200, color.RGBA{R: 200, A: 255}))

	raster, err := NewSource().Load(context.Background(), domain.ImageRef{Path: path}, 90)

	require.NoError(t, err)
	assert.Equal(t, 100, raster.Width)
	assert.Equal(t, 200, raster.Height)
	assert.True(t, raster.Converted)

	decoded, format, err := image.Decode(bytes.NewReader(raster.JPEG))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, decoded.Bounds().Dx())
}

func TestSource_Load_RGBJPEGPassesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.jpg")
	writeJPEG(t, path, solidRGBA(200, 100, color.RGBA{B: 200, A: 255}))
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	raster, err := NewSource().Load(context.Background(), domain.ImageRef{Path: path}, 90)

	require.NoError(t, err)
	assert.Equal(t, 200, raster.Width)
	assert.Equal(t, 100, raster.Height)
	assert.False(t, raster.Converted)
	assert.Equal(t, original, raster.JPEG)
}

func TestSource_Load_GrayscaleJPEGIsConverted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grey.jpg")
	gray := image.NewGray(image.Rect(0, 0, 20, 10))
	writeJPEG(t, path, gray)

	raster, err := NewSource().Load(context.Background(), domain.ImageRef{Path: path}, 80)

	require.NoError(t, err)
	assert.True(t, raster.Converted)
	assert.Equal(t, 20, raster.Width)
}

func TestSource_Load_PalettedPNGIsConverted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.png")
	pal := image.NewPaletted(image.Rect(0, 0, 8, 8), color.Palette{color.Black, color.White})
	writePNG(t, path, pal)

	raster, err := NewSource().Load(context.Background(), domain.ImageRef{Path: path}, 80)

	require.NoError(t, err)
	assert.True(t, raster.Converted)
}

func TestSource_Load_CorruptImageIsItemError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := NewSource().Load(context.Background(), domain.ImageRef{Path: path}, 90)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Equal(t, domain.KindItem, domain.KindOf(err))
}

func TestSource_Load_MissingFile(t *testing.T) {
	_, err := NewSource().Load(context.Background(), domain.ImageRef{Path: "/does/not/exist.png"}, 90)

	require.Error(t, err)
	assert.Equal(t, domain.KindItem, domain.KindOf(err))
}

func TestToOpaqueRGB_CompositesAlphaOverWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.SetNRGBA(5, 5, color.NRGBA{A: 0})
	src.SetNRGBA(6, 5, color.NRGBA{R: 255, A: 255})

	dst := ToOpaqueRGB(src)

	assert.Equal(t, image.Rect(0, 0, 2, 1), dst.Bounds())
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, dst.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, dst.RGBAAt(1, 0))
}

func TestEncodeJPEG_ClampsQuality(t *testing.T) {
	img := solidRGBA(4, 4, color.RGBA{G: 255, A: 255})

	for _, q := range []int{0, 50, 101} {
		buf, err := EncodeJPEG(img, q)
		require.NoError(t, err)
		_, err = jpeg.Decode(bytes.NewReader(buf))
		assert.NoError(t, err)
	}
}
