package pdfcpu

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/require"
)

// writeTextPDF writes an A4 document with one numbered page per page.
func writeTextPDF(t *testing.T, pages int) string {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 24)
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.Cell(40, 10, fmt.Sprintf("Page %d", i))
	}
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, pdf.OutputFileAndClose(path))
	return path
}

// writeImagePDF writes one page per colour, each holding a small JPEG.
// Repeated colours produce byte-identical images.
func writeImagePDF(t *testing.T, colours ...color.RGBA) string {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	for i, c := range colours {
		img := image.NewRGBA(image.Rect(0, 0, 16, 16))
		for p := 0; p < len(img.Pix); p += 4 {
			img.Pix[p], img.Pix[p+1], img.Pix[p+2], img.Pix[p+3] = c.R, c.G, c.B, 255
		}
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))

		name := fmt.Sprintf("img%d", i)
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.AddPage()
		pdf.ImageOptions(name, 10, 10, 50, 50, false, opts, 0, "")
	}
	path := filepath.Join(t.TempDir(), "images.pdf")
	require.NoError(t, pdf.OutputFileAndClose(path))
	return path
}
