// Package gofpdf writes image-per-page PDF documents with jung-kurt/gofpdf.
package gofpdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driven"
)

// creator is written to the document information dictionary.
const creator = "pdfdesk"

// Ensure Composer and Document implement the interfaces.
var (
	_ driven.DocumentComposer = (*Composer)(nil)
	_ driven.PageDocument     = (*Document)(nil)
)

// Composer creates gofpdf-backed documents.
type Composer struct{}

// NewComposer creates a new composer.
func NewComposer() *Composer {
	return &Composer{}
}

// New starts an empty document whose pages all have the given size in millimetres.
func (c *Composer) New(page domain.PageSize) driven.PageDocument {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(creator, true)
	return &Document{pdf: pdf, page: page}
}

// Document is a PDF under construction. It is not safe for concurrent use.
type Document struct {
	pdf   *gofpdf.Fpdf
	page  domain.PageSize
	pages int
}

// AddImagePage appends a page holding the raster at the given placement.
// A raster gofpdf cannot embed leaves the document unchanged.
func (d *Document) AddImagePage(name string, raster *domain.Raster, placement domain.Placement) error {
	if raster == nil || len(raster.JPEG) == 0 {
		return fmt.Errorf("%w: %s has no image data", domain.ErrInvalidInput, name)
	}
	if placement.X < 0 || placement.Y < 0 ||
		placement.X+placement.Width > d.page.Width+1e-6 ||
		placement.Y+placement.Height > d.page.Height+1e-6 {
		return fmt.Errorf("%w: placement of %s exceeds page", domain.ErrInvalidInput, name)
	}

	// Register before adding the page so a bad image never leaves a blank page behind.
	imageName := "img" + strconv.Itoa(d.pages+1)
	opts := gofpdf.ImageOptions{ImageType: "JPG", ReadDpi: false}
	d.pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(raster.JPEG))
	if err := d.pdf.Error(); err != nil {
		d.pdf.ClearError()
		return fmt.Errorf("embedding %s: %w", name, err)
	}

	d.pdf.AddPage()
	d.pdf.ImageOptions(imageName, placement.X, placement.Y, placement.Width, placement.Height, false, opts, 0, "")
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("placing %s: %w", name, err)
	}
	d.pages++
	return nil
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int {
	return d.pages
}

// Save writes the document to path through a temporary file, so path is
// either complete or untouched.
func (d *Document) Save(path string) error {
	if d.pages == 0 {
		return domain.ErrNoPages
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := d.pdf.Output(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing pdf: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
