package driven

import "github.com/custodia-labs/pdfdesk/internal/core/domain"

// DocumentComposer creates new PDF documents built from images.
type DocumentComposer interface {
	// New starts an empty document whose pages all have the given size.
	New(page domain.PageSize) PageDocument
}

// PageDocument is a PDF under construction.
type PageDocument interface {
	// AddImagePage appends a page showing raster at placement.
	// On error the document is left without the page.
	AddImagePage(name string, raster *domain.Raster, placement domain.Placement) error

	// PageCount returns the number of pages added so far.
	PageCount() int

	// Save writes the document to path.
	Save(path string) error
}
