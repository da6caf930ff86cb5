package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Orientation is the page orientation used by the compositor.
type Orientation string

// Available orientations.
const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// IsValid returns true if the orientation is recognised.
func (o Orientation) IsValid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// String returns the string representation.
func (o Orientation) String() string {
	return string(o)
}

// PageSize is a page in millimetres.
type PageSize struct {
	Width  float64
	Height float64
}

// Named page sizes in portrait orientation.
var pageSizes = map[string]PageSize{
	"A3":     {Width: 297, Height: 420},
	"A4":     {Width: 210, Height: 297},
	"A5":     {Width: 148, Height: 210},
	"LETTER": {Width: 215.9, Height: 279.4},
	"LEGAL":  {Width: 215.9, Height: 355.6},
}

// DefaultPageSize is A4 portrait.
var DefaultPageSize = pageSizes["A4"]

// LookupPageSize resolves a named size (case-insensitive) in the given orientation.
func LookupPageSize(name string, orientation Orientation) (PageSize, error) {
	size, ok := pageSizes[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return PageSize{}, fmt.Errorf("%w: page size %q", ErrUnsupportedFormat, name)
	}
	if orientation == OrientationLandscape {
		size.Width, size.Height = size.Height, size.Width
	}
	return size, nil
}

// PageSizeNames returns the recognised page size names, sorted.
func PageSizeNames() []string {
	names := make([]string, 0, len(pageSizes))
	for name := range pageSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Aspect returns width divided by height.
func (p PageSize) Aspect() float64 {
	return p.Width / p.Height
}

// Placement is where an image is drawn on a page, in page units.
type Placement struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Fit scales an image of imgW x imgH pixels to the largest size that fits
// the page on both axes without changing its aspect ratio, and centres it.
//
// An image relatively wider than the page is fitted to the page width;
// otherwise it is fitted to the page height.
func Fit(imgW, imgH int, page PageSize) (Placement, error) {
	if imgW <= 0 || imgH <= 0 {
		return Placement{}, fmt.Errorf("%w: image dimensions %dx%d", ErrInvalidInput, imgW, imgH)
	}
	if page.Width <= 0 || page.Height <= 0 {
		return Placement{}, fmt.Errorf("%w: page dimensions %gx%g", ErrInvalidInput, page.Width, page.Height)
	}

	imgAspect := float64(imgW) / float64(imgH)

	var w, h float64
	if imgAspect > page.Aspect() {
		w = page.Width
		h = page.Width / imgAspect
	} else {
		h = page.Height
		w = page.Height * imgAspect
	}

	return Placement{
		X:      (page.Width - w) / 2,
		Y:      (page.Height - h) / 2,
		Width:  w,
		Height: h,
	}, nil
}
