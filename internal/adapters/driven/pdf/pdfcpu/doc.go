// Package pdfcpu implements document inspection, password protection and
// embedded image extraction on top of github.com/pdfcpu/pdfcpu.
//
// All writes go through a temporary file next to the destination and are
// renamed into place, so a failed operation never leaves a partial output.
package pdfcpu
