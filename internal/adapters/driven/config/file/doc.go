// Package file provides the TOML-backed configuration store.
//
// Keys are addressed in dot notation ("render.dpi") and written back as
// TOML tables, so the file stays hand-editable:
//
//	[render]
//	dpi = 300
package file
