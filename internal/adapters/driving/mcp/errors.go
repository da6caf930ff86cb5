// Package mcp provides an MCP (Model Context Protocol) server adapter for pdfdesk.
// It lets AI assistants convert images, protect documents and rasterize pages
// through the same services as the command line.
package mcp

import "errors"

// ErrMissingImageService is returned when the image service is not provided.
var ErrMissingImageService = errors.New("mcp: image service is required")

// errToolUnavailable is returned by tools whose service was not provided.
var errToolUnavailable = errors.New("mcp: tool not available in this configuration")
