package tui

import "errors"

// ErrMissingImageService is returned when the image service is not provided.
var ErrMissingImageService = errors.New("tui: image service is required")

// ErrMissingSecurityService is returned when the security service is not provided.
var ErrMissingSecurityService = errors.New("tui: security service is required")

// ErrMissingExtractService is returned when the extract service is not provided.
var ErrMissingExtractService = errors.New("tui: extract service is required")
