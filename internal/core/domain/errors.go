package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent operation failures callers may want to match
// with errors.Is. Infrastructure errors are wrapped beneath them.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotImplemented indicates a required adapter was not configured.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoImages indicates the selected folder holds no supported images.
	ErrNoImages = errors.New("no images found")

	// ErrNoPages indicates every image was skipped and no page was composed.
	ErrNoPages = errors.New("no pages composed")

	// ErrNoFolderSelected indicates a conversion was requested before a folder was chosen.
	ErrNoFolderSelected = errors.New("no folder selected")

	// ErrWrongPassword indicates the password did not unlock the document.
	ErrWrongPassword = errors.New("incorrect password")

	// ErrAlreadyEncrypted indicates the source document is already password protected.
	ErrAlreadyEncrypted = errors.New("document is already encrypted")

	// ErrRendererNotFound indicates the external PDF renderer could not be located.
	ErrRendererNotFound = errors.New("pdf renderer not found")

	// ErrUnsupportedFormat indicates an unknown image or page format.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// ErrorKind classifies where in an operation a failure happened.
type ErrorKind string

// Error kinds.
const (
	// KindInput is a request that could not be started (missing path, empty password).
	KindInput ErrorKind = "input"

	// KindEnumeration is a folder that could not be scanned.
	KindEnumeration ErrorKind = "enumeration"

	// KindItem is a single image that could not be composed. Never fatal.
	KindItem ErrorKind = "item"

	// KindRead is a source document that could not be opened or parsed.
	KindRead ErrorKind = "read"

	// KindWrite is an output that could not be written.
	KindWrite ErrorKind = "write"

	// KindEncryption is a failure applying or removing protection.
	KindEncryption ErrorKind = "encryption"

	// KindAuthorization is a password that did not unlock the document.
	KindAuthorization ErrorKind = "authorization"

	// KindRenderer is an unavailable or failing rasterizer.
	KindRenderer ErrorKind = "renderer"
)

// OpError is a failure with the operation, kind and path it relates to.
type OpError struct {
	Op   Operation
	Kind ErrorKind
	Path string
	Err  error
}

// NewOpError creates an OpError.
func NewOpError(op Operation, kind ErrorKind, path string, err error) *OpError {
	return &OpError{Op: op, Kind: kind, Path: path, Err: err}
}

// Error implements error.
func (e *OpError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Kind, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *OpError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first OpError in err's chain.
// Returns an empty kind if there is none.
func KindOf(err error) ErrorKind {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return ""
}
