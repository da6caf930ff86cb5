package domain

// Operation identifies one of the pdfdesk operations.
type Operation string

// Available operations.
const (
	OpConvert Operation = "images_to_pdf"
	OpEncrypt Operation = "encrypt"
	OpDecrypt Operation = "decrypt"
	OpExtract Operation = "extract"
)

// IsValid returns true if the operation is recognised.
func (o Operation) IsValid() bool {
	switch o {
	case OpConvert, OpEncrypt, OpDecrypt, OpExtract:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (o Operation) String() string {
	return string(o)
}

// Description returns a human-readable description of the operation.
func (o Operation) Description() string {
	switch o {
	case OpConvert:
		return "Convert images to PDF"
	case OpEncrypt:
		return "Encrypt PDF"
	case OpDecrypt:
		return "Decrypt PDF"
	case OpExtract:
		return "Extract images from PDF"
	default:
		return "Unknown"
	}
}

// ConvertRequest asks for every image in Folder to become one page of Output.
type ConvertRequest struct {
	Folder string
	Output string

	// PageSize and Orientation override the page settings when set.
	PageSize    string
	Orientation Orientation
}

// EncryptRequest asks for Source to be written to Output protected by Password.
type EncryptRequest struct {
	Source   string
	Output   string
	Password string
}

// DecryptRequest asks for Source to be unlocked with Password and written
// unprotected to Output.
type DecryptRequest struct {
	Source   string
	Output   string
	Password string
}

// ExtractRequest asks for every page of Source to be written as an image
// file in OutputDir.
type ExtractRequest struct {
	Source    string
	OutputDir string

	// Password unlocks a protected source. Optional.
	Password string

	// Embedded extracts the images embedded in the document instead of
	// rendering each page.
	Embedded bool

	// DPI and Format override the render settings when set.
	DPI    int
	Format RenderFormat
}
