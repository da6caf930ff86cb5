package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// defaultHistoryLimit is used when the history tool is called without a limit.
const defaultHistoryLimit = 20

// ListImagesInput is the input schema for the list_images tool.
type ListImagesInput struct {
	Folder string `json:"folder" jsonschema:"folder to scan for .jpg, .jpeg and .png files"`
}

// ListImagesOutput is the output schema for the list_images tool.
type ListImagesOutput struct {
	Images []string `json:"images"`
	Count  int      `json:"count"`
}

// ImagesToPDFInput is the input schema for the images_to_pdf tool.
type ImagesToPDFInput struct {
	Folder      string `json:"folder" jsonschema:"folder holding the images, one page per image in name order"`
	Output      string `json:"output" jsonschema:"path of the PDF to write"`
	PageSize    string `json:"page_size,omitempty" jsonschema:"A3, A4, A5, Letter or Legal (default from settings)"`
	Orientation string `json:"orientation,omitempty" jsonschema:"portrait or landscape (default from settings)"`
}

// EncryptInput is the input schema for the encrypt_pdf tool.
type EncryptInput struct {
	Source   string `json:"source" jsonschema:"PDF to protect"`
	Output   string `json:"output" jsonschema:"path of the protected PDF to write"`
	Password string `json:"password" jsonschema:"password required to open the output"`
}

// DecryptInput is the input schema for the decrypt_pdf tool.
type DecryptInput struct {
	Source   string `json:"source" jsonschema:"protected PDF"`
	Output   string `json:"output" jsonschema:"path of the unprotected PDF to write"`
	Password string `json:"password" jsonschema:"password that opens the source"`
}

// RasterizeInput is the input schema for the rasterize_pdf tool.
type RasterizeInput struct {
	Source    string `json:"source" jsonschema:"PDF whose pages are rendered"`
	OutputDir string `json:"output_dir" jsonschema:"directory for image_<n> files, created if missing"`
	Password  string `json:"password,omitempty" jsonschema:"password for a protected source"`
	DPI       int    `json:"dpi,omitempty" jsonschema:"render resolution (default from settings)"`
	Format    string `json:"format,omitempty" jsonschema:"jpeg or png (default from settings)"`
	Embedded  bool   `json:"embedded,omitempty" jsonschema:"extract embedded images instead of rendering pages"`
}

// HistoryInput is the input schema for the history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of entries to return (default 20)"`
}

// ResultOutput is the output schema shared by the operation tools.
type ResultOutput struct {
	ID        string          `json:"id"`
	Operation string          `json:"operation"`
	Status    string          `json:"status"`
	Output    string          `json:"output"`
	Files     []string        `json:"files,omitempty"`
	Pages     int             `json:"pages"`
	Skipped   []SkippedOutput `json:"skipped,omitempty"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// SkippedOutput is an input left out of an operation.
type SkippedOutput struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// HistoryOutput is the output schema for the history tool.
type HistoryOutput struct {
	Entries []HistoryEntryOutput `json:"entries"`
	Count   int                  `json:"count"`
}

// HistoryEntryOutput is one past operation.
type HistoryEntryOutput struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	Status    string    `json:"status"`
	Inputs    []string  `json:"inputs"`
	Output    string    `json:"output"`
	Pages     int       `json:"pages"`
	Skipped   int       `json:"skipped"`
	Error     string    `json:"error,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_images",
		Description: "List the images in a folder in the order they become pages",
	}, s.handleListImages)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "images_to_pdf",
		Description: "Combine every image in a folder into one PDF, one centred page per image",
	}, s.handleImagesToPDF)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "encrypt_pdf",
		Description: "Write a password-protected copy of a PDF",
	}, s.handleEncrypt)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "decrypt_pdf",
		Description: "Write an unprotected copy of a password-protected PDF",
	}, s.handleDecrypt)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rasterize_pdf",
		Description: "Render every page of a PDF to image_<n> files in a directory",
	}, s.handleRasterize)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "history",
		Description: "List recent pdfdesk operations, most recent first",
	}, s.handleHistory)
}

// handleListImages handles the list_images tool invocation.
func (s *Server) handleListImages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListImagesInput,
) (*mcp.CallToolResult, ListImagesOutput, error) {
	refs, err := s.ports.Images.ListImages(ctx, input.Folder)
	if err != nil {
		return nil, ListImagesOutput{}, err
	}

	output := ListImagesOutput{
		Images: make([]string, len(refs)),
		Count:  len(refs),
	}
	for i, ref := range refs {
		output.Images[i] = ref.Path
	}
	return nil, output, nil
}

// handleImagesToPDF handles the images_to_pdf tool invocation.
func (s *Server) handleImagesToPDF(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImagesToPDFInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	result, err := s.ports.Images.Convert(ctx, domain.ConvertRequest{
		Folder:      input.Folder,
		Output:      input.Output,
		PageSize:    input.PageSize,
		Orientation: domain.Orientation(input.Orientation),
	})
	return finish(result, err)
}

// handleEncrypt handles the encrypt_pdf tool invocation.
func (s *Server) handleEncrypt(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EncryptInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	if s.ports.Security == nil {
		return nil, ResultOutput{}, errToolUnavailable
	}
	result, err := s.ports.Security.Encrypt(ctx, domain.EncryptRequest{
		Source:   input.Source,
		Output:   input.Output,
		Password: input.Password,
	})
	return finish(result, err)
}

// handleDecrypt handles the decrypt_pdf tool invocation.
func (s *Server) handleDecrypt(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DecryptInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	if s.ports.Security == nil {
		return nil, ResultOutput{}, errToolUnavailable
	}
	result, err := s.ports.Security.Decrypt(ctx, domain.DecryptRequest{
		Source:   input.Source,
		Output:   input.Output,
		Password: input.Password,
	})
	return finish(result, err)
}

// handleRasterize handles the rasterize_pdf tool invocation.
func (s *Server) handleRasterize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RasterizeInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	if s.ports.Extract == nil {
		return nil, ResultOutput{}, errToolUnavailable
	}
	result, err := s.ports.Extract.Extract(ctx, domain.ExtractRequest{
		Source:    input.Source,
		OutputDir: input.OutputDir,
		Password:  input.Password,
		DPI:       input.DPI,
		Format:    domain.RenderFormat(input.Format),
		Embedded:  input.Embedded,
	})
	return finish(result, err)
}

// handleHistory handles the history tool invocation.
func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	if s.ports.History == nil {
		return nil, HistoryOutput{}, errToolUnavailable
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := s.ports.History.List(ctx, limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Entries: make([]HistoryEntryOutput, len(entries)),
		Count:   len(entries),
	}
	for i := range entries {
		output.Entries[i] = toHistoryOutput(&entries[i])
	}
	return nil, output, nil
}

// finish converts a service result into tool output.
// A failed operation is returned as a tool error.
func finish(result *domain.Result, err error) (*mcp.CallToolResult, ResultOutput, error) {
	if err != nil {
		return nil, ResultOutput{}, err
	}
	return nil, toResultOutput(result), nil
}

func toResultOutput(r *domain.Result) ResultOutput {
	out := ResultOutput{
		ID:        r.ID,
		Operation: r.Operation.String(),
		Status:    r.Status.String(),
		Output:    r.Output,
		Files:     r.Files,
		Pages:     r.Pages,
		Warnings:  r.Warnings,
	}
	for _, skipped := range r.Skipped {
		out.Skipped = append(out.Skipped, SkippedOutput{Path: skipped.Path, Reason: skipped.Reason})
	}
	return out
}

func toHistoryOutput(e *domain.HistoryEntry) HistoryEntryOutput {
	return HistoryEntryOutput{
		ID:        e.ID,
		Operation: e.Operation.String(),
		Status:    e.Status.String(),
		Inputs:    e.Inputs,
		Output:    e.Output,
		Pages:     e.Pages,
		Skipped:   e.Skipped,
		Error:     e.Error,
		StartedAt: e.StartedAt,
	}
}
