package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for pdfdesk resources.
	uriScheme = "pdfdesk://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recent pdfdesk operations",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{id}",
		Name:        "history-entry",
		Description: "One recorded operation",
		MIMEType:    "application/json",
	}, s.handleHistoryEntryResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "renderer",
		Name:        "renderer",
		Description: "Whether the page renderer used by rasterize_pdf is installed",
		MIMEType:    "text/plain",
	}, s.handleRendererResource)
}

// handleHistoryResource returns recent history entries.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonContents(req.Params.URI, "[]"), nil
	}

	entries, err := s.ports.History.List(ctx, defaultHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	infos := make([]HistoryEntryOutput, len(entries))
	for i := range entries {
		infos[i] = toHistoryOutput(&entries[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}
	return jsonContents(req.Params.URI, string(data)), nil
}

// handleHistoryEntryResource returns one history entry.
func (s *Server) handleHistoryEntryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract id from URI: pdfdesk://history/{id}
	id := extractHistoryID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entry, err := s.ports.History.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting history entry: %w", err)
	}

	data, err := json.MarshalIndent(toHistoryOutput(entry), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history entry: %w", err)
	}
	return jsonContents(req.Params.URI, string(data)), nil
}

// handleRendererResource reports renderer availability.
func (s *Server) handleRendererResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	text := "available"
	if s.ports.Extract == nil {
		text = "unavailable: extraction is not configured"
	} else if err := s.ports.Extract.RendererStatus(); err != nil {
		text = "unavailable: " + err.Error()
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		}},
	}, nil
}

func jsonContents(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractHistoryID extracts the entry ID from a URI like pdfdesk://history/{id}.
func extractHistoryID(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
