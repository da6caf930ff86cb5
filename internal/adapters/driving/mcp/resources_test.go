package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

func TestExtractHistoryID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid", "pdfdesk://history/abc-123", "abc-123"},
		{"wrong scheme", "file://history/abc", ""},
		{"list uri", "pdfdesk://history", ""},
		{"nested", "pdfdesk://history/abc/def", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractHistoryID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleHistoryResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil history service returns empty list", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		result, err := server.handleHistoryResource(ctx, makeReadResourceRequest("pdfdesk://history"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns entries", func(t *testing.T) {
		history := &mockHistoryService{entries: []domain.HistoryEntry{
			{ID: "run-1", Operation: domain.OpConvert, Output: "/out/album.pdf"},
		}}
		server := newTestServer(t, &Ports{History: history})

		result, err := server.handleHistoryResource(ctx, makeReadResourceRequest("pdfdesk://history"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "run-1")
		assert.Contains(t, result.Contents[0].Text, "/out/album.pdf")
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		history := &mockHistoryService{err: errors.New("database locked")}
		server := newTestServer(t, &Ports{History: history})

		_, err := server.handleHistoryResource(ctx, makeReadResourceRequest("pdfdesk://history"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing history")
	})
}

func TestServer_handleHistoryEntryResource(t *testing.T) {
	ctx := context.Background()
	history := &mockHistoryService{entries: []domain.HistoryEntry{{ID: "run-1", Operation: domain.OpEncrypt}}}
	server := newTestServer(t, &Ports{History: history})

	result, err := server.handleHistoryEntryResource(ctx, makeReadResourceRequest("pdfdesk://history/run-1"))
	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, `"operation": "encrypt"`)

	_, err = server.handleHistoryEntryResource(ctx, makeReadResourceRequest("pdfdesk://history/run-2"))
	assert.Error(t, err)

	_, err = server.handleHistoryEntryResource(ctx, makeReadResourceRequest("pdfdesk://other"))
	assert.Error(t, err)
}

func TestServer_handleRendererResource(t *testing.T) {
	ctx := context.Background()
	req := makeReadResourceRequest("pdfdesk://renderer")

	server := newTestServer(t, &Ports{Extract: &mockExtractService{}})
	result, err := server.handleRendererResource(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "available", result.Contents[0].Text)

	server = newTestServer(t, &Ports{Extract: &mockExtractService{rendererErr: domain.ErrRendererNotFound}})
	result, err = server.handleRendererResource(ctx, req)
	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, "pdf renderer not found")

	server = newTestServer(t, &Ports{})
	result, err = server.handleRendererResource(ctx, req)
	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, "not configured")
}
