package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for pdfdesk.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
// Tools backed by a nil optional port stay registered and report
// unavailability; the instructions tell clients which ones those are.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "pdfdesk",
		Title:   "pdfdesk PDF toolkit",
		Version: Version,
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{
			Instructions: instructions(ports),
		}),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// instructions describes the workflow to MCP clients.
func instructions(ports *Ports) string {
	var b strings.Builder
	b.WriteString("pdfdesk builds and protects PDF files on the local disk. ")
	b.WriteString("All paths are local; outputs are overwritten without asking.\n")
	b.WriteString("- list_images shows the page order, images_to_pdf writes the PDF.\n")
	b.WriteString("- encrypt_pdf and decrypt_pdf write a protected or unprotected copy.\n")
	b.WriteString("- rasterize_pdf renders pages to image_<n> files.\n")
	b.WriteString("- history and pdfdesk://history list past operations.\n")

	var missing []string
	if ports.Security == nil {
		missing = append(missing, "encrypt_pdf", "decrypt_pdf")
	}
	if ports.Extract == nil {
		missing = append(missing, "rasterize_pdf")
	}
	if ports.History == nil {
		missing = append(missing, "history")
	}
	if len(missing) > 0 {
		fmt.Fprintf(&b, "Not configured here: %s.\n", strings.Join(missing, ", "))
	}
	return b.String()
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
