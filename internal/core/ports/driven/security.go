package driven

import (
	"context"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// DocumentSecurity reads PDFs and applies or removes password protection.
type DocumentSecurity interface {
	// Inspect reads page count and encryption state. A protected document
	// needs its password; a wrong one returns domain.ErrWrongPassword.
	Inspect(ctx context.Context, path, password string) (*domain.DocumentInfo, error)

	// Encrypt writes src to dst protected by password, using AES with
	// keyLength bits.
	Encrypt(ctx context.Context, src, dst, password string, keyLength int) error

	// Decrypt writes the protected src to dst without protection.
	Decrypt(ctx context.Context, src, dst, password string) error

	// Rewrite copies every page of an unprotected src to dst.
	Rewrite(ctx context.Context, src, dst string) error
}

// ImageExtractor pulls the images embedded in a PDF.
type ImageExtractor interface {
	// ExtractImages writes each distinct embedded image to dir as
	// image_<n>.<ext> and returns the written paths in order.
	ExtractImages(ctx context.Context, src, dir, password string) ([]string, error)
}
