package driving

import (
	"context"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// SecurityService applies and removes PDF password protection.
type SecurityService interface {
	// Encrypt writes a password-protected copy of the source.
	Encrypt(ctx context.Context, req domain.EncryptRequest) (*domain.Result, error)

	// Decrypt writes an unprotected copy of the source.
	Decrypt(ctx context.Context, req domain.DecryptRequest) (*domain.Result, error)

	// Inspect returns page count and encryption state of a document.
	Inspect(ctx context.Context, path, password string) (*domain.DocumentInfo, error)
}
