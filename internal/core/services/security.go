package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driven"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driving"
	"github.com/custodia-labs/pdfdesk/internal/logger"
)

// Ensure SecurityService implements the interface.
var _ driving.SecurityService = (*SecurityService)(nil)

// warnNotEncrypted is added to a decrypt result whose source had no protection.
const warnNotEncrypted = "source is not encrypted; password ignored"

// SecurityService applies and removes PDF password protection.
type SecurityService struct {
	docs     driven.DocumentSecurity
	settings settingsSource
	history  recorder
}

// NewSecurityService creates a new security service.
func NewSecurityService(docs driven.DocumentSecurity, settings settingsSource, history recorder) *SecurityService {
	return &SecurityService{docs: docs, settings: settings, history: history}
}

// Inspect returns page count and encryption state of a document.
func (s *SecurityService) Inspect(ctx context.Context, path, password string) (*domain.DocumentInfo, error) {
	if s.docs == nil {
		return nil, domain.ErrNotImplemented
	}
	if strings.TrimSpace(path) == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.docs.Inspect(ctx, path, password)
}

// Encrypt writes a password-protected copy of the source.
func (s *SecurityService) Encrypt(ctx context.Context, req domain.EncryptRequest) (*domain.Result, error) {
	result := newResult(domain.OpEncrypt, req.Output, req.Source)
	defer s.record(ctx, result)

	if err := s.checkRequest(domain.OpEncrypt, req.Source, req.Output, req.Password); err != nil {
		return result, result.Fail(err)
	}

	info, err := s.docs.Inspect(ctx, req.Source, "")
	if errors.Is(err, domain.ErrWrongPassword) {
		// Cannot be opened without a password, so it is protected already.
		info, err = &domain.DocumentInfo{Path: req.Source, Encrypted: true}, nil
	}
	if err != nil {
		return result, result.Fail(s.classify(domain.OpEncrypt, domain.KindRead, req.Source, err))
	}
	if info.Encrypted {
		logger.Warn("%s is already encrypted", req.Source)
		return result, result.Fail(domain.NewOpError(domain.OpEncrypt, domain.KindEncryption, req.Source,
			domain.ErrAlreadyEncrypted))
	}

	keyLength := loadSettings(s.settings).Security.KeyLength
	if err := s.docs.Encrypt(ctx, req.Source, req.Output, req.Password, keyLength); err != nil {
		logger.Error("failed to encrypt %s: %v", req.Source, err)
		return result, result.Fail(s.classify(domain.OpEncrypt, domain.KindWrite, req.Output, err))
	}

	result.Pages = info.Pages
	result.Files = []string{req.Output}
	result.Finish()
	logger.Info("encrypted %s to %s (AES-%d)", req.Source, req.Output, keyLength)
	return result, nil
}

// Decrypt writes an unprotected copy of the source.
// A source without protection is copied through with a warning.
func (s *SecurityService) Decrypt(ctx context.Context, req domain.DecryptRequest) (*domain.Result, error) {
	result := newResult(domain.OpDecrypt, req.Output, req.Source)
	defer s.record(ctx, result)

	if err := s.checkRequest(domain.OpDecrypt, req.Source, req.Output, req.Password); err != nil {
		return result, result.Fail(err)
	}

	info, err := s.docs.Inspect(ctx, req.Source, req.Password)
	if err != nil {
		logger.Warn("cannot open %s: %v", req.Source, err)
		return result, result.Fail(s.classify(domain.OpDecrypt, domain.KindRead, req.Source, err))
	}

	if !info.Encrypted {
		logger.Warn("%s is not encrypted; copying through", req.Source)
		if err := s.docs.Rewrite(ctx, req.Source, req.Output); err != nil {
			return result, result.Fail(s.classify(domain.OpDecrypt, domain.KindWrite, req.Output, err))
		}
		result.Warn(warnNotEncrypted)
	} else if err := s.docs.Decrypt(ctx, req.Source, req.Output, req.Password); err != nil {
		logger.Error("failed to decrypt %s: %v", req.Source, err)
		return result, result.Fail(s.classify(domain.OpDecrypt, domain.KindWrite, req.Output, err))
	}

	result.Pages = info.Pages
	result.Files = []string{req.Output}
	result.Finish()
	logger.Info("decrypted %s to %s", req.Source, req.Output)
	return result, nil
}

func (s *SecurityService) checkRequest(op domain.Operation, source, output, password string) error {
	if s.docs == nil {
		return domain.ErrNotImplemented
	}
	if strings.TrimSpace(source) == "" {
		return domain.NewOpError(op, domain.KindInput, "", fmt.Errorf("%w: source path is required", domain.ErrInvalidInput))
	}
	if strings.TrimSpace(output) == "" {
		return domain.NewOpError(op, domain.KindInput, "", fmt.Errorf("%w: output path is required", domain.ErrInvalidInput))
	}
	if password == "" {
		return domain.NewOpError(op, domain.KindInput, "", fmt.Errorf("%w: password is required", domain.ErrInvalidInput))
	}
	return nil
}

// classify wraps an adapter error with the kind matching its cause.
func (s *SecurityService) classify(op domain.Operation, fallback domain.ErrorKind, path string, err error) error {
	var opErr *domain.OpError
	if errors.As(err, &opErr) {
		return err
	}
	kind := fallback
	switch {
	case errors.Is(err, domain.ErrWrongPassword):
		kind = domain.KindAuthorization
	case errors.Is(err, domain.ErrAlreadyEncrypted):
		kind = domain.KindEncryption
	}
	return domain.NewOpError(op, kind, path, err)
}

func (s *SecurityService) record(ctx context.Context, result *domain.Result) {
	if s.history != nil {
		s.history.Record(context.WithoutCancel(ctx), result)
	}
}
