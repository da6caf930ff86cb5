package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// MockImageService implements driving.ImageService for testing.
type MockImageService struct {
	ListImagesFunc func(ctx context.Context, dir string) ([]domain.ImageRef, error)
	ConvertFunc    func(ctx context.Context, req domain.ConvertRequest) (*domain.Result, error)
}

func (m *MockImageService) ListImages(ctx context.Context, dir string) ([]domain.ImageRef, error) {
	if m.ListImagesFunc != nil {
		return m.ListImagesFunc(ctx, dir)
	}
	return nil, nil
}

func (m *MockImageService) Convert(ctx context.Context, req domain.ConvertRequest) (*domain.Result, error) {
	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, req)
	}
	return finished(domain.OpConvert, req.Output), nil
}

// MockSecurityService implements driving.SecurityService for testing.
type MockSecurityService struct {
	EncryptFunc func(ctx context.Context, req domain.EncryptRequest) (*domain.Result, error)
	DecryptFunc func(ctx context.Context, req domain.DecryptRequest) (*domain.Result, error)
}

func (m *MockSecurityService) Encrypt(ctx context.Context, req domain.EncryptRequest) (*domain.Result, error) {
	if m.EncryptFunc != nil {
		return m.EncryptFunc(ctx, req)
	}
	return finished(domain.OpEncrypt, req.Output), nil
}

func (m *MockSecurityService) Decrypt(ctx context.Context, req domain.DecryptRequest) (*domain.Result, error) {
	if m.DecryptFunc != nil {
		return m.DecryptFunc(ctx, req)
	}
	return finished(domain.OpDecrypt, req.Output), nil
}

func (m *MockSecurityService) Inspect(_ context.Context, _, _ string) (*domain.DocumentInfo, error) {
	return &domain.DocumentInfo{}, nil
}

// MockExtractService implements driving.ExtractService for testing.
type MockExtractService struct {
	ExtractFunc func(ctx context.Context, req domain.ExtractRequest) (*domain.Result, error)
}

func (m *MockExtractService) Extract(ctx context.Context, req domain.ExtractRequest) (*domain.Result, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, req)
	}
	return finished(domain.OpExtract, req.OutputDir), nil
}

func (m *MockExtractService) RendererStatus() error {
	return nil
}

// MockHistoryService implements driving.HistoryService for testing.
type MockHistoryService struct {
	Entries []domain.HistoryEntry
}

func (m *MockHistoryService) List(_ context.Context, _ int) ([]domain.HistoryEntry, error) {
	return m.Entries, nil
}

func (m *MockHistoryService) Get(_ context.Context, _ string) (*domain.HistoryEntry, error) {
	return nil, domain.ErrNotFound
}

func (m *MockHistoryService) Clear(_ context.Context) error {
	return nil
}

// MockActionService implements driving.ActionService for testing.
type MockActionService struct {
	Opened []string
}

func (m *MockActionService) OpenPath(_ context.Context, path string) error {
	m.Opened = append(m.Opened, path)
	return nil
}

func finished(op domain.Operation, output string) *domain.Result {
	r := domain.NewResult("test", op, output)
	r.Pages = 1
	r.Finish()
	return r
}

func TestPorts_Validate(t *testing.T) {
	images := &MockImageService{}
	security := &MockSecurityService{}
	extract := &MockExtractService{}

	tests := []struct {
		name  string
		ports Ports
		want  error
	}{
		{"complete", Ports{Images: images, Security: security, Extract: extract}, nil},
		{"optional ports may be nil", Ports{Images: images, Security: security, Extract: extract, History: nil}, nil},
		{"missing images", Ports{Security: security, Extract: extract}, ErrMissingImageService},
		{"missing security", Ports{Images: images, Extract: extract}, ErrMissingSecurityService},
		{"missing extract", Ports{Images: images, Security: security}, ErrMissingExtractService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ports.Validate())
		})
	}
}
