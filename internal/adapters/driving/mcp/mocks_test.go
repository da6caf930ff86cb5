package mcp

import (
	"context"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

// mockImageService is a mock implementation of driving.ImageService.
type mockImageService struct {
	images  []domain.ImageRef
	result  *domain.Result
	err     error
	request domain.ConvertRequest
}

func (m *mockImageService) ListImages(_ context.Context, _ string) ([]domain.ImageRef, error) {
	return m.images, m.err
}

func (m *mockImageService) Convert(_ context.Context, req domain.ConvertRequest) (*domain.Result, error) {
	m.request = req
	return m.result, m.err
}

// mockSecurityService is a mock implementation of driving.SecurityService.
type mockSecurityService struct {
	result   *domain.Result
	err      error
	password string
}

func (m *mockSecurityService) Encrypt(_ context.Context, req domain.EncryptRequest) (*domain.Result, error) {
	m.password = req.Password
	return m.result, m.err
}

func (m *mockSecurityService) Decrypt(_ context.Context, req domain.DecryptRequest) (*domain.Result, error) {
	m.password = req.Password
	return m.result, m.err
}

func (m *mockSecurityService) Inspect(_ context.Context, path, _ string) (*domain.DocumentInfo, error) {
	return &domain.DocumentInfo{Path: path}, m.err
}

// mockExtractService is a mock implementation of driving.ExtractService.
type mockExtractService struct {
	result      *domain.Result
	err         error
	rendererErr error
	request     domain.ExtractRequest
}

func (m *mockExtractService) Extract(_ context.Context, req domain.ExtractRequest) (*domain.Result, error) {
	m.request = req
	return m.result, m.err
}

func (m *mockExtractService) RendererStatus() error {
	return m.rendererErr
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries []domain.HistoryEntry
	err     error
	limit   int
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.limit = limit
	return m.entries, m.err
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.HistoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.entries {
		if m.entries[i].ID == id {
			return &m.entries[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	return m.err
}
