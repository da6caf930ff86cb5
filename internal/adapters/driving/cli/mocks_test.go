package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
)

type mockImageService struct {
	refs    []domain.ImageRef
	listErr error
	result  *domain.Result
	err     error
	request domain.ConvertRequest
}

func (m *mockImageService) ListImages(_ context.Context, _ string) ([]domain.ImageRef, error) {
	return m.refs, m.listErr
}

func (m *mockImageService) Convert(_ context.Context, req domain.ConvertRequest) (*domain.Result, error) {
	m.request = req
	return m.result, m.err
}

type mockWatchService struct {
	results []*domain.Result
	errs    []error
	request domain.ConvertRequest
}

func (m *mockWatchService) Watch(_ context.Context, req domain.ConvertRequest, onResult func(*domain.Result, error)) error {
	m.request = req
	for i, r := range m.results {
		onResult(r, m.errs[i])
	}
	return nil
}

type mockSecurityService struct {
	result  *domain.Result
	err     error
	encrypt domain.EncryptRequest
	decrypt domain.DecryptRequest
}

func (m *mockSecurityService) Encrypt(_ context.Context, req domain.EncryptRequest) (*domain.Result, error) {
	m.encrypt = req
	return m.result, m.err
}

func (m *mockSecurityService) Decrypt(_ context.Context, req domain.DecryptRequest) (*domain.Result, error) {
	m.decrypt = req
	return m.result, m.err
}

func (m *mockSecurityService) Inspect(_ context.Context, path, _ string) (*domain.DocumentInfo, error) {
	return &domain.DocumentInfo{Path: path}, nil
}

type mockExtractService struct {
	// responses are returned in order, one per call.
	responses   []extractResponse
	requests    []domain.ExtractRequest
	rendererErr error
}

type extractResponse struct {
	result *domain.Result
	err    error
}

func (m *mockExtractService) Extract(_ context.Context, req domain.ExtractRequest) (*domain.Result, error) {
	m.requests = append(m.requests, req)
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp.result, resp.err
}

func (m *mockExtractService) RendererStatus() error {
	return m.rendererErr
}

type mockHistoryService struct {
	entries []domain.HistoryEntry
	err     error
	limit   int
	cleared bool
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.limit = limit
	return m.entries, m.err
}

func (m *mockHistoryService) Get(_ context.Context, _ string) (*domain.HistoryEntry, error) {
	return nil, domain.ErrNotFound
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	m.cleared = true
	return m.err
}

type mockSettingsService struct {
	settings domain.AppSettings
	setKey   string
	setValue string
	reset    string
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, m.err
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return m.err
}

func (m *mockSettingsService) Set(key, value string) error {
	m.setKey, m.setValue = key, value
	return m.err
}

func (m *mockSettingsService) Reset(key string) error {
	m.reset = key
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return []string{"page.size"}
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ConfigPath() string {
	return "/home/test/.pdfdesk/config.toml"
}

// setupTestServices installs services for one test and removes them after.
func setupTestServices(t *testing.T, s *Services) {
	t.Helper()
	SetServices(s)
	t.Cleanup(func() { SetServices(nil) })
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// resetFlags restores every flag to its default so runs do not leak
// into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func succeededResult(op domain.Operation, output string, pages int) *domain.Result {
	r := domain.NewResult("test", op, output)
	r.Pages = pages
	r.Finish()
	return r
}
