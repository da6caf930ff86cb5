package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driven"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyPageSize        = "page.size"
	keyPageOrientation = "page.orientation"
	keyJPEGQuality     = "compose.jpeg_quality"
	keyRenderBinary    = "render.binary"
	keyRenderDPI       = "render.dpi"
	keyRenderFormat    = "render.format"
	keyKeyLength       = "security.key_length"
	keyHistoryEnabled  = "history.enabled"
	keyHistoryKeep     = "history.keep"
)

// EnvRendererBinary overrides render.binary when set.
const EnvRendererBinary = "PDFDESK_PDFTOPPM"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Page: domain.PageSettings{
			Size:        s.getPageSize(defaults.Page.Size),
			Orientation: s.getOrientation(defaults.Page.Orientation),
		},
		Compose: domain.ComposeSettings{
			JPEGQuality: s.getInt(keyJPEGQuality, defaults.Compose.JPEGQuality),
		},
		Render: domain.RenderSettings{
			Binary: s.getRendererBinary(),
			DPI:    s.getInt(keyRenderDPI, defaults.Render.DPI),
			Format: s.getRenderFormat(defaults.Render.Format),
		},
		Security: domain.SecuritySettings{
			KeyLength: s.getKeyLength(defaults.Security.KeyLength),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
			Keep:    s.getInt(keyHistoryKeep, defaults.History.Keep),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyPageSize, strings.ToUpper(settings.Page.Size)},
		{keyPageOrientation, settings.Page.Orientation.String()},
		{keyJPEGQuality, settings.Compose.JPEGQuality},
		{keyRenderDPI, settings.Render.DPI},
		{keyRenderFormat, settings.Render.Format.String()},
		{keyKeyLength, settings.Security.KeyLength},
		{keyHistoryEnabled, settings.History.Enabled},
		{keyHistoryKeep, settings.History.Keep},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Only persist the binary when one was configured, not when it came from the environment.
	if s.getenv(EnvRendererBinary) == "" && settings.Render.Binary != "" {
		if err := s.configStore.Set(keyRenderBinary, settings.Render.Binary); err != nil {
			return fmt.Errorf("save %s: %w", keyRenderBinary, err)
		}
	}

	return nil
}

// Set updates a single setting by its config key.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case keyPageSize:
		settings.Page.Size = value
	case keyPageOrientation:
		settings.Page.Orientation = domain.Orientation(strings.ToLower(value))
	case keyJPEGQuality:
		settings.Compose.JPEGQuality, err = parseInt(key, value)
	case keyRenderBinary:
		settings.Render.Binary = value
	case keyRenderDPI:
		settings.Render.DPI, err = parseInt(key, value)
	case keyRenderFormat:
		settings.Render.Format = domain.RenderFormat(strings.ToLower(value))
	case keyKeyLength:
		settings.Security.KeyLength, err = parseInt(key, value)
	case keyHistoryEnabled:
		settings.History.Enabled, err = strconv.ParseBool(value)
		if err != nil {
			err = fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
	case keyHistoryKeep:
		settings.History.Keep, err = parseInt(key, value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return err
	}

	return s.Save(settings)
}

// Reset removes a stored key so its default applies again.
func (s *SettingsService) Reset(key string) error {
	if !s.isKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Delete(key)
}

func (s *SettingsService) isKey(key string) bool {
	for _, k := range s.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Keys returns the recognised config keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyPageSize, keyPageOrientation, keyJPEGQuality,
		keyRenderBinary, keyRenderDPI, keyRenderFormat,
		keyKeyLength, keyHistoryEnabled, keyHistoryKeep,
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns where settings are stored.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getPageSize(defaultVal string) string {
	val := strings.ToUpper(s.configStore.GetString(keyPageSize))
	if val == "" {
		return defaultVal
	}
	if _, err := domain.LookupPageSize(val, domain.OrientationPortrait); err != nil {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getOrientation(defaultVal domain.Orientation) domain.Orientation {
	o := domain.Orientation(strings.ToLower(s.configStore.GetString(keyPageOrientation)))
	if !o.IsValid() {
		return defaultVal
	}
	return o
}

func (s *SettingsService) getRenderFormat(defaultVal domain.RenderFormat) domain.RenderFormat {
	f := domain.RenderFormat(strings.ToLower(s.configStore.GetString(keyRenderFormat)))
	if !f.IsValid() {
		return defaultVal
	}
	return f
}

func (s *SettingsService) getKeyLength(defaultVal int) int {
	bits := s.getInt(keyKeyLength, defaultVal)
	if !domain.ValidKeyLength(bits) {
		return defaultVal
	}
	return bits
}

// getRendererBinary resolves the renderer from the environment, then config.
func (s *SettingsService) getRendererBinary() string {
	if env := strings.TrimSpace(s.getenv(EnvRendererBinary)); env != "" {
		return env
	}
	return s.configStore.GetString(keyRenderBinary)
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
	}
	return n, nil
}
