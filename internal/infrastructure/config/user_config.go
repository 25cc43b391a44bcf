package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
)

// maxProfileLen matches the session.profile validation and the profile column size
const maxProfileLen = 64

// UserConfig represents user preferences stored in ~/.redcycle/config.json
type UserConfig struct {
	// Eco tier used by `process` when --eco is not given
	DefaultEcoTier string `json:"default_eco_tier,omitempty"`

	// Profile used when --profile is not given
	DefaultProfile string `json:"default_profile,omitempty"`
}

// Apply overlays the saved preferences on a loaded configuration
func (u *UserConfig) Apply(cfg *Config) {
	if u == nil || cfg == nil {
		return
	}
	if u.DefaultEcoTier != "" {
		cfg.Session.EcoTier = u.DefaultEcoTier
	}
	if u.DefaultProfile != "" {
		cfg.Session.Profile = u.DefaultProfile
	}
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a handler for ~/.redcycle/config.json
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewUserConfigHandlerAt(filepath.Join(homeDir, UserDirName))
}

// NewUserConfigHandlerAt creates a handler for config.json inside configDir
func NewUserConfigHandlerAt(configDir string) (*UserConfigHandler, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &UserConfigHandler{
		configPath: filepath.Join(configDir, "config.json"),
	}, nil
}

// Load reads the saved preferences; a missing file means none are set
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	data, err := os.ReadFile(h.configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var prefs UserConfig
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse user config %s: %w", h.configPath, err)
	}
	return &prefs, nil
}

// Save replaces the preferences file through a temp file and rename
func (h *UserConfigHandler) Save(prefs *UserConfig) error {
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	tmp := h.configPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}
	if err := os.Rename(tmp, h.configPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace user config: %w", err)
	}
	return nil
}

func (h *UserConfigHandler) update(change func(*UserConfig)) error {
	prefs, err := h.Load()
	if err != nil {
		return err
	}
	change(prefs)
	return h.Save(prefs)
}

// SetDefaultEcoTier stores the tier in its canonical lowercase form
func (h *UserConfigHandler) SetDefaultEcoTier(tier string) error {
	parsed, err := processing.ParseEcoTier(tier)
	if err != nil {
		return err
	}
	return h.update(func(prefs *UserConfig) { prefs.DefaultEcoTier = string(parsed) })
}

// SetDefaultProfile stores the profile selected when --profile is absent
func (h *UserConfigHandler) SetDefaultProfile(profile string) error {
	profile = strings.TrimSpace(profile)
	switch {
	case profile == "":
		return fmt.Errorf("profile cannot be empty")
	case len(profile) > maxProfileLen:
		return fmt.Errorf("profile %q is longer than %d characters", profile, maxProfileLen)
	}
	return h.update(func(prefs *UserConfig) { prefs.DefaultProfile = profile })
}

// ClearDefaults removes every saved preference
func (h *UserConfigHandler) ClearDefaults() error {
	return h.Save(&UserConfig{})
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
