// Package config handles loading and persisting application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const configFile = "config.json"

// APIKeyEnv overrides the configured API key when set.
const APIKeyEnv = "EFT_MARKET_API_KEY"

// API holds remote market API settings.
type API struct {
	Key             string `json:"key"`
	URL             string `json:"url"`
	RefreshInterval int    `json:"refresh_interval_seconds"`
}

// Hotkeys holds global hotkey bindings.
type Hotkeys struct {
	ToggleDetection string `json:"toggle_detection"`
	ToggleOverlay   string `json:"toggle_overlay"`
}

// Overlay holds overlay window size and appearance. There is no window
// position here: the UI toolkit cannot place a window programmatically,
// so the window manager decides where the overlay appears.
type Overlay struct {
	Opacity float64 `json:"opacity"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
}

// Detection holds detection pipeline settings.
type Detection struct {
	ActiveOnStart   bool    `json:"active_on_start"`
	CooldownSeconds float64 `json:"cooldown_seconds"`
	CaptureWidth    int     `json:"capture_width"`
	CaptureHeight   int     `json:"capture_height"`
}

// Config is the full application configuration, persisted as JSON.
type Config struct {
	API       API       `json:"api"`
	Hotkeys   Hotkeys   `json:"hotkeys"`
	Overlay   Overlay   `json:"overlay"`
	Detection Detection `json:"detection"`

	path string
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		API: API{
			Key:             "YOUR_API_KEY_HERE",
			URL:             "https://api.tarkov-market.app/api/v1",
			RefreshInterval: 300,
		},
		Hotkeys: Hotkeys{
			ToggleDetection: "f9",
			ToggleOverlay:   "f10",
		},
		Overlay: Overlay{
			Opacity: 0.95,
			Width:   250,
			Height:  150,
		},
		Detection: Detection{
			ActiveOnStart:   true,
			CooldownSeconds: 0.5,
			CaptureWidth:    600,
			CaptureHeight:   400,
		},
	}
}

// Dir returns the per-user configuration directory, creating it if needed.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	dir := filepath.Join(configDir, "eft-overlay")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads the configuration from dir/config.json, falling back to
// defaults for anything missing. A .env file or the environment may
// override the API key so the credential never has to live on disk.
func Load(dir string) (*Config, error) {
	cfg := Default()
	cfg.path = filepath.Join(dir, configFile)

	data, err := os.ReadFile(cfg.path)
	switch {
	case os.IsNotExist(err):
		// First run: write the defaults so the user has a file to edit.
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Attempt to load .env file (ignore error if not found)
	_ = godotenv.Load()
	if key := os.Getenv(APIKeyEnv); key != "" {
		cfg.API.Key = key
	}

	return cfg, nil
}

// Save writes the configuration back to its file.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

// RefreshInterval returns the catalog refresh interval as a duration.
func (c *Config) RefreshInterval() time.Duration {
	if c.API.RefreshInterval <= 0 {
		return 300 * time.Second
	}
	return time.Duration(c.API.RefreshInterval) * time.Second
}

// Cooldown returns the detection cooldown as a duration.
func (c *Config) Cooldown() time.Duration {
	if c.Detection.CooldownSeconds <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.Detection.CooldownSeconds * float64(time.Second))
}

// MaskedAPIKey returns the API key with most characters hidden for logging.
func (c *Config) MaskedAPIKey() string {
	return maskSecret(c.API.Key)
}

// maskSecret hides all but the first and last 4 characters of a secret.
func maskSecret(s string) string {
	if len(s) <= 8 {
		if len(s) == 0 {
			return "(not set)"
		}
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}
