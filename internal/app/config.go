// Package app provides the ember front-end's local settings.
package app

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/appconfig"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/pkg/utils"
)

// Config holds the front-end's own settings, separate from the shop
// configuration the service hands out.
type Config struct {
	// ServerURL is the emberd base URL the front-end talks to.
	ServerURL string `json:"server_url"`
	// OrdersDir, when set, lets the status line show the full path of
	// saved receipts from a locally running service.
	OrdersDir string `json:"orders_dir,omitempty"`
	// AgentName overrides the persona requested at connect.
	AgentName string `json:"agent_name,omitempty"`
	// SandboxID tags the session for sandboxed deployments.
	SandboxID string `json:"sandbox_id,omitempty"`
	// Theme is the color theme (only catppuccin-mocha ships today).
	Theme string `json:"theme"`
	// Accent and AccentDark override the shop's brand colors.
	Accent     string `json:"accent,omitempty"`
	AccentDark string `json:"accent_dark,omitempty"`
	// Notifications configures order-ready announcements.
	Notifications model.NotificationConfig `json:"notifications"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerURL: "http://127.0.0.1:8080",
		Theme:     "catppuccin-mocha",
		Notifications: model.NotificationConfig{
			Desktop: true,
		},
	}
}

// DefaultConfigDir returns the ember config directory, honoring
// XDG_CONFIG_HOME.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ember")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ember")
}

// ConfigPath returns the path to the config file.
func ConfigPath(configDir string) string {
	return filepath.Join(configDir, "config.json")
}

// LoadConfig loads the configuration from disk, falling back to
// defaults when no file exists yet.
func LoadConfig(configDir string) (*Config, error) {
	path := ConfigPath(configDir)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}
	if config.OrdersDir != "" {
		config.OrdersDir = utils.ExpandPath(config.OrdersDir)
	}

	return config, nil
}

// SaveConfig saves the configuration to disk.
func SaveConfig(configDir string, config *Config) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(configDir), data, 0644)
}

// OverlayAppConfig applies the user's optional overrides on top of the
// shop configuration. Empty overrides leave base fields untouched, so
// unset optionals stay absent.
func (c *Config) OverlayAppConfig(base appconfig.AppConfig) appconfig.AppConfig {
	if c.Accent != "" {
		base.Accent = appconfig.String(c.Accent)
	}
	if c.AccentDark != "" {
		base.AccentDark = appconfig.String(c.AccentDark)
	}
	if c.AgentName != "" {
		base.AgentName = appconfig.String(c.AgentName)
	}
	if c.SandboxID != "" {
		base.SandboxID = appconfig.String(c.SandboxID)
	}
	return base
}
