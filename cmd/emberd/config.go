package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/appconfig"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/pkg/utils"
)

// Config carries the daemon's resolved settings.
type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string
	// OrdersDir is where order receipts are written.
	OrdersDir string
	// AdvertiseURL, when set, is the WebSocket URL handed to clients.
	// Empty derives it from each request's host.
	AdvertiseURL string
	// MaxSessions caps concurrent sessions. Zero means the manager's
	// built-in limit.
	MaxSessions int
	// Verbose enables debug logging.
	Verbose bool
	// Shop is the front-end configuration served on /v1/config.
	Shop appconfig.AppConfig
}

// parseConfig resolves the daemon configuration.
// Priority: config file > flags > environment > built-in defaults.
func parseConfig() (*Config, error) {
	addr := flag.String("addr", utils.EnvOrDefault("EMBERD_ADDR", ":8080"), "HTTP listen address (e.g., :8080)")
	orders := flag.String("orders", utils.EnvOrDefault("EMBERD_ORDERS_DIR", "orders"), "Directory order receipts are written to")
	advertise := flag.String("advertise-url", utils.EnvOrDefault("EMBERD_ADVERTISE_URL", ""), "WebSocket URL handed to clients (empty derives it per request)")
	maxSessions := flag.Int("max-sessions", envIntDefault("EMBERD_MAX_SESSIONS", 0), "Concurrent session cap (0 uses the built-in limit)")
	verbose := flag.Bool("verbose", envBoolDefault("EMBERD_VERBOSE", false), "Enable debug logging")
	file := flag.String("config", utils.EnvOrDefault("EMBERD_CONFIG", ""), "Optional YAML config file")

	// Single parse; nothing else registers flags.
	flag.Parse()

	cfg := &Config{
		ListenAddr:   *addr,
		OrdersDir:    *orders,
		AdvertiseURL: *advertise,
		MaxSessions:  *maxSessions,
		Verbose:      *verbose,
		Shop:         appconfig.Default(),
	}

	if *file != "" {
		overlay, err := loadOverlay(*file)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", *file, err)
		}
		overlay.apply(cfg)
	}

	// Receipts may be pointed at a home-relative directory.
	cfg.OrdersDir = utils.ExpandPath(cfg.OrdersDir)
	return cfg, nil
}

// fileConfig mirrors the YAML config file. Every field is a pointer so
// omitted keys leave the flag values alone.
type fileConfig struct {
	ListenAddr   *string     `yaml:"listen_addr"`
	OrdersDir    *string     `yaml:"orders_dir"`
	AdvertiseURL *string     `yaml:"advertise_url"`
	MaxSessions  *int        `yaml:"max_sessions"`
	Verbose      *bool       `yaml:"verbose"`
	Shop         *shopConfig `yaml:"shop"`
}

// shopConfig overrides pieces of the served front-end configuration.
type shopConfig struct {
	PageTitle         *string `yaml:"page_title"`
	PageDescription   *string `yaml:"page_description"`
	CompanyName       *string `yaml:"company_name"`
	StartButtonText   *string `yaml:"start_button_text"`
	Logo              *string `yaml:"logo"`
	LogoDark          *string `yaml:"logo_dark"`
	Accent            *string `yaml:"accent"`
	AccentDark        *string `yaml:"accent_dark"`
	AgentName         *string `yaml:"agent_name"`
	SandboxID         *string `yaml:"sandbox_id"`
	SupportsChatInput *bool   `yaml:"supports_chat_input"`
	SupportsVideo     *bool   `yaml:"supports_video_input"`
	SupportsScreen    *bool   `yaml:"supports_screen_share"`
	PreConnectBuffer  *bool   `yaml:"pre_connect_buffer"`
}

func loadOverlay(path string) (*fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var overlay fileConfig
	if err := decodeStrict(f, &overlay); err != nil {
		return nil, err
	}
	return &overlay, nil
}

// decodeStrict decodes YAML and rejects unknown keys. An empty
// document is not an error.
func decodeStrict(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (f *fileConfig) apply(c *Config) {
	if f.ListenAddr != nil {
		c.ListenAddr = *f.ListenAddr
	}
	if f.OrdersDir != nil {
		c.OrdersDir = *f.OrdersDir
	}
	if f.AdvertiseURL != nil {
		c.AdvertiseURL = *f.AdvertiseURL
	}
	if f.MaxSessions != nil {
		c.MaxSessions = *f.MaxSessions
	}
	if f.Verbose != nil {
		c.Verbose = *f.Verbose
	}
	if f.Shop != nil {
		f.Shop.apply(&c.Shop)
	}
}

func (s *shopConfig) apply(shop *appconfig.AppConfig) {
	if s.PageTitle != nil {
		shop.PageTitle = *s.PageTitle
	}
	if s.PageDescription != nil {
		shop.PageDescription = *s.PageDescription
	}
	if s.CompanyName != nil {
		shop.CompanyName = *s.CompanyName
	}
	if s.StartButtonText != nil {
		shop.StartButtonText = *s.StartButtonText
	}
	if s.Logo != nil {
		shop.Logo = *s.Logo
	}
	if s.LogoDark != nil {
		shop.LogoDark = appconfig.String(*s.LogoDark)
	}
	if s.Accent != nil {
		shop.Accent = appconfig.String(*s.Accent)
	}
	if s.AccentDark != nil {
		shop.AccentDark = appconfig.String(*s.AccentDark)
	}
	if s.AgentName != nil {
		shop.AgentName = appconfig.String(*s.AgentName)
	}
	if s.SandboxID != nil {
		shop.SandboxID = appconfig.String(*s.SandboxID)
	}
	if s.SupportsChatInput != nil {
		shop.SupportsChatInput = *s.SupportsChatInput
	}
	if s.SupportsVideo != nil {
		shop.SupportsVideoInput = *s.SupportsVideo
	}
	if s.SupportsScreen != nil {
		shop.SupportsScreenShare = *s.SupportsScreen
	}
	if s.PreConnectBuffer != nil {
		shop.IsPreConnectBufferEnabled = *s.PreConnectBuffer
	}
}

func envBoolDefault(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return def
	}
}

func envIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
