// Ember - a coffee shop ordering assistant for the terminal.
// The TUI talks to a running emberd for configuration and the
// barista session; without one it falls back to built-in branding
// and keeps retrying the session endpoint.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/app"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/appconfig"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/client"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/notify"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/pkg/utils"
)

// fetchTimeout bounds the pre-launch HTTP calls; the TUI starts with
// defaults rather than wait on a slow or absent service.
const fetchTimeout = 3 * time.Second

func main() {
	configDir := app.DefaultConfigDir()
	cfg, err := app.LoadConfig(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	serverURL := utils.EnvOrDefault("EMBER_SERVER_URL", cfg.ServerURL)

	shop := cfg.OverlayAppConfig(fetchShopConfig(serverURL))
	eff := appconfig.Resolve(shop)

	cl := client.New(client.Config{
		URL:              fetchSessionURL(serverURL, eff),
		SandboxID:        eff.SandboxID,
		AgentName:        requestedAgent(eff),
		PreConnectBuffer: eff.IsPreConnectBufferEnabled,
	})
	defer cl.Close()

	application := ui.New(ui.Config{
		Effective:     eff,
		Client:        cl,
		Notifier:      notify.NewDispatcher(),
		Notifications: cfg.Notifications,
		OrdersDir:     cfg.OrdersDir,
	})

	p := tea.NewProgram(
		application,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// fetchShopConfig asks the service for the shop configuration, falling
// back to the built-in defaults when it cannot answer.
func fetchShopConfig(serverURL string) appconfig.AppConfig {
	httpc := &http.Client{Timeout: fetchTimeout}
	resp, err := httpc.Get(strings.TrimRight(serverURL, "/") + "/v1/config")
	if err != nil {
		return appconfig.Default()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return appconfig.Default()
	}
	var shop appconfig.AppConfig
	if err := json.NewDecoder(resp.Body).Decode(&shop); err != nil {
		return appconfig.Default()
	}
	return shop
}

// fetchSessionURL asks the service where to open the session socket,
// deriving the address locally when the call fails.
func fetchSessionURL(serverURL string, eff appconfig.Effective) string {
	payload, _ := json.Marshal(map[string]string{
		"sandbox_id": eff.SandboxID,
		"agent_name": requestedAgent(eff),
	})

	httpc := &http.Client{Timeout: fetchTimeout}
	resp, err := httpc.Post(
		strings.TrimRight(serverURL, "/")+"/v1/connection-details",
		"application/json",
		bytes.NewReader(payload),
	)
	if err == nil {
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			var details struct {
				WSURL string `json:"ws_url"`
			}
			if json.NewDecoder(resp.Body).Decode(&details) == nil && details.WSURL != "" {
				return details.WSURL
			}
		}
	}
	return derivedSessionURL(serverURL)
}

// derivedSessionURL maps the HTTP base to its WebSocket endpoint.
func derivedSessionURL(serverURL string) string {
	base := strings.TrimRight(serverURL, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/v1/session"
}

// requestedAgent names the persona in the hello frame only when one was
// actually configured; empty lets the service pick its default.
func requestedAgent(eff appconfig.Effective) string {
	if eff.AgentNameConfigured {
		return eff.AgentName
	}
	return ""
}
