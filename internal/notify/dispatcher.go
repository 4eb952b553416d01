// Package notify pushes order events to the desktop and to webhooks.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/pkg/utils"
)

// EventType represents a notification event type.
type EventType string

const (
	// EventOrderReady fires when a receipt arrives for a completed order.
	EventOrderReady EventType = "order_ready"
	// EventSessionLost fires when the session drops for good.
	EventSessionLost EventType = "session_lost"
	// EventError covers everything that went wrong.
	EventError EventType = "error"
)

// maxMessageLen caps notification bodies; webhooks and desktop bubbles
// both choke on essays.
const maxMessageLen = 800

// Event describes a notification event.
type Event struct {
	OrderID   string
	Type      EventType
	Title     string
	Message   string
	Timestamp time.Time
}

// Dispatcher sends notifications to configured channels.
type Dispatcher struct {
	client *http.Client
}

// NewDispatcher creates a Dispatcher with sensible defaults.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Dispatch sends a notification event using the given config. Delivery
// is best effort; a dead webhook must never break an order.
func (d *Dispatcher) Dispatch(ctx context.Context, cfg model.NotificationConfig, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	title := strings.TrimSpace(event.Title)
	if title == "" {
		title = "Ember Coffee"
	}
	message := strings.TrimSpace(event.Message)
	if message == "" {
		message = string(event.Type)
	}
	if len(message) > maxMessageLen {
		message = message[:maxMessageLen] + "..."
	}

	if cfg.Desktop {
		_ = beeep.Notify(title, message, "")
	}

	if cfg.WebhookURL != "" {
		d.postWebhook(ctx, cfg, event, title, message)
	}
}

func (d *Dispatcher) postWebhook(ctx context.Context, cfg model.NotificationConfig, event Event, title, message string) {
	payload := map[string]any{
		"event":     event.Type,
		"orderId":   event.OrderID,
		"title":     title,
		"message":   message,
		"timestamp": event.Timestamp.Unix(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if headers, err := utils.ParseKeyValues(cfg.WebhookHeaders); err == nil {
		for k, v := range headers {
			req.Header.Set(k, v)
		}
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
