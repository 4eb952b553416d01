// Package model defines core data structures for Ember.
package model

// SessionState represents the state of a conversation session.
type SessionState string

const (
	// SessionStateIdle indicates no session has been started yet.
	SessionStateIdle SessionState = "idle"
	// SessionStateConnecting indicates the handshake is in flight.
	SessionStateConnecting SessionState = "connecting"
	// SessionStateReady indicates the agent greeted and accepts input.
	SessionStateReady SessionState = "ready"
	// SessionStateReconnecting indicates the transport dropped and is
	// being re-established.
	SessionStateReconnecting SessionState = "reconnecting"
	// SessionStateClosed indicates the session ended cleanly.
	SessionStateClosed SessionState = "closed"
	// SessionStateError indicates the session failed.
	SessionStateError SessionState = "error"
)

// Role identifies the author of a transcript message.
type Role string

const (
	// RoleUser marks messages typed by the customer.
	RoleUser Role = "user"
	// RoleAgent marks messages spoken by the barista agent.
	RoleAgent Role = "agent"
	// RoleSystem marks status lines injected by the client itself.
	RoleSystem Role = "system"
)

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	// Desktop enables desktop notifications via system APIs.
	Desktop bool `json:"desktop"`
	// WebhookURL is the optional URL to send webhook notifications.
	WebhookURL string `json:"webhook_url,omitempty"`
	// WebhookHeaders are extra headers as "Key=Value" pairs separated
	// by commas, semicolons, or newlines.
	WebhookHeaders string `json:"webhook_headers,omitempty"`
}
