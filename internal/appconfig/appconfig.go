// Package appconfig defines the front-end configuration contract: the raw
// branding and capability record plus the resolver that turns it into
// concrete, fallback-applied values.
package appconfig

// AppConfig describes product identity and which input modalities are
// enabled. It is built once at startup and never mutated afterwards;
// consumers receive it by value. Optional fields are pointers so that
// "not configured" stays distinguishable from "configured as empty".
type AppConfig struct {
	// PageTitle is set as the terminal window title.
	PageTitle string `json:"page_title"`
	// PageDescription is the descriptive copy on the welcome screen.
	PageDescription string `json:"page_description"`
	// CompanyName is the brand name shown in the UI.
	CompanyName string `json:"company_name"`
	// SupportsChatInput enables the text composer in a session.
	SupportsChatInput bool `json:"supports_chat_input"`
	// SupportsVideoInput enables the camera capability.
	SupportsVideoInput bool `json:"supports_video_input"`
	// SupportsScreenShare enables the screen share capability.
	SupportsScreenShare bool `json:"supports_screen_share"`
	// IsPreConnectBufferEnabled buffers input composed before the
	// session handshake finishes instead of rejecting it.
	IsPreConnectBufferEnabled bool `json:"is_pre_connect_buffer_enabled"`
	// Logo is the path to the light-theme brand art asset.
	Logo string `json:"logo"`
	// StartButtonText is the label on the primary call-to-action.
	StartButtonText string `json:"start_button_text"`
	// Accent is the light-theme accent color (hex), if configured.
	Accent *string `json:"accent,omitempty"`
	// LogoDark is the dark-theme brand art asset, if configured.
	LogoDark *string `json:"logo_dark,omitempty"`
	// AccentDark is the dark-theme accent color, if configured.
	AccentDark *string `json:"accent_dark,omitempty"`
	// SandboxID identifies an external sandbox, if configured.
	SandboxID *string `json:"sandbox_id,omitempty"`
	// AgentName names the agent persona to dispatch, if configured.
	AgentName *string `json:"agent_name,omitempty"`
}

// Default returns the built-in configuration. Every required field is
// populated; every optional field is left absent.
func Default() AppConfig {
	return AppConfig{
		PageTitle:                 "Ember Coffee",
		PageDescription:           "Your friendly neighborhood barista. Tell Ember what you're craving and pick it up at the counter.",
		CompanyName:               "Ember Coffee Shop",
		SupportsChatInput:         true,
		SupportsVideoInput:        false,
		SupportsScreenShare:       false,
		IsPreConnectBufferEnabled: true,
		Logo:                      "assets/logo.txt",
		StartButtonText:           "Order with Ember",
	}
}

// String is a convenience for building optional field values in place.
func String(s string) *string {
	return &s
}
