package appconfig

// Fallbacks applied by Resolve when an optional field is absent. Kept as
// named constants so callers and tests agree on what "unconfigured"
// resolves to.
const (
	// DefaultAccent is the light-theme accent used when none is set.
	DefaultAccent = "#8839ef"
	// DefaultAccentDark is the dark-theme accent used when neither
	// AccentDark nor Accent is set.
	DefaultAccentDark = "#cba6f7"
	// DefaultAgentName is the persona dispatched when none is named.
	DefaultAgentName = "ember-barista"
)

// Effective is the fully resolved configuration: every field concrete,
// with provenance flags recording which optionals were actually
// configured rather than defaulted.
type Effective struct {
	PageTitle                 string
	PageDescription           string
	CompanyName               string
	SupportsChatInput         bool
	SupportsVideoInput        bool
	SupportsScreenShare       bool
	IsPreConnectBufferEnabled bool
	StartButtonText           string

	// Logo and LogoDark are both concrete; LogoDark falls back to Logo.
	Logo     string
	LogoDark string

	// Accent and AccentDark are both concrete hex colors.
	Accent     string
	AccentDark string

	// AgentName is never empty after resolution.
	AgentName string

	// SandboxID is empty when no sandbox was configured.
	SandboxID string

	AccentConfigured     bool
	AccentDarkConfigured bool
	LogoDarkConfigured   bool
	SandboxConfigured    bool
	AgentNameConfigured  bool
}

// Resolve applies the fallback rules to a raw config:
//
//   - accent:     absent -> DefaultAccent
//   - accentDark: absent -> accent's resolved value when accent was
//     configured, otherwise DefaultAccentDark
//   - logoDark:   absent -> logo
//   - agentName:  absent -> DefaultAgentName
//   - sandboxId:  absent -> "" (no sandbox)
//
// Resolve never fails; a zero AppConfig resolves to a usable Effective.
func Resolve(cfg AppConfig) Effective {
	eff := Effective{
		PageTitle:                 cfg.PageTitle,
		PageDescription:           cfg.PageDescription,
		CompanyName:               cfg.CompanyName,
		SupportsChatInput:         cfg.SupportsChatInput,
		SupportsVideoInput:        cfg.SupportsVideoInput,
		SupportsScreenShare:       cfg.SupportsScreenShare,
		IsPreConnectBufferEnabled: cfg.IsPreConnectBufferEnabled,
		StartButtonText:           cfg.StartButtonText,
		Logo:                      cfg.Logo,
	}

	if cfg.Accent != nil {
		eff.Accent = *cfg.Accent
		eff.AccentConfigured = true
	} else {
		eff.Accent = DefaultAccent
	}

	switch {
	case cfg.AccentDark != nil:
		eff.AccentDark = *cfg.AccentDark
		eff.AccentDarkConfigured = true
	case eff.AccentConfigured:
		eff.AccentDark = eff.Accent
	default:
		eff.AccentDark = DefaultAccentDark
	}

	if cfg.LogoDark != nil {
		eff.LogoDark = *cfg.LogoDark
		eff.LogoDarkConfigured = true
	} else {
		eff.LogoDark = cfg.Logo
	}

	if cfg.AgentName != nil {
		eff.AgentName = *cfg.AgentName
		eff.AgentNameConfigured = true
	} else {
		eff.AgentName = DefaultAgentName
	}

	if cfg.SandboxID != nil {
		eff.SandboxID = *cfg.SandboxID
		eff.SandboxConfigured = true
	}

	return eff
}
