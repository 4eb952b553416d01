// Package styles defines the visual appearance for the Ember TUI.
// Using Catppuccin Mocha color palette for a modern, aesthetic look.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/appconfig"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
)

// Catppuccin Mocha color palette
var (
	// Base colors
	Rosewater = lipgloss.Color("#F5E0DC")
	Flamingo  = lipgloss.Color("#F2CDCD")
	Pink      = lipgloss.Color("#F5C2E7")
	Mauve     = lipgloss.Color("#CBA6F7")
	Red       = lipgloss.Color("#F38BA8")
	Maroon    = lipgloss.Color("#EBA0AC")
	Peach     = lipgloss.Color("#FAB387")
	Yellow    = lipgloss.Color("#F9E2AF")
	Green     = lipgloss.Color("#A6E3A1")
	Teal      = lipgloss.Color("#94E2D5")
	Sky       = lipgloss.Color("#89DCEB")
	Sapphire  = lipgloss.Color("#74C7EC")
	Blue      = lipgloss.Color("#89B4FA")
	Lavender  = lipgloss.Color("#B4BEFE")

	// Surface colors
	Text     = lipgloss.Color("#CDD6F4")
	Subtext1 = lipgloss.Color("#BAC2DE")
	Subtext0 = lipgloss.Color("#A6ADC8")
	Overlay2 = lipgloss.Color("#9399B2")
	Overlay1 = lipgloss.Color("#7F849C")
	Overlay0 = lipgloss.Color("#6C7086")
	Surface2 = lipgloss.Color("#585B70")
	Surface1 = lipgloss.Color("#45475A")
	Surface0 = lipgloss.Color("#313244")
	Base     = lipgloss.Color("#1E1E2E")
	Mantle   = lipgloss.Color("#181825")
	Crust    = lipgloss.Color("#11111B")
)

// Semantic colors (using the palette)
var (
	Primary    = Mauve
	Secondary  = Green
	Danger     = Red
	Warning    = Peach
	Success    = Green
	Info       = Blue
	Muted      = Overlay0
	TextCol    = Text
	TextMuted  = Subtext0
	Border     = Surface1
	SurfaceCol = Surface0
)

// Session state colors
var (
	StateReady        = Green
	StateConnecting   = Yellow
	StateReconnecting = Peach
	StateErrorCol     = Red
	StateIdle         = Overlay0
)

// Base styles
var (
	// BorderStyle for panels
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border)

	// PanelTitle for panel headers
	PanelTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextCol).
			Padding(0, 1)
)

// StatusBar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Background(Mantle).
			Padding(0, 1)

	StatusBarKey = lipgloss.NewStyle().
			Foreground(Sapphire).
			Bold(true)

	StatusBarDesc = lipgloss.NewStyle().
			Foreground(TextMuted)

	StatusBarSeparator = lipgloss.NewStyle().
				Foreground(Overlay0).
				SetString(" │ ")

	StatusBarBrand = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// Transcript styles
var (
	SpeakerUser = lipgloss.NewStyle().
			Foreground(Sapphire).
			Bold(true)

	SpeakerAgent = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	SpeakerSystem = lipgloss.NewStyle().
			Foreground(Overlay1).
			Italic(true)

	TranscriptText = lipgloss.NewStyle().
			Foreground(TextCol)

	TranscriptDim = lipgloss.NewStyle().
			Foreground(TextMuted).
			Italic(true)
)

// Theme bundles the styles that depend on the shop's brand colors.
// Built once from the effective configuration; everything else in this
// package is palette-static.
type Theme struct {
	// Accent adapts to the terminal background: the configured accent
	// on light terminals, the dark-mode accent on dark ones.
	Accent lipgloss.AdaptiveColor

	Headline  lipgloss.Style
	Paragraph lipgloss.Style
	Brand     lipgloss.Style
	Button    lipgloss.Style
	Hint      lipgloss.Style
}

// NewTheme derives accent styles from the effective configuration.
func NewTheme(eff appconfig.Effective) Theme {
	accent := lipgloss.AdaptiveColor{Light: eff.Accent, Dark: eff.AccentDark}
	return Theme{
		Accent: accent,
		Headline: lipgloss.NewStyle().
			Bold(true).
			Foreground(TextCol),
		Paragraph: lipgloss.NewStyle().
			Foreground(TextMuted),
		Brand: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(Crust).
			Background(accent).
			Padding(0, 3),
		Hint: lipgloss.NewStyle().
			Foreground(Overlay1),
	}
}

// StateColor returns the color for a session state.
func StateColor(state model.SessionState) lipgloss.Color {
	switch state {
	case model.SessionStateReady:
		return StateReady
	case model.SessionStateConnecting:
		return StateConnecting
	case model.SessionStateReconnecting:
		return StateReconnecting
	case model.SessionStateError:
		return StateErrorCol
	default:
		return StateIdle
	}
}

// RenderStateDot returns a colored session state indicator.
func RenderStateDot(state model.SessionState) string {
	dot := "●"
	if state == model.SessionStateIdle || state == model.SessionStateClosed {
		dot = "○"
	}
	return lipgloss.NewStyle().Foreground(StateColor(state)).Render(dot)
}

// TruncateWithEllipsis truncates a string to maxLen with ellipsis.
func TruncateWithEllipsis(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// Spinner frames for animated loading
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// RenderFancyHeader draws a decorated one-line header.
func RenderFancyHeader(title string, width int) string {
	left := lipgloss.NewStyle().Foreground(Mauve).Render("╭─")
	right := lipgloss.NewStyle().Foreground(Mauve).Render("─╮")
	titleStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(TextCol).
		Background(Surface0).
		Padding(0, 1).
		Render(title)

	titleWidth := lipgloss.Width(titleStyled)
	fillWidth := width - titleWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if fillWidth < 0 {
		fillWidth = 0
	}
	leftFill := fillWidth / 2
	rightFill := fillWidth - leftFill

	leftLine := lipgloss.NewStyle().Foreground(Surface1).Render(repeatChar("─", leftFill))
	rightLine := lipgloss.NewStyle().Foreground(Surface1).Render(repeatChar("─", rightFill))

	return left + leftLine + titleStyled + rightLine + right
}

// repeatChar repeats a character n times.
func repeatChar(char string, n int) string {
	if n <= 0 {
		return ""
	}
	result := ""
	for i := 0; i < n; i++ {
		result += char
	}
	return result
}
