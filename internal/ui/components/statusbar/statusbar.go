// Package statusbar provides the status bar UI component.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/keys"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/styles"
)

// Model is the status bar component.
type Model struct {
	width   int
	brand   string
	message string
	isError bool
	keyMap  keys.KeyMap
	state   model.SessionState
	pending int
}

// New creates a new status bar component.
func New(brand string) Model {
	return Model{
		brand:  brand,
		keyMap: keys.DefaultKeyMap(),
		state:  model.SessionStateIdle,
	}
}

// SetWidth updates the status bar width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetMessage sets a temporary message.
func (m *Model) SetMessage(msg string, isError bool) {
	m.message = msg
	m.isError = isError
}

// ClearMessage clears the temporary message.
func (m *Model) ClearMessage() {
	m.message = ""
	m.isError = false
}

// SetState updates the session state indicator.
func (m *Model) SetState(state model.SessionState) {
	m.state = state
}

// SetPending updates the pre-connect queue indicator.
func (m *Model) SetPending(n int) {
	m.pending = n
}

// View renders the status bar.
func (m Model) View() string {
	brand := styles.StatusBarBrand.Render(" " + m.brand + " ")

	stateBadge := lipgloss.NewStyle().
		Foreground(styles.Base).
		Background(styles.StateColor(m.state)).
		Bold(true).
		Padding(0, 1).
		Render(strings.ToUpper(string(m.state)))

	pendingInfo := ""
	if m.pending > 0 {
		pendingInfo = lipgloss.NewStyle().
			Foreground(styles.Warning).
			Render(fmt.Sprintf(" ● %d queued ", m.pending))
	}

	helpItems := []string{}
	for _, b := range m.keyMap.ShortHelp() {
		h := b.Help()
		helpItems = append(helpItems, m.renderKey(h.Key, h.Desc))
	}
	help := strings.Join(helpItems, " ")

	var msgArea string
	if m.message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		if m.isError {
			msgStyle = lipgloss.NewStyle().Foreground(styles.Danger).Bold(true)
		}
		msgArea = msgStyle.Render(" " + styles.TruncateWithEllipsis(m.message, 60) + " ")
	}

	leftContent := brand + styles.RenderStateDot(m.state) + " " + stateBadge + pendingInfo
	rightContent := help
	middleContent := msgArea

	leftWidth := lipgloss.Width(leftContent)
	rightWidth := lipgloss.Width(rightContent)
	middleWidth := lipgloss.Width(middleContent)

	totalUsed := leftWidth + rightWidth + middleWidth
	padding := m.width - totalUsed
	if padding < 0 {
		padding = 0
	}
	leftPad := padding / 2
	rightPad := padding - leftPad

	content := leftContent +
		strings.Repeat(" ", leftPad) +
		middleContent +
		strings.Repeat(" ", rightPad) +
		rightContent

	return lipgloss.NewStyle().
		Background(styles.Mantle).
		Foreground(styles.TextMuted).
		Width(m.width).
		Render(content)
}

// renderKey renders a key binding hint.
func (m Model) renderKey(key, desc string) string {
	return styles.StatusBarKey.Render(key) + styles.StatusBarDesc.Render(":"+desc)
}
