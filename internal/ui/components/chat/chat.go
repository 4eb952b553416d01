// Package chat renders the live ordering session: the conversation
// transcript, the running order summary, and the message composer.
package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/appconfig"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/keys"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/styles"
)

const (
	// sidebarWidth is the total width of the order panel, border included.
	sidebarWidth = 28
	// scrollStep is how many transcript lines one scroll key moves.
	scrollStep = 4
	// tickInterval paces the connection spinner.
	tickInterval = 150 * time.Millisecond

	composerCharLimit = 256
)

// OrderView is the sidebar's snapshot of the order being assembled.
type OrderView struct {
	DrinkType string
	Size      string
	Milk      string
	Name      string
	Extras    []string
	Missing   []string
}

// SubmitMsg is emitted when the user submits the composer.
type SubmitMsg struct {
	Text string
}

// tickMsg drives the connection spinner.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the session screen component.
type Model struct {
	eff   appconfig.Effective
	theme styles.Theme
	keys  keys.KeyMap

	input      textinput.Model
	transcript []model.Message
	order      OrderView
	state      model.SessionState
	pending    int

	width  int
	height int
	// scroll counts lines above the bottom of the transcript; zero means
	// pinned to the latest message.
	scroll int

	spinnerIdx int
}

// New creates the session screen for the given shop configuration.
func New(eff appconfig.Effective, theme styles.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Tell Ember what you're craving..."
	ti.CharLimit = composerCharLimit
	ti.Prompt = "> "
	if eff.SupportsChatInput {
		ti.Focus()
	}

	return Model{
		eff:   eff,
		theme: theme,
		keys:  keys.DefaultKeyMap(),
		input: ti,
		state: model.SessionStateIdle,
	}
}

// Init starts the composer cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// AppendMessage adds a line to the transcript and pins the view to it.
func (m *Model) AppendMessage(msg model.Message) {
	m.transcript = append(m.transcript, msg)
	m.scroll = 0
}

// SetOrder replaces the sidebar's order snapshot.
func (m *Model) SetOrder(order OrderView) {
	m.order = order
}

// SetState updates the connection indicator. Returns a command when the
// spinner needs to start ticking.
func (m *Model) SetState(state model.SessionState) tea.Cmd {
	wasSpinning := m.needsSpin()
	m.state = state
	if m.needsSpin() && !wasSpinning {
		m.spinnerIdx = 0
		return tick()
	}
	return nil
}

// SetPending updates the count of messages queued before the handshake.
func (m *Model) SetPending(n int) {
	m.pending = n
}

// State returns the connection state shown by the component.
func (m Model) State() model.SessionState {
	return m.state
}

// Update handles session screen messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		if !m.needsSpin() {
			return m, nil
		}
		m.spinnerIdx = (m.spinnerIdx + 1) % len(styles.SpinnerFrames)
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Send):
			if !m.eff.SupportsChatInput {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.scroll = 0
			return m, func() tea.Msg { return SubmitMsg{Text: text} }

		case key.Matches(msg, m.keys.ScrollUp):
			m.scroll += scrollStep
			if max := m.maxScroll(); m.scroll > max {
				m.scroll = max
			}
			return m, nil

		case key.Matches(msg, m.keys.ScrollDown):
			m.scroll -= scrollStep
			if m.scroll < 0 {
				m.scroll = 0
			}
			return m, nil
		}
	}

	if !m.eff.SupportsChatInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the session screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Starting session..."
	}

	header := styles.RenderFancyHeader(m.eff.PageTitle, m.width)
	bodyH := m.bodyHeight()
	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTranscript(m.transcriptWidth(), bodyH),
		m.renderSidebar(bodyH),
	)

	parts := []string{header, body}
	if line := m.statusLine(); line != "" {
		parts = append(parts, line)
	}
	parts = append(parts, m.renderComposer())

	return strings.Join(parts, "\n")
}

func (m Model) needsSpin() bool {
	return m.state == model.SessionStateConnecting || m.state == model.SessionStateReconnecting
}

// bodyHeight is the vertical space left for the transcript and sidebar
// once the header, status line, and composer have claimed their rows.
func (m Model) bodyHeight() int {
	h := m.height - 1
	if m.statusLine() != "" {
		h--
	}
	if m.eff.SupportsChatInput {
		h -= 3
	} else {
		h--
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) transcriptWidth() int {
	w := m.width - sidebarWidth
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) maxScroll() int {
	lines := len(m.transcriptLines(m.transcriptWidth() - 4))
	visible := m.bodyHeight() - 2
	if visible < 1 {
		visible = 1
	}
	max := lines - visible
	if max < 0 {
		max = 0
	}
	return max
}

// transcriptLines renders the full transcript as wrapped terminal lines.
// Continuation lines are indented under their speaker label.
func (m Model) transcriptLines(textWidth int) []string {
	if len(m.transcript) == 0 {
		return []string{styles.TranscriptDim.Render("The barista is getting ready...")}
	}

	var lines []string
	for _, msg := range m.transcript {
		label := msg.Speaker()
		var labelStyle lipgloss.Style
		switch msg.Role {
		case model.RoleUser:
			labelStyle = styles.SpeakerUser
		case model.RoleAgent:
			labelStyle = styles.SpeakerAgent
		default:
			labelStyle = styles.SpeakerSystem
		}

		indent := lipgloss.Width(label) + 1
		wrapWidth := textWidth - indent
		if wrapWidth < 10 {
			wrapWidth = 10
		}

		wrapped := strings.Split(ansi.Wrap(msg.Text, wrapWidth, ""), "\n")
		for i, line := range wrapped {
			if i == 0 {
				lines = append(lines, labelStyle.Render(label)+" "+styles.TranscriptText.Render(line))
			} else {
				lines = append(lines, strings.Repeat(" ", indent)+styles.TranscriptText.Render(line))
			}
		}
	}
	return lines
}

func (m Model) renderTranscript(paneWidth, paneHeight int) string {
	textWidth := paneWidth - 4
	lines := m.transcriptLines(textWidth)

	visible := paneHeight - 2
	if visible < 1 {
		visible = 1
	}

	scroll := m.scroll
	if max := len(lines) - visible; scroll > max {
		scroll = max
	}
	if scroll < 0 {
		scroll = 0
	}

	start := len(lines) - visible - scroll
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}

	content := strings.Join(lines[start:end], "\n")
	if scroll > 0 {
		content += "\n" + styles.TranscriptDim.Render(fmt.Sprintf("↓ %d more", scroll))
	}

	return styles.BorderStyle.
		Width(paneWidth-2).
		Height(visible).
		Padding(0, 1).
		Render(content)
}

func (m Model) renderSidebar(paneHeight int) string {
	innerW := sidebarWidth - 4

	rows := []string{styles.PanelTitle.Render("Your Order"), ""}
	rows = append(rows,
		m.orderRow("Drink", m.order.DrinkType, innerW),
		m.orderRow("Size", m.order.Size, innerW),
		m.orderRow("Milk", m.order.Milk, innerW),
	)
	if len(m.order.Extras) > 0 {
		rows = append(rows, m.orderRow("Extras", strings.Join(m.order.Extras, ", "), innerW))
	}
	rows = append(rows, m.orderRow("Name", m.order.Name, innerW))

	if len(m.order.Missing) > 0 {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(styles.Warning).Render("Still needed:"))
		for _, miss := range m.order.Missing {
			rows = append(rows, styles.TranscriptDim.Render("  • "+miss))
		}
	} else if m.order.DrinkType != "" {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(styles.Success).Render("Order complete ✓"))
	}

	var offline []string
	if m.eff.SupportsVideoInput {
		offline = append(offline, "camera")
	}
	if m.eff.SupportsScreenShare {
		offline = append(offline, "screen share")
	}
	if len(offline) > 0 {
		rows = append(rows, "",
			styles.TranscriptDim.Render(strings.Join(offline, " & ")+" unavailable in a terminal"))
	}

	return styles.BorderStyle.
		Width(sidebarWidth-2).
		Height(paneHeight-2).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}

func (m Model) orderRow(label, value string, width int) string {
	if value == "" {
		value = "·"
	}
	avail := width - len(label) - 2
	if avail < 4 {
		avail = 4
	}
	return styles.TranscriptDim.Render(label+": ") +
		styles.TranscriptText.Render(styles.TruncateWithEllipsis(value, avail))
}

// statusLine reports connection progress and the pre-connect queue.
// Empty when the session is healthy and nothing is queued.
func (m Model) statusLine() string {
	switch {
	case m.needsSpin():
		frame := styles.SpinnerFrames[m.spinnerIdx]
		label := "Connecting to the counter..."
		if m.state == model.SessionStateReconnecting {
			label = "Connection lost, reconnecting..."
		}
		line := lipgloss.NewStyle().
			Foreground(styles.StateColor(m.state)).
			Render(frame + " " + label)
		if m.pending > 0 {
			line += styles.TranscriptDim.Render(fmt.Sprintf("  (%d queued)", m.pending))
		}
		return line
	case m.pending > 0:
		return lipgloss.NewStyle().
			Foreground(styles.Warning).
			Render(fmt.Sprintf("● %d queued, will send once the barista is ready", m.pending))
	}
	return ""
}

func (m Model) renderComposer() string {
	if !m.eff.SupportsChatInput {
		return styles.TranscriptDim.Render(" Chat input is disabled for this shop.")
	}

	var borderColor lipgloss.TerminalColor = styles.Border
	if m.state == model.SessionStateReady {
		borderColor = m.theme.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(m.width - 2).
		Render(m.input.View())
}
