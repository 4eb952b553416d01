// Package welcome renders the landing screen: brand mark, headline,
// description, and the single start-call action.
package welcome

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/appconfig"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/keys"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/styles"
)

// Ref is an opaque handle to the component's rendered root. Owners
// attach one to observe the last frame and its measured size for
// composition; the component itself never reads it back.
type Ref struct {
	mu     sync.Mutex
	frame  string
	width  int
	height int
}

func (r *Ref) set(frame string, width, height int) {
	r.mu.Lock()
	r.frame = frame
	r.width = width
	r.height = height
	r.mu.Unlock()
}

// Frame returns the most recently rendered frame.
func (r *Ref) Frame() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// Size returns the dimensions of the most recent render.
func (r *Ref) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// Props configures the welcome screen.
type Props struct {
	// StartButtonText labels the primary action. Empty still renders;
	// the button collapses to its padding.
	StartButtonText string
	// OnStartCall runs on every activation, once per activation. Nil
	// makes activation a no-op.
	OnStartCall func()
	// Ref, when set, receives the rendered root after each View.
	Ref *Ref
}

// Model is the welcome screen component.
type Model struct {
	props    Props
	headline string
	para     string
	brand    string
	theme    styles.Theme
	keys     keys.KeyMap
	width    int
	height   int
}

// New builds the welcome screen from the effective configuration.
func New(eff appconfig.Effective, theme styles.Theme, props Props) Model {
	return Model{
		props:    props,
		headline: eff.PageTitle,
		para:     eff.PageDescription,
		brand:    loadBrand(eff, theme),
		theme:    theme,
		keys:     keys.DefaultKeyMap(),
	}
}

// loadBrand reads the logo asset, falling back to the built-in art
// with the styled company name when the file is absent or unreadable.
func loadBrand(eff appconfig.Effective, theme styles.Theme) string {
	if data, err := os.ReadFile(eff.Logo); err == nil {
		if text := strings.TrimRight(string(data), "\n"); text != "" {
			return theme.Brand.Render(text)
		}
	}
	return lipgloss.JoinVertical(
		lipgloss.Center,
		theme.Brand.Render(Art()),
		"",
		theme.Brand.Render(eff.CompanyName),
	)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize sets the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles activation: enter/space, or a click on the action.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Start) {
			m.activate()
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			row, x0, x1 := m.buttonRegion()
			if msg.Y == row && msg.X >= x0 && msg.X <= x1 {
				m.activate()
			}
		}
	}
	return m, nil
}

// activate fires the start callback. Every activation calls it again;
// rapid repeats are the owner's concern, not suppressed here.
func (m Model) activate() {
	if m.props.OnStartCall != nil {
		m.props.OnStartCall()
	}
}

// sections returns the hero's building blocks and the index of the
// action row block.
func (m Model) sections() ([]string, int) {
	paraWidth := 60
	if m.width > 4 && m.width-4 < paraWidth {
		paraWidth = m.width - 4
	}
	para := m.theme.Paragraph.
		Width(paraWidth).
		Align(lipgloss.Center).
		Render(m.para)

	sections := []string{
		m.brand,
		"",
		m.theme.Headline.Render(m.headline),
		para,
		"",
		m.theme.Button.Render(m.props.StartButtonText),
		"",
		m.theme.Hint.Render("enter to start"),
	}
	return sections, 5
}

func (m Model) content() string {
	sections, _ := m.sections()
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

// buttonRegion computes where the action lands in the final frame.
// One cell of horizontal slack absorbs centering rounding.
func (m Model) buttonRegion() (row, x0, x1 int) {
	sections, btnIdx := m.sections()

	contentRow := 0
	for i := 0; i < btnIdx; i++ {
		contentRow += strings.Count(sections[i], "\n") + 1
	}
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	contentH := strings.Count(content, "\n") + 1

	top := 0
	if m.height > contentH {
		top = (m.height - contentH) / 2
	}
	btnW := lipgloss.Width(sections[btnIdx])
	left := 0
	if m.width > btnW {
		left = (m.width - btnW) / 2
	}
	return top + contentRow, left - 1, left + btnW
}

// View renders the centered hero. Pure: the same props and size always
// produce identical bytes.
func (m Model) View() string {
	content := m.content()
	frame := content
	if m.width > 0 && m.height > 0 {
		frame = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	if m.props.Ref != nil {
		m.props.Ref.set(frame, m.width, m.height)
	}
	return frame
}
