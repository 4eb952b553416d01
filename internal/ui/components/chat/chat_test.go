package chat

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/appconfig"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/styles"
)

func testChat(t *testing.T, mutate func(*appconfig.AppConfig)) Model {
	t.Helper()
	cfg := appconfig.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	eff := appconfig.Resolve(cfg)
	m := New(eff, styles.NewTheme(eff))
	m.SetSize(100, 30)
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func pressEnter(m Model) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSubmitEmitsComposedText(t *testing.T) {
	m := testChat(t, nil)
	m = typeText(m, "a large latte")

	m, cmd := pressEnter(m)
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	msg, ok := cmd().(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", cmd())
	}
	if msg.Text != "a large latte" {
		t.Errorf("submitted %q", msg.Text)
	}

	// Composer is cleared, so a second enter has nothing to send.
	if _, cmd := pressEnter(m); cmd != nil {
		t.Error("expected no command after the composer was cleared")
	}
}

func TestSubmitSkipsBlankInput(t *testing.T) {
	m := testChat(t, nil)
	m = typeText(m, "   ")
	if _, cmd := pressEnter(m); cmd != nil {
		t.Error("whitespace-only input should not submit")
	}
}

func TestDisabledChatInputIgnoresTyping(t *testing.T) {
	m := testChat(t, func(cfg *appconfig.AppConfig) {
		cfg.SupportsChatInput = false
	})
	m = typeText(m, "a latte please")
	if _, cmd := pressEnter(m); cmd != nil {
		t.Error("disabled composer should never submit")
	}
	if !strings.Contains(m.View(), "Chat input is disabled") {
		t.Error("expected the disabled-composer notice")
	}
}

func TestTranscriptShowsSpeakersAndText(t *testing.T) {
	m := testChat(t, nil)
	m.AppendMessage(model.NewMessage(model.RoleAgent, "Welcome to Ember Coffee Shop!"))
	m.AppendMessage(model.NewMessage(model.RoleUser, "A latte please"))

	view := m.View()
	for _, want := range []string{"Ember", "Welcome to Ember Coffee Shop!", "You", "A latte please"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppendPinsViewToLatestMessage(t *testing.T) {
	m := testChat(t, nil)
	for i := 0; i < 60; i++ {
		m.AppendMessage(model.NewMessage(model.RoleAgent, "earlier line"))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	if m.scroll == 0 {
		t.Fatal("expected scroll to move off the bottom")
	}

	m.AppendMessage(model.NewMessage(model.RoleAgent, "the freshest line"))
	if m.scroll != 0 {
		t.Errorf("scroll = %d after append, want 0", m.scroll)
	}
	if !strings.Contains(m.View(), "the freshest line") {
		t.Error("latest message not visible after append")
	}
}

func TestScrollClampsAtBothEnds(t *testing.T) {
	m := testChat(t, nil)
	for i := 0; i < 10; i++ {
		m.AppendMessage(model.NewMessage(model.RoleUser, "line"))
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	if m.scroll != 0 {
		t.Errorf("scrolling down at the bottom moved to %d", m.scroll)
	}

	for i := 0; i < 50; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	}
	if m.scroll > m.maxScroll() {
		t.Errorf("scroll %d exceeds maximum %d", m.scroll, m.maxScroll())
	}
	if m.View() == "" {
		t.Error("view must render at any scroll position")
	}
}

func TestSidebarTracksOrderProgress(t *testing.T) {
	m := testChat(t, nil)
	m.SetOrder(OrderView{
		DrinkType: "latte",
		Missing:   []string{"size", "milk type", "name"},
	})
	view := m.View()
	if !strings.Contains(view, "latte") {
		t.Error("sidebar missing the drink")
	}
	if !strings.Contains(view, "Still needed:") {
		t.Error("sidebar missing the outstanding slots")
	}

	m.SetOrder(OrderView{
		DrinkType: "latte", Size: "venti", Milk: "oat", Name: "Sam",
		Extras: []string{"vanilla syrup"},
	})
	view = m.View()
	for _, want := range []string{"venti", "oat", "Sam", "vanilla syrup", "Order complete"} {
		if !strings.Contains(view, want) {
			t.Errorf("complete order view missing %q", want)
		}
	}
}

func TestSpinnerRunsOnlyWhileConnecting(t *testing.T) {
	m := testChat(t, nil)

	cmd := m.SetState(model.SessionStateConnecting)
	if cmd == nil {
		t.Fatal("entering connecting should start the spinner")
	}
	if again := m.SetState(model.SessionStateReconnecting); again != nil {
		t.Error("spinner already running, no second tick chain expected")
	}

	m.SetState(model.SessionStateReady)
	next, tickCmd := m.Update(tickMsg{})
	if tickCmd != nil {
		t.Error("spinner should stop once the session is ready")
	}
	if next.spinnerIdx != 0 {
		t.Errorf("spinner advanced to %d while stopped", next.spinnerIdx)
	}
}

func TestPendingQueueIsVisible(t *testing.T) {
	m := testChat(t, nil)
	m.SetPending(2)
	if !strings.Contains(m.View(), "2 queued") {
		t.Error("expected the pending queue indicator")
	}
	m.SetPending(0)
	if strings.Contains(m.View(), "queued") {
		t.Error("indicator should disappear when the queue drains")
	}
}

func TestUnsupportedCapabilitiesAreCalledOut(t *testing.T) {
	m := testChat(t, func(cfg *appconfig.AppConfig) {
		cfg.SupportsVideoInput = true
		cfg.SupportsScreenShare = true
	})
	// The narrow sidebar wraps the notice, so match its pieces.
	view := m.View()
	for _, want := range []string{"camera & screen share", "unavailable"} {
		if !strings.Contains(view, want) {
			t.Errorf("sidebar notice missing %q", want)
		}
	}
}
