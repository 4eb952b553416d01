package welcome

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/appconfig"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/styles"
)

func testModel(props Props) Model {
	eff := appconfig.Resolve(appconfig.Default())
	m := New(eff, styles.NewTheme(eff), props)
	m.SetSize(100, 32)
	return m
}

func TestStartButtonTextOnAction(t *testing.T) {
	m := testModel(Props{StartButtonText: "Order with Ember"})
	if !strings.Contains(m.View(), "Order with Ember") {
		t.Fatal("start button text missing from rendered view")
	}
}

func TestActivationsInvokeCallbackEachTime(t *testing.T) {
	calls := 0
	m := testModel(Props{
		StartButtonText: "Order with Ember",
		OnStartCall:     func() { calls++ },
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if calls != 2 {
		t.Fatalf("calls = %d, want 2 (one per activation, no debouncing)", calls)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if calls != 3 {
		t.Fatalf("calls = %d after space, want 3", calls)
	}
}

func TestMouseClickOnButtonActivates(t *testing.T) {
	calls := 0
	m := testModel(Props{
		StartButtonText: "Order with Ember",
		OnStartCall:     func() { calls++ },
	})

	row, x0, x1 := m.buttonRegion()
	click := tea.MouseMsg{
		X:      (x0 + x1) / 2,
		Y:      row,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}
	m, _ = m.Update(click)
	m, _ = m.Update(click)
	if calls != 2 {
		t.Fatalf("calls = %d after two clicks, want 2", calls)
	}

	// A click on another row does nothing.
	miss := tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = m.Update(miss)
	if calls != 2 {
		t.Fatalf("calls = %d after miss, want 2", calls)
	}
}

func TestViewIsDeterministic(t *testing.T) {
	m := testModel(Props{StartButtonText: "Order with Ember"})

	first := m.View()
	second := m.View()
	if first != second {
		t.Fatal("repeated renders differ")
	}

	// A fresh model with the same inputs renders the same bytes.
	other := testModel(Props{StartButtonText: "Order with Ember"})
	if other.View() != first {
		t.Fatal("equivalent model renders differ")
	}
}

func TestEmptyButtonTextStillRenders(t *testing.T) {
	m := testModel(Props{StartButtonText: ""})
	out := m.View()
	if out == "" {
		t.Fatal("empty label should still render the screen")
	}
	if !strings.Contains(out, "Ember Coffee") {
		t.Fatal("headline missing with empty button label")
	}
}

func TestNilCallbackIsNoOp(t *testing.T) {
	m := testModel(Props{StartButtonText: "Order with Ember"})
	// Must not panic.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_ = m.View()
}

func TestRefObservesRenderedRoot(t *testing.T) {
	ref := &Ref{}
	m := testModel(Props{StartButtonText: "Order with Ember", Ref: ref})

	frame := m.View()
	if ref.Frame() != frame {
		t.Fatal("ref frame does not match the rendered view")
	}
	w, h := ref.Size()
	if w != 100 || h != 32 {
		t.Fatalf("ref size = %dx%d, want 100x32", w, h)
	}
}

func TestBrandFallsBackWhenLogoMissing(t *testing.T) {
	eff := appconfig.Resolve(appconfig.Default())
	eff.Logo = filepath.Join(t.TempDir(), "missing.txt")
	m := New(eff, styles.NewTheme(eff), Props{StartButtonText: "Go"})
	m.SetSize(100, 32)

	if !strings.Contains(m.View(), eff.CompanyName) {
		t.Fatal("company name fallback missing when logo file absent")
	}
}

func TestBrandUsesLogoFile(t *testing.T) {
	logo := filepath.Join(t.TempDir(), "logo.txt")
	if err := os.WriteFile(logo, []byte("EMBER BREW CO\n"), 0644); err != nil {
		t.Fatal(err)
	}
	eff := appconfig.Resolve(appconfig.Default())
	eff.Logo = logo
	m := New(eff, styles.NewTheme(eff), Props{StartButtonText: "Go"})
	m.SetSize(100, 32)

	if !strings.Contains(m.View(), "EMBER BREW CO") {
		t.Fatal("logo file content missing from brand mark")
	}
}

func TestArtIsStable(t *testing.T) {
	if Art() == "" {
		t.Fatal("art is empty")
	}
	if Art() != Art() {
		t.Fatal("art changed between calls")
	}
}
