package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/styles"
)

// View renders the entire application.
func (a App) View() string {
	if a.quitting {
		bye := a.theme.Brand.Render("Thanks for stopping by " + a.eff.CompanyName + "!")
		return a.centered(bye)
	}

	if !a.ready {
		loading := a.theme.Brand.Render("Warming up the espresso machine...")
		return a.centered(loading)
	}

	if a.windowTooSmall() {
		notice := lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Warning).
			Render(fmt.Sprintf("Window too small: need at least %dx%d, have %dx%d",
				minAppWidth, minAppHeight, a.width, a.height))
		return a.centered(notice)
	}

	if a.confirmQuit {
		return a.renderConfirmQuit()
	}

	var screen string
	switch a.screen {
	case ScreenWelcome:
		screen = a.welcome.View()
	case ScreenSession:
		screen = a.chat.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		screen,
		a.statusBar.View(),
	)
}

// centered places content in the middle of the window.
func (a App) centered(content string) string {
	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderConfirmQuit draws the leave confirmation over a blank screen.
func (a App) renderConfirmQuit() string {
	question := styles.PanelTitle.Render("Leave the coffee shop?")
	hint := styles.TranscriptDim.Render("y to leave, any other key to stay")

	box := styles.BorderStyle.
		BorderForeground(a.theme.Accent).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Center, question, "", hint))

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}
