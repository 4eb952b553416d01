package ui

import (
	"errors"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/client"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/ui/components/chat"
)

// Update handles all messages for the application.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeys(msg)

	case tea.MouseMsg:
		if a.screen == ScreenWelcome && !a.confirmQuit {
			var cmd tea.Cmd
			a.welcome, cmd = a.welcome.Update(msg)
			return a.afterWelcome(cmd)
		}
		return a, nil

	case chat.SubmitMsg:
		return a.sendUtterance(msg.Text)

	case ConnectedMsg:
		return a.handleConnected(msg)

	case AgentReplyMsg:
		a.chat.AppendMessage(model.Message{
			ID:     msg.ID,
			Role:   model.RoleAgent,
			Text:   msg.Text,
			SentAt: msg.SentAt,
		})
		return a, WaitForEvent(a.client.Events())

	case OrderUpdatedMsg:
		a.chat.SetOrder(chat.OrderView{
			DrinkType: msg.DrinkType,
			Size:      msg.Size,
			Milk:      msg.Milk,
			Extras:    msg.Extras,
			Name:      msg.Name,
			Missing:   msg.Missing,
		})
		return a, WaitForEvent(a.client.Events())

	case ReceiptSavedMsg:
		a.lastReceipt = msg.Summary
		a.chat.AppendMessage(model.NewMessage(model.RoleSystem, "Receipt saved: "+msg.File))
		saved := msg.File
		if a.ordersDir != "" {
			saved = filepath.Join(a.ordersDir, msg.File)
		}
		a.statusBar.SetMessage("Order saved to "+saved, false)
		return a, tea.Batch(WaitForEvent(a.client.Events()), a.notifyReceipt(msg))

	case DisconnectedMsg:
		return a.handleDisconnected(msg)

	case ServerErrorMsg:
		if msg.Fatal {
			a.chat.AppendMessage(model.NewMessage(model.RoleSystem, "The counter turned us away: "+msg.Message))
		}
		a.statusBar.SetMessage("Barista error: "+msg.Message, true)
		return a, WaitForEvent(a.client.Events())

	case EventsClosedMsg:
		return a, nil

	case ErrorMsg:
		if msg.Err != nil {
			a.statusBar.SetMessage(msg.Err.Error(), true)
		}
		return a, nil
	}

	// Everything else (spinner ticks, cursor blinks) belongs to the
	// active screen's component.
	if a.screen == ScreenSession {
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleKeys routes key input by screen with the global bindings first.
func (a App) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirmQuit {
		switch msg.String() {
		case "y", "Y", "enter":
			a.quitting = true
			return a, a.teardown()
		default:
			a.confirmQuit = false
			return a, nil
		}
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		if a.screen == ScreenWelcome {
			a.quitting = true
			return a, a.teardown()
		}
		a.confirmQuit = true
		return a, nil

	case key.Matches(msg, a.keys.Back):
		if a.screen == ScreenSession {
			a.confirmQuit = true
			return a, nil
		}

	case key.Matches(msg, a.keys.Receipts):
		if a.lastReceipt != "" {
			a.statusBar.SetMessage("Last order: "+a.lastReceipt, false)
		} else {
			a.statusBar.SetMessage("No orders saved yet this session", false)
		}
		return a, nil
	}

	switch a.screen {
	case ScreenWelcome:
		var cmd tea.Cmd
		a.welcome, cmd = a.welcome.Update(msg)
		return a.afterWelcome(cmd)
	case ScreenSession:
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd
	}
	return a, nil
}

// afterWelcome consumes any activations the welcome screen recorded
// while handling the message.
func (a App) afterWelcome(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if a.start.n == 0 {
		return a, cmd
	}
	a.start.n = 0
	if a.screen != ScreenWelcome {
		return a, cmd
	}
	return a.beginSession(cmd)
}

// sendUtterance ships composed text to the barista and echoes it into
// the transcript. Buffered sends count toward the pending indicator.
func (a App) sendUtterance(text string) (tea.Model, tea.Cmd) {
	if err := a.client.Send(text); err != nil {
		switch {
		case errors.Is(err, client.ErrNotReady):
			a.statusBar.SetMessage("Not connected yet, message not sent", true)
		case errors.Is(err, client.ErrClosed):
			a.statusBar.SetMessage("Session is closed", true)
		default:
			a.statusBar.SetMessage("Send failed: "+err.Error(), true)
		}
		return a, nil
	}

	a.chat.AppendMessage(model.NewMessage(model.RoleUser, text))
	pending := a.client.Pending()
	a.chat.SetPending(pending)
	a.statusBar.SetPending(pending)
	return a, nil
}

func (a App) handleConnected(msg ConnectedMsg) (tea.Model, tea.Cmd) {
	stateCmd := a.chat.SetState(model.SessionStateReady)
	a.statusBar.SetState(model.SessionStateReady)
	a.statusBar.SetMessage("Connected to "+msg.AgentName, false)

	a.chat.SetPending(0)
	a.statusBar.SetPending(0)

	if msg.Greeting != "" {
		a.chat.AppendMessage(model.NewMessage(model.RoleAgent, msg.Greeting))
	}
	if msg.Flushed == 1 {
		a.chat.AppendMessage(model.NewMessage(model.RoleSystem, "Delivered 1 queued message"))
	} else if msg.Flushed > 1 {
		a.chat.AppendMessage(model.NewMessage(model.RoleSystem,
			"Delivered "+strconv.Itoa(msg.Flushed)+" queued messages"))
	}

	return a, tea.Batch(stateCmd, WaitForEvent(a.client.Events()))
}

func (a App) handleDisconnected(msg DisconnectedMsg) (tea.Model, tea.Cmd) {
	if msg.Reconnecting {
		stateCmd := a.chat.SetState(model.SessionStateReconnecting)
		a.statusBar.SetState(model.SessionStateReconnecting)
		a.statusBar.SetMessage("Connection lost, retrying...", true)
		return a, tea.Batch(stateCmd, WaitForEvent(a.client.Events()))
	}

	stateCmd := a.chat.SetState(model.SessionStateError)
	a.statusBar.SetState(model.SessionStateError)
	a.statusBar.SetMessage("Session ended", true)
	return a, tea.Batch(stateCmd, a.notifySessionLost(msg), WaitForEvent(a.client.Events()))
}
