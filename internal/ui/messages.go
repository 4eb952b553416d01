// Package ui provides the terminal user interface for Ember.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/client"
)

// ---------- Session Messages ----------

// ConnectedMsg is sent when the session handshake completes.
type ConnectedMsg struct {
	SessionID string
	AgentName string
	Greeting  string
	Flushed   int
}

// AgentReplyMsg carries one barista utterance.
type AgentReplyMsg struct {
	ID     string
	Text   string
	SentAt int64
}

// OrderUpdatedMsg reports slot progress after a turn.
type OrderUpdatedMsg struct {
	DrinkType string
	Size      string
	Milk      string
	Extras    []string
	Name      string
	Missing   []string
}

// ReceiptSavedMsg announces a completed, saved order.
type ReceiptSavedMsg struct {
	OrderID string
	File    string
	Summary string
}

// DisconnectedMsg is sent when the transport drops.
type DisconnectedMsg struct {
	Err          error
	Reconnecting bool
}

// ServerErrorMsg surfaces an error frame from the service.
type ServerErrorMsg struct {
	Code    string
	Message string
	Fatal   bool
}

// EventsClosedMsg is sent when the client's event channel closes for
// good; the pump must not be re-armed after it.
type EventsClosedMsg struct{}

// ErrorMsg is sent when a local operation fails.
type ErrorMsg struct {
	Err error
}

// ---------- Command Functions ----------

// WaitForEvent returns a command that delivers the next client event.
// The shell re-issues it after every delivery so the channel keeps
// draining for the life of the session.
func WaitForEvent(events <-chan client.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return EventsClosedMsg{}
		}
		return eventMsg(ev)
	}
}

// eventMsg converts a client event into its shell message.
func eventMsg(ev client.Event) tea.Msg {
	switch e := ev.(type) {
	case client.ConnectedEvent:
		return ConnectedMsg{
			SessionID: e.SessionID,
			AgentName: e.AgentName,
			Greeting:  e.Greeting,
			Flushed:   e.Flushed,
		}
	case client.ReplyEvent:
		return AgentReplyMsg{ID: e.ID, Text: e.Text, SentAt: e.SentAt}
	case client.OrderEvent:
		return OrderUpdatedMsg{
			DrinkType: e.DrinkType,
			Size:      e.Size,
			Milk:      e.Milk,
			Extras:    e.Extras,
			Name:      e.Name,
			Missing:   e.Missing,
		}
	case client.ReceiptEvent:
		return ReceiptSavedMsg{OrderID: e.OrderID, File: e.File, Summary: e.Summary}
	case client.DisconnectedEvent:
		return DisconnectedMsg{Err: e.Err, Reconnecting: e.Reconnecting}
	case client.ServerErrorEvent:
		return ServerErrorMsg{Code: e.Code, Message: e.Message, Fatal: e.Fatal}
	}
	return nil
}
