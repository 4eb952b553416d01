// Package wire defines the JSON session protocol between the front-end
// and the agent service. Every frame is one JSON object with a "type"
// discriminator.
package wire

import (
	"encoding/json"
	"fmt"
)

// Message types.
const (
	TypeHello   = "hello"
	TypeReady   = "ready"
	TypeMessage = "message"
	TypeReply   = "reply"
	TypeOrder   = "order"
	TypeReceipt = "receipt"
	TypePing    = "ping"
	TypePong    = "pong"
	TypeError   = "error"
	TypeBye     = "bye"
)

// Error codes carried by Error frames.
const (
	CodeUnknownAgent = "unknown_agent"
	CodeBadRequest   = "bad_request"
	CodeServerError  = "server_error"
)

// Envelope carries just the discriminator, for routing raw frames.
type Envelope struct {
	Type string `json:"type"`
}

// Hello opens a session. Optional identity fields mirror the front-end
// configuration; absent means "use the service defaults".
type Hello struct {
	Type             string `json:"type"` // "hello"
	SandboxID        string `json:"sandbox_id,omitempty"`
	AgentName        string `json:"agent_name,omitempty"`
	SupportsChat     bool   `json:"supports_chat_input"`
	PreConnectBuffer bool   `json:"pre_connect_buffer"`
}

// Ready confirms the session and carries the opening line.
type Ready struct {
	Type      string `json:"type"` // "ready"
	SessionID string `json:"session_id"`
	AgentName string `json:"agent_name"`
	Greeting  string `json:"greeting"`
}

// UserMessage is one customer utterance.
type UserMessage struct {
	Type   string `json:"type"` // "message"
	ID     string `json:"id,omitempty"`
	Text   string `json:"text"`
	SentAt int64  `json:"sent_at,omitempty"`
}

// Reply is one agent utterance.
type Reply struct {
	Type   string `json:"type"` // "reply"
	ID     string `json:"id,omitempty"`
	Text   string `json:"text"`
	SentAt int64  `json:"sent_at,omitempty"`
}

// OrderState reports slot progress after a turn.
type OrderState struct {
	Type      string   `json:"type"` // "order"
	DrinkType string   `json:"drink_type"`
	Size      string   `json:"size"`
	Milk      string   `json:"milk"`
	Extras    []string `json:"extras"`
	Name      string   `json:"name"`
	Missing   []string `json:"missing"`
}

// ReceiptNotice announces a saved order.
type ReceiptNotice struct {
	Type    string `json:"type"` // "receipt"
	OrderID string `json:"order_id"`
	File    string `json:"file"`
	Summary string `json:"summary"`
}

// Ping is a keep-alive probe.
type Ping struct {
	Type string `json:"type"` // "ping"
}

// Pong is the keep-alive response.
type Pong struct {
	Type string `json:"type"` // "pong"
}

// Error reports a session-level failure.
type Error struct {
	Type    string `json:"type"` // "error"
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Bye announces an orderly shutdown of either side.
type Bye struct {
	Type   string `json:"type"` // "bye"
	Reason string `json:"reason,omitempty"`
}

// Encode marshals a frame. The typed constructors below set the
// discriminator; Encode does not check it.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode routes a raw frame to its typed struct.
func Decode(data []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("bad frame: %w", err)
	}

	var (
		msg any
		err error
	)
	switch env.Type {
	case TypeHello:
		var m Hello
		err = json.Unmarshal(data, &m)
		msg = &m
	case TypeReady:
		var m Ready
		err = json.Unmarshal(data, &m)
		msg = &m
	case TypeMessage:
		var m UserMessage
		err = json.Unmarshal(data, &m)
		msg = &m
	case TypeReply:
		var m Reply
		err = json.Unmarshal(data, &m)
		msg = &m
	case TypeOrder:
		var m OrderState
		err = json.Unmarshal(data, &m)
		msg = &m
	case TypeReceipt:
		var m ReceiptNotice
		err = json.Unmarshal(data, &m)
		msg = &m
	case TypePing:
		var m Ping
		err = json.Unmarshal(data, &m)
		msg = &m
	case TypePong:
		var m Pong
		err = json.Unmarshal(data, &m)
		msg = &m
	case TypeError:
		var m Error
		err = json.Unmarshal(data, &m)
		msg = &m
	case TypeBye:
		var m Bye
		err = json.Unmarshal(data, &m)
		msg = &m
	default:
		return nil, fmt.Errorf("unknown frame type %q", env.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("bad %s frame: %w", env.Type, err)
	}
	return msg, nil
}

// NewHello builds a hello frame.
func NewHello(sandboxID, agentName string, supportsChat, preConnect bool) Hello {
	return Hello{
		Type:             TypeHello,
		SandboxID:        sandboxID,
		AgentName:        agentName,
		SupportsChat:     supportsChat,
		PreConnectBuffer: preConnect,
	}
}

// NewReady builds a ready frame.
func NewReady(sessionID, agentName, greeting string) Ready {
	return Ready{
		Type:      TypeReady,
		SessionID: sessionID,
		AgentName: agentName,
		Greeting:  greeting,
	}
}

// NewUserMessage builds a message frame.
func NewUserMessage(id, text string, sentAt int64) UserMessage {
	return UserMessage{Type: TypeMessage, ID: id, Text: text, SentAt: sentAt}
}

// NewReply builds a reply frame.
func NewReply(id, text string, sentAt int64) Reply {
	return Reply{Type: TypeReply, ID: id, Text: text, SentAt: sentAt}
}

// NewError builds an error frame.
func NewError(code, message string) Error {
	return Error{Type: TypeError, Code: code, Message: message}
}

// NewBye builds a bye frame.
func NewBye(reason string) Bye {
	return Bye{Type: TypeBye, Reason: reason}
}
