// Package client maintains the front-end's session with the agent
// service: dialing, the hello handshake, reconnection, and the
// pre-connect message buffer.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/wire"
)

const (
	// DefaultDialTimeout bounds one WebSocket handshake attempt.
	DefaultDialTimeout = 10 * time.Second
	// initialBackoff is the delay before the first reconnect attempt.
	initialBackoff = time.Second
	// DefaultMaxBackoff caps the reconnect delay.
	DefaultMaxBackoff = 30 * time.Second
	// closeTimeout bounds how long Close waits for the run loop.
	closeTimeout = 5 * time.Second
	// eventBuffer bounds queued events towards the UI.
	eventBuffer = 64
)

var (
	// ErrNotReady means the session is not established and buffering
	// is disabled, so the message has nowhere to go.
	ErrNotReady = errors.New("session not ready")
	// ErrClosed means the client was shut down.
	ErrClosed = errors.New("client closed")
)

// Event is anything the client reports to its UI.
type Event interface{ clientEvent() }

// ConnectedEvent fires when the agent greeted and input flows.
type ConnectedEvent struct {
	SessionID string
	AgentName string
	Greeting  string
	// Flushed is how many buffered utterances were replayed.
	Flushed int
}

// ReplyEvent carries one agent utterance.
type ReplyEvent struct {
	ID     string
	Text   string
	SentAt int64
}

// OrderEvent reports slot progress after a turn.
type OrderEvent struct {
	DrinkType string
	Size      string
	Milk      string
	Extras    []string
	Name      string
	Missing   []string
}

// ReceiptEvent announces a completed, saved order.
type ReceiptEvent struct {
	OrderID string
	File    string
	Summary string
}

// DisconnectedEvent reports a dropped transport.
type DisconnectedEvent struct {
	Err error
	// Reconnecting is false only when the client is done for good.
	Reconnecting bool
}

// ServerErrorEvent surfaces an error frame from the service. A fatal
// code stops the client instead of reconnecting.
type ServerErrorEvent struct {
	Code    string
	Message string
	Fatal   bool
}

func (ConnectedEvent) clientEvent()    {}
func (ReplyEvent) clientEvent()        {}
func (OrderEvent) clientEvent()        {}
func (ReceiptEvent) clientEvent()      {}
func (DisconnectedEvent) clientEvent() {}
func (ServerErrorEvent) clientEvent()  {}

// Config carries the client's settings. Zero durations and capacities
// take the package defaults.
type Config struct {
	// URL is the WebSocket session endpoint.
	URL string
	// SandboxID and AgentName are passed in the hello frame; empty
	// means the service decides.
	SandboxID string
	AgentName string
	// PreConnectBuffer queues utterances typed before the session is
	// ready and replays them once it is.
	PreConnectBuffer bool
	// BufferCapacity bounds the pre-connect queue.
	BufferCapacity int
	DialTimeout    time.Duration
	MaxBackoff     time.Duration
}

// Client is the front-end's connection to the agent service. Events
// stream on Events(); Send is safe from any goroutine.
type Client struct {
	cfg    Config
	events chan Event

	mu    sync.Mutex // guards conn and writes to it
	conn  *websocket.Conn
	state model.SessionState

	buffer *preConnectBuffer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// New builds a client; Start actually connects.
func New(cfg Config) *Client {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = DefaultMaxBackoff
	}
	return &Client{
		cfg:    cfg,
		events: make(chan Event, eventBuffer),
		state:  model.SessionStateIdle,
		buffer: newPreConnectBuffer(cfg.BufferCapacity),
	}
}

// Events streams session events. Closed after Close returns.
func (c *Client) Events() <-chan Event {
	return c.events
}

// State reports the current session state.
func (c *Client) State() model.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending reports how many utterances wait in the pre-connect buffer.
func (c *Client) Pending() int {
	return c.buffer.pending()
}

// Start begins connecting in the background. The ctx bounds the whole
// session; cancelling it is equivalent to Close.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.ctx != nil {
		c.mu.Unlock()
		return
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.state = model.SessionStateConnecting
	c.mu.Unlock()

	c.wg.Add(1)
	go c.run()
}

// Send delivers one utterance to the agent. Before the session is
// ready it queues when buffering is enabled and fails with ErrNotReady
// otherwise.
func (c *Client) Send(text string) error {
	c.mu.Lock()
	state, conn := c.state, c.conn
	c.mu.Unlock()

	switch state {
	case model.SessionStateClosed, model.SessionStateError:
		return ErrClosed
	case model.SessionStateReady:
		return c.write(conn, wire.NewUserMessage(uuid.New().String(), text, time.Now().Unix()))
	default:
		if !c.cfg.PreConnectBuffer {
			return ErrNotReady
		}
		c.buffer.add(text)
		return nil
	}
}

// Close tears the session down and waits briefly for the run loop.
func (c *Client) Close() error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		c.state = model.SessionStateClosed
		if c.cancel != nil {
			c.cancel()
		}
		if c.conn != nil {
			c.conn.Close()
		}
		c.mu.Unlock()

		if c.ctx == nil {
			close(c.events)
			return
		}

		done := make(chan struct{})
		go func() {
			c.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(closeTimeout):
			err = fmt.Errorf("timed out waiting for session loop")
		}
		close(c.events)
	})
	return err
}

// emit queues an event unless the client is shutting down.
func (c *Client) emit(e Event) {
	select {
	case c.events <- e:
	case <-c.ctx.Done():
	}
}

func (c *Client) setState(s model.SessionState) {
	c.mu.Lock()
	// Closed is terminal; a racing run loop must not resurrect it.
	if c.state != model.SessionStateClosed {
		c.state = s
	}
	c.mu.Unlock()
}

// write sends one frame under the write lock.
func (c *Client) write(conn *websocket.Conn, v any) error {
	if conn == nil {
		return ErrNotReady
	}
	data, err := wire.Encode(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// run dials, converses, and redials with backoff until the context
// ends or a fatal server error arrives.
func (c *Client) run() {
	defer c.wg.Done()

	backoff := initialBackoff
	for {
		conn, err := c.connect()
		if err != nil {
			var fatal *fatalError
			if errors.As(err, &fatal) {
				c.setState(model.SessionStateError)
				c.emit(ServerErrorEvent{Code: fatal.code, Message: fatal.message, Fatal: true})
				c.emit(DisconnectedEvent{Err: err, Reconnecting: false})
				return
			}
			if c.ctx.Err() != nil {
				return
			}
			c.setState(model.SessionStateReconnecting)
			c.emit(DisconnectedEvent{Err: err, Reconnecting: true})
			if !c.sleep(backoff) {
				return
			}
			if backoff *= 2; backoff > c.cfg.MaxBackoff {
				backoff = c.cfg.MaxBackoff
			}
			continue
		}
		backoff = initialBackoff

		err = c.readLoop(conn)
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		conn.Close()

		if c.ctx.Err() != nil {
			return
		}
		c.setState(model.SessionStateReconnecting)
		c.emit(DisconnectedEvent{Err: err, Reconnecting: true})
		if !c.sleep(backoff) {
			return
		}
	}
}

// fatalError marks handshake failures that retrying cannot fix.
type fatalError struct {
	code    string
	message string
}

func (e *fatalError) Error() string {
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// connect dials, says hello, and waits for ready. On success the
// pre-connect buffer is flushed and a ConnectedEvent is emitted.
func (c *Client) connect() (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: c.cfg.DialTimeout}
	conn, _, err := dialer.DialContext(c.ctx, c.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.cfg.URL, err)
	}

	hello := wire.NewHello(c.cfg.SandboxID, c.cfg.AgentName, true, c.cfg.PreConnectBuffer)
	if err := c.write(conn, hello); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send hello: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(c.cfg.DialTimeout))
	_, data, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("await ready: %w", err)
	}
	conn.SetReadDeadline(time.Time{})

	msg, err := wire.Decode(data)
	if err != nil {
		conn.Close()
		return nil, err
	}
	switch m := msg.(type) {
	case *wire.Ready:
		c.mu.Lock()
		c.conn = conn
		if c.state != model.SessionStateClosed {
			c.state = model.SessionStateReady
		}
		c.mu.Unlock()

		queued := c.buffer.drain()
		for _, text := range queued {
			if err := c.write(conn, wire.NewUserMessage(uuid.New().String(), text, time.Now().Unix())); err != nil {
				conn.Close()
				return nil, fmt.Errorf("flush buffered message: %w", err)
			}
		}
		c.emit(ConnectedEvent{
			SessionID: m.SessionID,
			AgentName: m.AgentName,
			Greeting:  m.Greeting,
			Flushed:   len(queued),
		})
		return conn, nil
	case *wire.Error:
		conn.Close()
		if m.Code == wire.CodeUnknownAgent {
			return nil, &fatalError{code: m.Code, message: m.Message}
		}
		return nil, fmt.Errorf("rejected: %s: %s", m.Code, m.Message)
	default:
		conn.Close()
		return nil, fmt.Errorf("expected ready, got %T", msg)
	}
}

// readLoop pumps frames into events until the connection drops.
func (c *Client) readLoop(conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		msg, err := wire.Decode(data)
		if err != nil {
			// A frame we cannot parse is not worth the session.
			continue
		}
		switch m := msg.(type) {
		case *wire.Reply:
			c.emit(ReplyEvent{ID: m.ID, Text: m.Text, SentAt: m.SentAt})
		case *wire.OrderState:
			c.emit(OrderEvent{
				DrinkType: m.DrinkType,
				Size:      m.Size,
				Milk:      m.Milk,
				Extras:    m.Extras,
				Name:      m.Name,
				Missing:   m.Missing,
			})
		case *wire.ReceiptNotice:
			c.emit(ReceiptEvent{OrderID: m.OrderID, File: m.File, Summary: m.Summary})
		case *wire.Error:
			c.emit(ServerErrorEvent{Code: m.Code, Message: m.Message})
		case *wire.Pong:
			// Keep-alive answer; nothing to surface.
		case *wire.Bye:
			return fmt.Errorf("server closed session: %s", m.Reason)
		}
	}
}

// sleep waits d or until shutdown; false means shutdown.
func (c *Client) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-c.ctx.Done():
		return false
	}
}
