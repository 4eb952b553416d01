package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/agent"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/appconfig"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/logging"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/wire"
)

const (
	// DefaultMaxSessions bounds concurrent conversations when the
	// config does not say otherwise.
	DefaultMaxSessions = 64

	// handshakeTimeout is how long a fresh connection gets to send its
	// hello frame.
	handshakeTimeout = 10 * time.Second

	// closeTimeout bounds how long Close waits for sessions to drain.
	closeTimeout = 5 * time.Second
)

// ErrClosed is returned by Serve after the manager shut down.
var ErrClosed = errors.New("session manager closed")

// Config carries the manager's dependencies. Zero MaxSessions means
// DefaultMaxSessions.
type Config struct {
	MaxSessions int
	Registry    *agent.Registry
	Receipts    agent.ReceiptWriter
	Logger      *logging.Logger
}

// Manager owns all live sessions: it performs the hello handshake,
// spins up one barista per connection, and tears everything down on
// shutdown.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool

	registry    *agent.Registry
	receipts    agent.ReceiptWriter
	usage       *Usage
	log         *logging.Logger
	maxSessions int
	wg          sync.WaitGroup
}

// NewManager builds a manager from cfg, applying defaults.
func NewManager(cfg Config) *Manager {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		registry:    cfg.Registry,
		receipts:    cfg.Receipts,
		usage:       &Usage{},
		log:         cfg.Logger,
		maxSessions: cfg.MaxSessions,
	}
}

// Usage exposes the manager's counters.
func (m *Manager) Usage() *Usage {
	return m.usage
}

// Active reports how many sessions are currently live.
func (m *Manager) Active() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Serve runs one connection to completion. It blocks until the peer
// leaves or the manager closes, so callers invoke it from the
// connection's handler goroutine. The connection is always closed on
// return.
func (m *Manager) Serve(conn *websocket.Conn) error {
	hello, err := m.handshake(conn)
	if err != nil {
		conn.Close()
		return err
	}

	name := hello.AgentName
	if name == "" {
		name = appconfig.DefaultAgentName
	}
	persona, ok := m.registry.Lookup(name)
	if !ok {
		reject(conn, wire.NewError(wire.CodeUnknownAgent, fmt.Sprintf("no agent named %q", name)))
		return fmt.Errorf("unknown agent %q", name)
	}

	s := newSession(conn, hello, persona, agent.NewBarista(m.receipts), m.log, m.usage)
	if err := m.register(s); err != nil {
		reject(conn, wire.NewError(wire.CodeServerError, err.Error()))
		return err
	}

	m.log.ComponentInfo(logging.ComponentSession, "session opened",
		zap.String("session_id", s.ID),
		zap.String("agent", s.AgentName),
		zap.Bool("pre_connect_buffer", hello.PreConnectBuffer))

	s.send(wire.NewReady(s.ID, persona.Name, persona.Greeting))
	s.run()

	m.unregister(s)
	m.log.ComponentInfo(logging.ComponentSession, "session closed",
		zap.String("session_id", s.ID))
	return nil
}

// handshake reads the opening frame, which must be a hello.
func (m *Manager) handshake(conn *websocket.Conn) (*wire.Hello, error) {
	conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("read hello: %w", err)
	}
	msg, err := wire.Decode(data)
	if err != nil {
		reject(conn, wire.NewError(wire.CodeBadRequest, err.Error()))
		return nil, err
	}
	hello, ok := msg.(*wire.Hello)
	if !ok {
		reject(conn, wire.NewError(wire.CodeBadRequest, "expected hello"))
		return nil, fmt.Errorf("expected hello, got %T", msg)
	}
	return hello, nil
}

func (m *Manager) register(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if len(m.sessions) >= m.maxSessions {
		return fmt.Errorf("session limit reached (%d)", m.maxSessions)
	}
	m.sessions[s.ID] = s
	m.usage.sessionOpened()
	m.wg.Add(1)
	return nil
}

func (m *Manager) unregister(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		return
	}
	delete(m.sessions, s.ID)
	m.usage.sessionClosed()
	m.wg.Done()
}

// Close shuts every live session down and waits up to closeTimeout for
// them to drain.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	live := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		live = append(live, s)
	}
	m.mu.Unlock()

	for _, s := range live {
		s.shutdown()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-time.After(closeTimeout):
		return fmt.Errorf("timed out waiting for %d sessions to close", m.Active())
	}
}

// reject writes a final error frame and closes the connection. Best
// effort; the peer may already be gone.
func reject(conn *websocket.Conn, frame wire.Error) {
	if data, err := wire.Encode(frame); err == nil {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		conn.WriteMessage(websocket.TextMessage, data)
	}
	conn.Close()
}
