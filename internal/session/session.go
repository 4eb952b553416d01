// Package session manages live conversations between connected
// front-ends and their barista agents.
package session

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/agent"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/logging"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/wire"
)

const (
	// outboundBuffer bounds queued frames per session; a session that
	// cannot drain this many falls behind and starts losing frames.
	outboundBuffer = 32
	// readTimeout is how long a session may stay silent. Pongs and any
	// inbound frame extend it.
	readTimeout = 60 * time.Second
	// pingInterval paces keep-alive pings from the writer.
	pingInterval = 30 * time.Second
	// writeTimeout bounds a single frame write.
	writeTimeout = 10 * time.Second
)

// Session is one connected customer: a WebSocket on one side, a barista
// on the other. The read loop runs on the caller's goroutine; writes go
// through a dedicated writer goroutine.
type Session struct {
	ID        string
	AgentName string
	SandboxID string

	conn       *websocket.Conn
	barista    *agent.Barista
	out        chan []byte
	done       chan struct{}
	writerDone chan struct{}
	closeOnce  sync.Once
	log        *logging.Logger
	usage      *Usage
}

func newSession(conn *websocket.Conn, hello *wire.Hello, persona agent.Persona, barista *agent.Barista, log *logging.Logger, usage *Usage) *Session {
	return &Session{
		ID:         uuid.New().String(),
		AgentName:  persona.Name,
		SandboxID:  hello.SandboxID,
		conn:       conn,
		barista:    barista,
		out:        make(chan []byte, outboundBuffer),
		done:       make(chan struct{}),
		writerDone: make(chan struct{}),
		log:        log,
		usage:      usage,
	}
}

// shutdown asks the writer to flush, say goodbye, and close the
// connection. Safe to call from any goroutine, any number of times.
func (s *Session) shutdown() {
	s.closeOnce.Do(func() { close(s.done) })
}

// run services the connection until the peer leaves or shutdown is
// called, then returns with the writer drained and the socket closed.
func (s *Session) run() {
	go func() {
		// Closing the connection here unblocks a reader that is
		// still parked in ReadMessage.
		defer close(s.writerDone)
		defer s.conn.Close()
		s.writeLoop()
	}()
	s.readLoop()
	s.shutdown()
	<-s.writerDone
}

// send queues a frame for the writer. A full queue drops the frame and
// keeps the session; the read deadline reaps peers that stopped
// draining entirely.
func (s *Session) send(v any) {
	data, err := wire.Encode(v)
	if err != nil {
		s.log.ComponentError(logging.ComponentSession, "encode frame",
			zap.String("session_id", s.ID), zap.Error(err))
		return
	}
	select {
	case s.out <- data:
	default:
		s.log.ComponentWarn(logging.ComponentSession, "outbound queue full, dropping frame",
			zap.String("session_id", s.ID))
	}
}

// writeLoop drains the outbound queue and paces keep-alive pings.
func (s *Session) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-s.out:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.log.ComponentDebug(logging.ComponentSession, "write failed",
					zap.String("session_id", s.ID), zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		case <-s.done:
			// Flush anything already queued, then say goodbye.
			for {
				select {
				case data := <-s.out:
					s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if s.conn.WriteMessage(websocket.TextMessage, data) != nil {
						return
					}
				default:
					data, _ := wire.Encode(wire.NewBye("server closing"))
					s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					s.conn.WriteMessage(websocket.TextMessage, data)
					return
				}
			}
		}
	}
}

// readLoop consumes frames until the peer goes away or says bye.
func (s *Session) readLoop() {
	s.conn.SetReadDeadline(time.Now().Add(readTimeout))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.log.ComponentDebug(logging.ComponentSession, "read ended",
				zap.String("session_id", s.ID), zap.Error(err))
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(readTimeout))

		msg, err := wire.Decode(data)
		if err != nil {
			s.send(wire.NewError(wire.CodeBadRequest, err.Error()))
			continue
		}

		switch m := msg.(type) {
		case *wire.UserMessage:
			s.handleUserMessage(m)
		case *wire.Ping:
			s.send(wire.Pong{Type: wire.TypePong})
		case *wire.Bye:
			s.log.ComponentInfo(logging.ComponentSession, "customer left",
				zap.String("session_id", s.ID), zap.String("reason", m.Reason))
			return
		default:
			s.send(wire.NewError(wire.CodeBadRequest, "unexpected frame"))
		}
	}
}

// handleUserMessage runs one conversational turn and streams the
// replies, the order snapshot, and the receipt when one was produced.
func (s *Session) handleUserMessage(m *wire.UserMessage) {
	s.usage.CountMessage()

	turn, err := s.barista.Respond(m.Text)
	if err != nil {
		// The turn still carries an apologetic reply; the order is
		// kept for retry.
		s.log.ComponentError(logging.ComponentAgent, "turn failed",
			zap.String("session_id", s.ID), zap.Error(err))
	}

	now := time.Now().Unix()
	for _, text := range turn.Replies {
		s.send(wire.NewReply(uuid.New().String(), text, now))
	}
	s.usage.CountReplies(len(turn.Replies))

	s.send(wire.OrderState{
		Type:      wire.TypeOrder,
		DrinkType: turn.Order.DrinkType,
		Size:      turn.Order.Size,
		Milk:      turn.Order.Milk,
		Extras:    turn.Order.Extras,
		Name:      turn.Order.Name,
		Missing:   turn.Missing,
	})

	if turn.Receipt != nil {
		s.usage.CountOrder()
		s.log.ComponentInfo(logging.ComponentAgent, "order completed",
			zap.String("session_id", s.ID),
			zap.String("order_id", turn.Receipt.OrderID),
			zap.String("file", turn.Receipt.Path))
		s.send(wire.ReceiptNotice{
			Type:    wire.TypeReceipt,
			OrderID: turn.Receipt.OrderID,
			// Clients address receipts by filename, not by the
			// server's filesystem layout.
			File:    filepath.Base(turn.Receipt.Path),
			Summary: turn.Receipt.Summary,
		})
	}
}
