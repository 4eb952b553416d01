package session

import (
	"errors"
	"testing"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/agent"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/logging"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/model"
)

type nopReceipts struct{}

func (nopReceipts) SaveReceipt(o *model.Order) (string, error) { return "order_test.json", nil }

func newTestManager(max int) *Manager {
	return NewManager(Config{
		MaxSessions: max,
		Registry:    agent.NewRegistry(),
		Receipts:    nopReceipts{},
		Logger:      logging.New(false, false),
	})
}

func TestNewManagerDefaults(t *testing.T) {
	m := NewManager(Config{Registry: agent.NewRegistry(), Receipts: nopReceipts{}, Logger: logging.New(false, false)})
	if m.maxSessions != DefaultMaxSessions {
		t.Fatalf("maxSessions = %d, want %d", m.maxSessions, DefaultMaxSessions)
	}
	if m.Active() != 0 {
		t.Fatalf("fresh manager has %d active sessions", m.Active())
	}
}

func TestRegisterCapacity(t *testing.T) {
	m := newTestManager(1)

	first := &Session{ID: "a"}
	if err := m.register(first); err != nil {
		t.Fatalf("register first: %v", err)
	}
	if err := m.register(&Session{ID: "b"}); err == nil {
		t.Fatal("expected second register to hit the session limit")
	}
	if m.Active() != 1 {
		t.Fatalf("Active() = %d, want 1", m.Active())
	}

	m.unregister(first)
	if err := m.register(&Session{ID: "c"}); err != nil {
		t.Fatalf("register after unregister: %v", err)
	}
}

func TestRegisterAfterClose(t *testing.T) {
	m := newTestManager(4)
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := m.register(&Session{ID: "late"}); !errors.Is(err, ErrClosed) {
		t.Fatalf("register after close = %v, want ErrClosed", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	m := newTestManager(4)
	if err := m.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestUsageTracksSessions(t *testing.T) {
	m := newTestManager(4)

	s := &Session{ID: "s1"}
	if err := m.register(s); err != nil {
		t.Fatalf("register: %v", err)
	}
	snap := m.Usage().Snapshot()
	if snap.SessionsTotal != 1 || snap.SessionsActive != 1 {
		t.Fatalf("after open: total=%d active=%d, want 1/1", snap.SessionsTotal, snap.SessionsActive)
	}

	m.unregister(s)
	snap = m.Usage().Snapshot()
	if snap.SessionsTotal != 1 || snap.SessionsActive != 0 {
		t.Fatalf("after close: total=%d active=%d, want 1/0", snap.SessionsTotal, snap.SessionsActive)
	}

	// Unregistering twice must not skew the counters.
	m.unregister(s)
	if got := m.Usage().Snapshot().SessionsActive; got != 0 {
		t.Fatalf("double unregister left active=%d", got)
	}
}

func TestUsageTurnCounters(t *testing.T) {
	u := &Usage{}
	u.CountMessage()
	u.CountMessage()
	u.CountReplies(3)
	u.CountOrder()

	snap := u.Snapshot()
	if snap.Messages != 2 {
		t.Errorf("Messages = %d, want 2", snap.Messages)
	}
	if snap.Replies != 3 {
		t.Errorf("Replies = %d, want 3", snap.Replies)
	}
	if snap.Orders != 1 {
		t.Errorf("Orders = %d, want 1", snap.Orders)
	}
}
