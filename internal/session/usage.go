package session

import "sync/atomic"

// Usage collects service counters across all sessions. Safe for
// concurrent use; logged as a summary at shutdown and served by the
// metrics endpoint.
type Usage struct {
	sessionsTotal  atomic.Int64
	sessionsActive atomic.Int64
	messages       atomic.Int64
	replies        atomic.Int64
	orders         atomic.Int64
}

// UsageSnapshot is a point-in-time copy of the counters.
type UsageSnapshot struct {
	SessionsTotal  int64 `json:"sessions_total"`
	SessionsActive int64 `json:"sessions_active"`
	Messages       int64 `json:"messages"`
	Replies        int64 `json:"replies"`
	Orders         int64 `json:"orders"`
}

func (u *Usage) sessionOpened() {
	u.sessionsTotal.Add(1)
	u.sessionsActive.Add(1)
}

func (u *Usage) sessionClosed() {
	u.sessionsActive.Add(-1)
}

// CountMessage records one customer utterance.
func (u *Usage) CountMessage() {
	u.messages.Add(1)
}

// CountReplies records agent utterances sent back.
func (u *Usage) CountReplies(n int) {
	u.replies.Add(int64(n))
}

// CountOrder records one completed order.
func (u *Usage) CountOrder() {
	u.orders.Add(1)
}

// Snapshot returns a copy of all counters.
func (u *Usage) Snapshot() UsageSnapshot {
	return UsageSnapshot{
		SessionsTotal:  u.sessionsTotal.Load(),
		SessionsActive: u.sessionsActive.Load(),
		Messages:       u.messages.Load(),
		Replies:        u.replies.Load(),
		Orders:         u.orders.Load(),
	}
}
