package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/httputil"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/logging"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/order"
)

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Uptime   string `json:"uptime"`
}

type connectionDetailsRequest struct {
	SandboxID string `json:"sandbox_id"`
	AgentName string `json:"agent_name"`
}

type connectionDetailsResponse struct {
	WSURL       string `json:"ws_url"`
	SessionHint string `json:"session_hint"`
	SandboxID   string `json:"sandbox_id,omitempty"`
	AgentName   string `json:"agent_name"`
}

type receiptsResponse struct {
	Receipts []order.Receipt `json:"receipts"`
	Count    int             `json:"count"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Sessions: s.manager.Active(),
		Uptime:   time.Since(s.started).Round(time.Second).String(),
	})
}

// handleConfig serves the front-end configuration. Optional fields stay
// absent rather than appearing as empty strings.
func (s *Service) handleConfig(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, s.cfg)
}

// handleConnectionDetails hands a client everything it needs to open a
// session: the WebSocket URL, a hint it may present as its session
// identity, and the resolved agent name.
func (s *Service) handleConnectionDetails(w http.ResponseWriter, r *http.Request) {
	var req connectionDetailsRequest
	if r.ContentLength > 0 {
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	agentName := req.AgentName
	if agentName == "" {
		agentName = s.eff.AgentName
	}
	sandboxID := req.SandboxID
	if sandboxID == "" {
		sandboxID = s.eff.SandboxID
	}

	httputil.WriteJSON(w, http.StatusOK, connectionDetailsResponse{
		WSURL:       s.wsURL(r),
		SessionHint: uuid.New().String(),
		SandboxID:   sandboxID,
		AgentName:   agentName,
	})
}

// wsURL yields the advertised session endpoint, deriving it from the
// request when no explicit advertise URL was configured.
func (s *Service) wsURL(r *http.Request) string {
	if s.advertise != "" {
		return s.advertise
	}
	scheme := "ws"
	if r.TLS != nil {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s/v1/session", scheme, r.Host)
}

func (s *Service) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := s.store.ListReceipts(r.Context())
	if err != nil {
		s.log.ComponentError(logging.ComponentStore, "list receipts", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "could not list receipts")
		return
	}
	if limit := httputil.QueryInt(r, "limit", 0); limit > 0 && len(receipts) > limit {
		receipts = receipts[:limit]
	}
	httputil.WriteJSON(w, http.StatusOK, receiptsResponse{Receipts: receipts, Count: len(receipts)})
}

func (s *Service) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	rec, err := s.store.GetReceipt(r.Context(), file)
	switch {
	case errors.Is(err, order.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, "no such receipt")
	case err != nil:
		s.log.ComponentError(logging.ComponentStore, "get receipt",
			zap.String("file", file), zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "could not read receipt")
	default:
		httputil.WriteJSON(w, http.StatusOK, rec)
	}
}

// handleMetrics emits plaintext gauges, one "name value" pair per line.
func (s *Service) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap := s.manager.Usage().Snapshot()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "ember_sessions_active %d\n", snap.SessionsActive)
	fmt.Fprintf(w, "ember_sessions_total %d\n", snap.SessionsTotal)
	fmt.Fprintf(w, "ember_messages_total %d\n", snap.Messages)
	fmt.Fprintf(w, "ember_replies_total %d\n", snap.Replies)
	fmt.Fprintf(w, "ember_orders_total %d\n", snap.Orders)
	fmt.Fprintf(w, "ember_uptime_seconds %d\n", int64(time.Since(s.started).Seconds()))
}

// handleSession upgrades to WebSocket and hands the connection to the
// session manager, which blocks here for the session's lifetime.
func (s *Service) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		s.log.ComponentWarn(logging.ComponentService, "websocket upgrade failed", zap.Error(err))
		return
	}
	if err := s.manager.Serve(conn); err != nil {
		s.log.ComponentDebug(logging.ComponentService, "session ended", zap.Error(err))
	}
}
