// Package service exposes the agent over HTTP: configuration for
// front-ends, a WebSocket session endpoint, and operational routes.
package service

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/appconfig"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/logging"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/order"
	"github.com/Prthmsh7/Coffee-Shop-Barista-Ai-Agent/internal/session"
)

// requestTimeout bounds the plain HTTP routes. The session route is
// long-lived and stays outside it.
const requestTimeout = 10 * time.Second

// Config carries the service's dependencies.
type Config struct {
	// AppConfig is served verbatim on /v1/config.
	AppConfig appconfig.AppConfig
	// AdvertiseURL overrides the WebSocket URL handed out by
	// /v1/connection-details. Empty derives it from the request host.
	AdvertiseURL string

	Manager *session.Manager
	Store   order.Store
	Logger  *logging.Logger
}

// Service is the emberd HTTP surface.
type Service struct {
	cfg       appconfig.AppConfig
	eff       appconfig.Effective
	advertise string
	manager   *session.Manager
	store     order.Store
	log       *logging.Logger
	started   time.Time
	upgrader  websocket.Upgrader
}

// New builds the service.
func New(cfg Config) *Service {
	return &Service{
		cfg:       cfg.AppConfig,
		eff:       appconfig.Resolve(cfg.AppConfig),
		advertise: cfg.AdvertiseURL,
		manager:   cfg.Manager,
		store:     cfg.Store,
		log:       cfg.Logger,
		started:   time.Now(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Front-ends are terminals and local pages; origin
			// checks would only lock out the TUI.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Router assembles the chi routes.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get("/healthz", s.handleHealth)
		r.Get("/metrics", s.handleMetrics)
		r.Get("/v1/config", s.handleConfig)
		r.Post("/v1/connection-details", s.handleConnectionDetails)
		r.Get("/v1/receipts", s.handleListReceipts)
		r.Get("/v1/receipts/{file}", s.handleGetReceipt)
	})

	r.Get("/v1/session", s.handleSession)
	return r
}
