// Package httpapi exposes the room service over HTTP and streams live room
// views over WebSocket.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/KirkDiggler/yachtie/internal/scoring"
	"github.com/KirkDiggler/yachtie/internal/services/feed"
	roomService "github.com/KirkDiggler/yachtie/internal/services/room"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	defaultWaitTimeout  = 5 * time.Second
	defaultPingInterval = 30 * time.Second
	writeWait           = 10 * time.Second
)

// RoomFeed hands out shared room subscriptions
type RoomFeed interface {
	Acquire(ctx context.Context, roomID string) (*feed.Handle, error)
	Stats() map[string]int
}

// Config holds configuration for the HTTP handler
type Config struct {
	RoomService roomService.Service
	Feed        RoomFeed

	// Optional, defaults to the standard bonus rules
	Calculator *scoring.Calculator

	// WaitTimeout bounds the first room load of a stream
	WaitTimeout time.Duration

	// PingInterval is how often idle streams are pinged
	PingInterval time.Duration

	Logger zerolog.Logger
}

// Handler serves the HTTP API
type Handler struct {
	rooms        roomService.Service
	feed         RoomFeed
	calculator   *scoring.Calculator
	waitTimeout  time.Duration
	pingInterval time.Duration
	upgrader     websocket.Upgrader
	log          zerolog.Logger
}

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RoomService == nil {
		return nil, errors.New("room service cannot be nil")
	}
	if cfg.Feed == nil {
		return nil, errors.New("feed cannot be nil")
	}

	h := &Handler{
		rooms:        cfg.RoomService,
		feed:         cfg.Feed,
		calculator:   cfg.Calculator,
		waitTimeout:  cfg.WaitTimeout,
		pingInterval: cfg.PingInterval,
		log:          cfg.Logger.With().Str("component", "http").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// rooms are shared by link, any origin may watch
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	if h.calculator == nil {
		h.calculator = scoring.NewCalculator(scoring.DefaultConfig())
	}
	if h.waitTimeout <= 0 {
		h.waitTimeout = defaultWaitTimeout
	}
	if h.pingInterval <= 0 {
		h.pingInterval = defaultPingInterval
	}

	return h, nil
}

// Routes returns the router for the API
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.healthz)
	r.Post("/dice/score", h.scoreDice)

	r.Route("/rooms", func(r chi.Router) {
		r.Post("/", h.createRoom)
		r.Get("/", h.listRooms)

		r.Route("/{roomID}", func(r chi.Router) {
			r.Get("/", h.getRoom)
			r.Delete("/", h.deleteRoom)
			r.Post("/players", h.joinRoom)
			r.Post("/start", h.startGame)
			r.Post("/scores", h.submitScore)
			r.Put("/scores", h.correctScore)
			r.Post("/restart", h.restartGame)
			r.Get("/ws", h.streamRoom)
		})
	})

	return r
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		h.log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	stats := h.feed.Stats()
	subscribers := 0
	for _, refs := range stats {
		subscribers += refs
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Rooms:       len(stats),
		Subscribers: subscribers,
	})
}
