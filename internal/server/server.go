package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/game"
)

// ErrServerStopped is returned when the hub is no longer running
var ErrServerStopped = errors.New("server stopped")

type frame struct {
	conn ConnID
	data []byte
}

// Server is the websocket front end and the hub that owns all game state.
// Every connection event, inbound frame, timer expiry and query runs on the
// hub goroutine (Run), one at a time, so game state is never shared.
type Server struct {
	config     Config
	logger     *log.Logger
	upgrader   websocket.Upgrader
	clock      quartz.Clock
	httpServer *http.Server
	stats      *StatsCollector
	monitors   []RoundMonitor

	store       *game.Store
	registry    *Registry
	broadcaster *Broadcaster
	router      *Router

	// Hub-owned
	connections map[ConnID]*Connection

	register   chan *Connection
	unregister chan *Connection
	incoming   chan frame
	tasks      chan func()
	done       chan struct{}
}

// Option configures a Server
type Option func(*Server)

// WithConfig replaces the default configuration
func WithConfig(cfg Config) Option {
	return func(s *Server) {
		s.config = cfg
	}
}

// WithClock sets the clock driving round timeouts
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithMonitor adds a round monitor alongside the built-in stats collector
func WithMonitor(monitor RoundMonitor) Option {
	return func(s *Server) {
		s.monitors = append(s.monitors, monitor)
	}
}

// NewServer creates a server whose shuffles are drawn from rng
func NewServer(logger *log.Logger, rng *rand.Rand, opts ...Option) *Server {
	s := &Server{
		config: DefaultConfig(),
		logger: logger.WithPrefix("hub"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Browser clients are served from elsewhere
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clock:       quartz.NewReal(),
		stats:       NewStatsCollector(),
		connections: make(map[ConnID]*Connection),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		incoming:    make(chan frame),
		tasks:       make(chan func()),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.store = game.NewStore(s.config.StartingCredits, s.config.Rooms...)
	s.registry = NewRegistry()
	s.broadcaster = NewBroadcaster(s.registry, s, logger)
	s.router = NewRouter(s.store, game.NewEngine(rng), s.registry, s.broadcaster, logger)
	s.router.SetRoundTimer(NewRoundTimer(s.clock, s.config.RoundTimeout, s.expireRound))
	s.router.SetMonitor(NewMultiRoundMonitor(append([]RoundMonitor{s.stats}, s.monitors...)...))

	s.httpServer = &http.Server{
		Addr:    s.config.Address,
		Handler: s.Handler(),
	}

	return s
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/rooms", s.handleRooms)
	mux.HandleFunc("/stats", s.handleStats)
	return mux
}

// ListenAndServe serves HTTP on the configured address
func (s *Server) ListenAndServe() error {
	s.logger.Info("Starting WebSocket server", "addr", s.config.Address, "rooms", s.config.Rooms)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting HTTP requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Run processes hub events until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	defer close(s.done)

	for {
		select {
		case conn := <-s.register:
			s.connections[conn.ID()] = conn
			s.logger.Info("Client connected", "conn", conn.ID(), "total", len(s.connections))

		case conn := <-s.unregister:
			if _, ok := s.connections[conn.ID()]; !ok {
				continue
			}
			delete(s.connections, conn.ID())
			_ = conn.Close()
			s.broadcaster.Publish(s.router.Disconnect(conn.ID())...)
			s.logger.Info("Client disconnected", "conn", conn.ID(), "total", len(s.connections))

		case f := <-s.incoming:
			msg, err := DecodeInbound(f.data)
			if err != nil {
				s.logger.Warn("Dropping message", "conn", f.conn, "error", err)
				continue
			}
			s.broadcaster.Publish(s.router.Handle(f.conn, msg)...)

		case task := <-s.tasks:
			task()

		case <-ctx.Done():
			for id, conn := range s.connections {
				_ = conn.Close()
				delete(s.connections, id)
			}
			s.logger.Info("Hub stopped")
			return nil
		}
	}
}

// Deliver implements Outbox. Called on the hub goroutine.
func (s *Server) Deliver(id ConnID, payload []byte) {
	if conn, ok := s.connections[id]; ok {
		conn.Send(payload)
	}
}

// do runs fn on the hub goroutine and waits for it to finish
func (s *Server) do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}

	select {
	case s.tasks <- task:
	case <-s.done:
		return ErrServerStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Rooms returns a summary of every room, computed on the hub
func (s *Server) Rooms(ctx context.Context) ([]RoomSummary, error) {
	var rooms []RoomSummary
	err := s.do(ctx, func() {
		rooms = s.router.Rooms()
	})
	return rooms, err
}

func (s *Server) expireRound(room string, generation uint64) {
	task := func() {
		s.broadcaster.Publish(s.router.Expire(room, generation)...)
	}
	select {
	case s.tasks <- task:
	case <-s.done:
	}
}

func (s *Server) receive(id ConnID, data []byte) bool {
	select {
	case s.incoming <- frame{conn: id, data: data}:
		return true
	case <-s.done:
		return false
	}
}

func (s *Server) leave(conn *Connection) {
	select {
	case s.unregister <- conn:
	case <-s.done:
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(ws, s, s.logger)
	select {
	case s.register <- conn:
	case <-s.done:
		_ = conn.Close()
		return
	}
	conn.Start()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// handleRooms lists rooms as JSON
func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.Rooms(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rooms); err != nil {
		s.logger.Error("Failed to encode rooms", "error", err)
	}
}

// handleStats reports per-room round totals as JSON
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.stats.Snapshot()); err != nil {
		s.logger.Error("Failed to encode stats", "error", err)
	}
}
