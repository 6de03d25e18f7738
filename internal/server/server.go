package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/physics2d/internal/core/config"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/core/physics/scene"
	"github.com/zeusync/physics2d/internal/demos"
	"github.com/zeusync/physics2d/internal/render"
)

const clientBuffer = 16

// Server runs one scene at a fixed tick rate, streams snapshots to every
// websocket client and feeds client inputs back into the scene. Only the tick
// goroutine touches the scene.
type Server struct {
	cfg      config.ServerConfig
	dt       float64
	substeps int

	scene *scene.Scene
	demo  demos.Demo

	upgrader websocket.Upgrader
	inputs   chan Input

	mu          sync.Mutex
	clients     map[*client]struct{}
	clientCount atomic.Int64
	addr        net.Addr

	tick    atomic.Uint64
	running atomic.Bool
	closed  atomic.Bool
	done    chan struct{}

	logger log.Log
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// NewServer serves sc. d may be nil, in which case control inputs are
// rejected and the scene only steps.
func NewServer(cfg *config.Config, sc *scene.Scene, d demos.Demo, logger log.Log) *Server {
	if logger == nil {
		logger = log.Provide()
	}
	return &Server{
		cfg:      cfg.Server,
		dt:       cfg.Dt(),
		substeps: cfg.Simulation.Substeps,
		scene:    sc,
		demo:     d,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		inputs:  make(chan Input, cfg.Server.InputBuffer),
		clients: make(map[*client]struct{}),
		done:    make(chan struct{}),
		logger:  logger.With(log.String("component", "server")),
	}
}

// Handler serves /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Run listens on the configured address and blocks until ctx is cancelled or
// Close is called.
func (s *Server) Run(ctx context.Context) error {
	if s.closed.Load() {
		return ErrServerClosed
	}
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerAlreadyRunning
	}
	defer s.running.Store(false)

	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	s.logger.Info("Server started", log.String("addr", ln.Addr().String()))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Loop(ctx)
	})
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-ctx.Done():
		case <-s.done:
		}
		_ = s.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout.Std())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	s.logger.Info("Server stopped", log.Error(err))
	return err
}

// Addr is the listening address, or nil before Run has bound it.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Close disconnects every client and stops Run and Loop. A closed server
// cannot be restarted.
func (s *Server) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrServerClosed
	}
	close(s.done)

	s.mu.Lock()
	for c := range s.clients {
		_ = c.conn.Close()
	}
	s.mu.Unlock()
	return nil
}

func (s *Server) ClientCount() int { return int(s.clientCount.Load()) }

// Loop steps the scene once per tick, applying queued inputs first, and
// broadcasts a snapshot at the configured snapshot rate.
func (s *Server) Loop(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(s.dt * float64(time.Second)))
	defer ticker.Stop()

	every := max(1, int(math.Round(1/(s.dt*float64(s.cfg.SnapshotRate)))))
	s.broadcast(render.Capture(s.scene))

	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		case <-ticker.C:
		}

		s.drain()
		if s.demo != nil {
			if err := s.demo.Update(s.scene, s.dt); err != nil {
				return fmt.Errorf("update %s: %w", s.demo.Name(), err)
			}
		}
		s.scene.Step(s.dt, s.substeps)
		s.tick.Store(s.scene.TickCount())

		if n%every == 0 {
			s.broadcast(render.Capture(s.scene))
		}
	}
}

func (s *Server) drain() {
	for {
		select {
		case in := <-s.inputs:
			if err := in.apply(s.scene, s.demo); err != nil {
				s.logger.Warn("Input rejected", log.String("op", string(in.Op)), log.Error(err))
			}
		default:
			return
		}
	}
}

func (s *Server) broadcast(snap render.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("Failed to encode snapshot", log.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.logger.Debug("Snapshot dropped", log.String("client_id", c.id.String()), log.Uint64("tick", snap.Tick))
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	health := map[string]any{
		"clients": s.ClientCount(),
		"tick":    s.tick.Load(),
		"closed":  s.closed.Load(),
	}
	if b := s.scene.Bus(); b != nil {
		health["events"] = b.Metrics()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(health)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.closed.Load() {
		http.Error(w, ErrServerClosed.Error(), http.StatusServiceUnavailable)
		return
	}
	if s.cfg.Token != "" && r.URL.Query().Get("token") != s.cfg.Token {
		s.logger.Warn("Client rejected", log.String("remote_addr", r.RemoteAddr), log.Error(ErrUnauthorized))
		http.Error(w, ErrUnauthorized.Error(), http.StatusUnauthorized)
		return
	}
	if s.clientCount.Add(1) > int64(s.cfg.MaxClients) {
		s.clientCount.Add(-1)
		s.logger.Warn("Client rejected", log.String("remote_addr", r.RemoteAddr), log.Error(ErrMaxClientsReached))
		http.Error(w, ErrMaxClientsReached.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.clientCount.Add(-1)
		s.logger.Warn("Upgrade failed", log.String("remote_addr", r.RemoteAddr), log.Error(err))
		return
	}

	c := &client{id: uuid.New(), conn: conn, send: make(chan []byte, clientBuffer)}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	s.logger.Info("Client connected",
		log.String("client_id", c.id.String()),
		log.String("remote_addr", r.RemoteAddr),
		log.Int64("clients", s.clientCount.Load()),
	)

	go s.writePump(c)
	s.readPump(c)

	s.mu.Lock()
	delete(s.clients, c)
	close(c.send)
	s.mu.Unlock()
	s.clientCount.Add(-1)
	s.logger.Info("Client disconnected", log.String("client_id", c.id.String()))
}

func (s *Server) readPump(c *client) {
	c.conn.SetReadLimit(s.cfg.ReadLimit)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("Read failed", log.String("client_id", c.id.String()), log.Error(err))
			}
			return
		}

		var in Input
		if err := json.Unmarshal(data, &in); err != nil {
			s.reject(c, fmt.Errorf("%w: %w", ErrInvalidMessage, err))
			continue
		}
		if err := in.Validate(); err != nil {
			s.reject(c, err)
			continue
		}

		select {
		case s.inputs <- in:
		case <-s.done:
			return
		}
	}
}

func (s *Server) reject(c *client, err error) {
	data, _ := json.Marshal(reply{Error: err.Error()})
	select {
	case c.send <- data:
	default:
	}
}

func (s *Server) writePump(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout.Std()))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Debug("Write failed", log.String("client_id", c.id.String()), log.Error(err))
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
}
