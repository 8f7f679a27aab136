package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/orbisengine/orbis/internal/core/game"
	"github.com/orbisengine/orbis/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Snapshot is the stats payload streamed to inspector clients.
type Snapshot struct {
	Tick       int64 `json:"tick"`
	Entities   int   `json:"entities"`
	Processors int   `json:"processors"`
}

// Inspector serves a websocket endpoint that streams simulation snapshots
// on an interval. It never touches the ECS core directly: the source
// function hands it a snapshot the loop published atomically.
type Inspector struct {
	cfg    game.InspectorConfig
	source func() Snapshot
	log    log.Log

	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

// NewInspector creates an inspector. logger may be nil; the process logger
// is used then.
func NewInspector(cfg game.InspectorConfig, source func() Snapshot, logger log.Log) *Inspector {
	if logger == nil {
		logger = log.Provide()
	}
	return &Inspector{
		cfg:     cfg,
		source:  source,
		log:     logger,
		clients: make(map[string]*websocket.Conn),
	}
}

// Run serves until ctx is cancelled, then shuts down and disconnects all
// clients.
func (i *Inspector) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", i.handleWebSocket)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", i.cfg.Host, i.cfg.Port),
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		i.log.Info("inspector listening", log.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	interval := i.cfg.Interval.Std()
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			i.closeClients()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			return err
		case <-ticker.C:
			i.broadcast(i.source())
		}
	}
}

func (i *Inspector) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		i.log.Warn("inspector upgrade failed", log.Error(err))
		return
	}

	id := uuid.NewString()
	i.mu.Lock()
	i.clients[id] = conn
	i.mu.Unlock()
	i.log.Debug("inspector client connected",
		log.String("client", id),
		log.String("remote", conn.RemoteAddr().String()))

	// Inbound messages are ignored; the read loop only detects close.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		i.mu.Lock()
		delete(i.clients, id)
		i.mu.Unlock()
		_ = conn.Close()
		i.log.Debug("inspector client disconnected", log.String("client", id))
	}()
}

func (i *Inspector) broadcast(snap Snapshot) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for id, conn := range i.clients {
		if err := conn.WriteJSON(snap); err != nil {
			delete(i.clients, id)
			_ = conn.Close()
		}
	}
}

func (i *Inspector) closeClients() {
	i.mu.Lock()
	defer i.mu.Unlock()
	for id, conn := range i.clients {
		_ = conn.Close()
		delete(i.clients, id)
	}
}
