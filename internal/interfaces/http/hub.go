package http

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
)

// validationEvent is the payload pushed to live feed subscribers after each
// validation pass.
type validationEvent struct {
	ProposalID string                   `json:"proposal_id"`
	Teams      []string                 `json:"teams"`
	Result     *domain.ValidationResult `json:"result"`
	At         time.Time                `json:"at"`
}

// Hub fans validation results out to connected websocket clients. A slow
// client gets dropped rather than stalling the broadcast loop.
type Hub struct {
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan validationEvent
	done       chan struct{}

	mu      sync.Mutex
	stopped bool
}

// NewHub creates a hub; call Run on its own goroutine before broadcasting.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan validationEvent, 64),
		done:       make(chan struct{}),
	}
}

// Run owns the client set. It exits when Stop is called.
func (h *Hub) Run() {
	clients := make(map[*websocket.Conn]bool)

	for {
		select {
		case conn := <-h.register:
			clients[conn] = true
			log.Debug().Int("clients", len(clients)).Msg("feed client connected")

		case conn := <-h.unregister:
			if clients[conn] {
				delete(clients, conn)
				conn.Close()
			}

		case event := <-h.broadcast:
			for conn := range clients {
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteJSON(event); err != nil {
					delete(clients, conn)
					conn.Close()
				}
			}

		case <-h.done:
			for conn := range clients {
				conn.Close()
			}
			return
		}
	}
}

// Stop shuts the broadcast loop down and closes every client.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
}

// BroadcastValidation queues one result for delivery. Drops the event when
// the hub is backed up or stopped.
func (h *Hub) BroadcastValidation(p *domain.TradeProposal, result *domain.ValidationResult) {
	event := validationEvent{
		ProposalID: p.ID.String(),
		Teams:      p.Teams(),
		Result:     result,
		At:         time.Now(),
	}
	select {
	case h.broadcast <- event:
	default:
		log.Warn().Msg("feed backlog full, dropping validation event")
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1")
	},
}

// ServeWS handles GET /v1/trade/stream by upgrading the connection and
// registering it with the hub.
func (h *Handlers) ServeWS(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		h.writeError(w, http.StatusNotImplemented, "live feed disabled")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.hub.register <- conn

	// Reader goroutine detects disconnects; the feed is one-way.
	go func() {
		defer func() { h.hub.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
