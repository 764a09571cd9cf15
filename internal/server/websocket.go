package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/conneroisu/docgrid/internal/config"
	"github.com/conneroisu/docgrid/internal/logging"
)

// writeWait bounds a single reload message write to a peer.
const writeWait = 10 * time.Second

// reloadMessage is the JSON payload pushed to browsers.
type reloadMessage struct {
	Type string `json:"type"`
}

// wsHub tracks connected browsers and broadcasts reload messages.
type wsHub struct {
	config  *config.Config
	logger  logging.Logger
	clients map[*websocket.Conn]struct{}
	mutex   sync.Mutex
}

func newWSHub(cfg *config.Config, logger logging.Logger) *wsHub {
	return &wsHub{
		config:  cfg,
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

func (h *wsHub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Validate origin before accepting the connection
	if !h.checkOrigin(r) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Origin already validated by checkOrigin
	})
	if err != nil {
		h.logger.Warn(r.Context(), err, "websocket upgrade failed")
		return
	}

	h.register(conn)
	defer h.unregister(conn)

	// Hold the connection open; browsers never send application messages,
	// so the first read returns only on close.
	for {
		if _, _, err := conn.Read(r.Context()); err != nil {
			return
		}
	}
}

// checkOrigin validates the request origin for security
func (h *wsHub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Reject connections without an origin header
		return false
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return false
	}

	allowedOrigins := append([]string{
		fmt.Sprintf("%s:%d", h.config.Server.Host, h.config.Server.Port),
		fmt.Sprintf("localhost:%d", h.config.Server.Port),
		fmt.Sprintf("127.0.0.1:%d", h.config.Server.Port),
	}, h.config.Server.AllowedOrigins...)

	for _, allowed := range allowedOrigins {
		if originURL.Host == allowed {
			return true
		}
	}

	return false
}

func (h *wsHub) register(conn *websocket.Conn) {
	h.mutex.Lock()
	h.clients[conn] = struct{}{}
	count := len(h.clients)
	h.mutex.Unlock()

	h.logger.Debug(context.Background(), "client connected", "total", count)
}

func (h *wsHub) unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	delete(h.clients, conn)
	count := len(h.clients)
	h.mutex.Unlock()

	conn.Close(websocket.StatusNormalClosure, "")
	h.logger.Debug(context.Background(), "client disconnected", "total", count)
}

func (h *wsHub) clientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// broadcast sends a message to every connected client. Failed writes drop
// the client; its read loop cleans up on the closed connection.
func (h *wsHub) broadcast(ctx context.Context, message reloadMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error(ctx, err, "encoding reload message")
		return
	}

	h.mutex.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mutex.Unlock()

	for _, conn := range conns {
		writeCtx, cancel := context.WithTimeout(ctx, writeWait)
		if err := conn.Write(writeCtx, websocket.MessageText, data); err != nil {
			h.logger.Debug(ctx, "dropping unresponsive client", "error", err.Error())
			conn.Close(websocket.StatusPolicyViolation, "write timeout")
		}
		cancel()
	}
}
