package chat

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hilthontt/chatrelay/internal/infrastructure/logging"
	"github.com/hilthontt/chatrelay/internal/infrastructure/ws"
	"github.com/samber/lo"
)

type Config struct {
	ReadBufferSize  int
	WriteBufferSize int
	AllowedOrigins  []string
	Client          ws.ClientConfig
}

type Handler struct {
	core     *ws.Core
	upgrader websocket.Upgrader
	cfg      Config
	logger   logging.Logger
}

func NewHandler(core *ws.Core, cfg Config, logger logging.Logger) *Handler {
	return &Handler{
		core: core,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
		cfg:    cfg,
		logger: logger,
	}
}

// originChecker accepts requests without an Origin header, any origin when
// "*" is configured, and otherwise only the listed origins.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || lo.Contains(allowed, "*") {
			return true
		}
		return lo.Contains(allowed, origin)
	}
}

// ChatHandler godoc
// @Summary      Chat connection
// @Description  Upgrades to a WebSocket. Each connection is one participant; frames are JSON objects of the form {"type": "joinChannel"|"sendMessage"|"leaveChannel", "payload": {...}}.
// @Tags         chat
// @Success      101 "Switching Protocols"
// @Failure      400 "Not a WebSocket handshake"
// @Router       /chat [get]
func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		h.logger.Warn(logging.WebSocket, logging.Connect, "upgrade failed", map[logging.ExtraKey]any{
			logging.ClientIp:     r.RemoteAddr,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	client := ws.NewClient(conn, h.cfg.Client)
	if !h.core.Register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "server shutting down"))
		_ = conn.Close()
		return
	}

	go client.WritePump(h.core)
	go client.ReadPump(h.core)
}

// HelloHandler godoc
// @Summary      Liveness greeting
// @Tags         chat
// @Produce      plain
// @Success      200 {string} string "Hello world"
// @Router       /hello [get]
func (h *Handler) HelloHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hello world"))
}

// HelloWSHandler godoc
// @Summary      WebSocket echo
// @Description  Replies to every text frame with "Hello world: " followed by the frame
// @Tags         chat
// @Success      101 "Switching Protocols"
// @Router       /hello-ws [get]
func (h *Handler) HelloWSHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.SetReadLimit(h.cfg.Client.MaxMessageSize)

	for {
		messageType, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, append([]byte("Hello world: "), raw...)); err != nil {
			return
		}
	}
}
