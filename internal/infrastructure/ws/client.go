package ws

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/logging"
)

type ClientConfig struct {
	SendQueueSize  int
	MaxMessageSize int64
	WriteWait      time.Duration
	PongWait       time.Duration
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.SendQueueSize <= 0 {
		c.SendQueueSize = 256
	}
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}
	if c.PongWait <= 0 {
		c.PongWait = 60 * time.Second
	}
	return c
}

func (c ClientConfig) pingPeriod() time.Duration {
	return c.PongWait * 9 / 10
}

// Client is one chat connection. Its participant id is assigned and read
// only by the Core event loop.
type Client struct {
	conn      *connWrapper
	send      chan *OutboundFrame
	cfg       ClientConfig
	SessionID string

	participantID domain.ParticipantID
}

func NewClient(conn *websocket.Conn, cfg ClientConfig) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		conn:      newConnWrapper(conn),
		send:      make(chan *OutboundFrame, cfg.SendQueueSize), // buffered so slow clients never block the core
		cfg:       cfg,
		SessionID: uuid.NewString(),
	}
}

// ReadPump decodes inbound frames and hands them to the core until the
// connection fails, then unregisters the client.
func (c *Client) ReadPump(core *Core) {
	defer func() {
		core.Unregister(c)
		_ = c.conn.Close()
	}()

	conn := c.conn.conn
	conn.SetReadLimit(c.cfg.MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		messageType, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				core.logger.Warn(logging.WebSocket, logging.Inbound, "unexpected close", map[logging.ExtraKey]any{
					logging.SessionID:    c.SessionID,
					logging.ErrorMessage: err.Error(),
				})
			}
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		if !core.Submit(c.decode(core, raw)) {
			return
		}
	}
}

func (c *Client) decode(core *Core, raw []byte) Event {
	if !core.allowInbound(c.SessionID) {
		return Event{Client: c, Err: ErrRateLimited}
	}

	in, err := DecodeInbound(raw)
	return Event{Client: c, Inbound: in, Err: err}
}

// WritePump drains the send queue onto the connection and keeps it alive
// with pings. It returns when the core closes the queue or stops.
func (c *Client) WritePump(core *Core) {
	ticker := time.NewTicker(c.cfg.pingPeriod())
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), c.cfg.WriteWait)
				return
			}

			if err := c.conn.WriteJSON(frame, c.cfg.WriteWait); err != nil {
				core.logger.Debug(logging.WebSocket, logging.Delivery, "write failed", map[logging.ExtraKey]any{
					logging.SessionID:    c.SessionID,
					logging.ErrorMessage: err.Error(),
				})
				return
			}

		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, c.cfg.WriteWait); err != nil {
				return
			}

		case <-core.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), c.cfg.WriteWait)
			return
		}
	}
}
