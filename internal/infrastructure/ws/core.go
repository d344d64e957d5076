package ws

import (
	"context"
	"time"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/logging"
	"github.com/hilthontt/chatrelay/internal/infrastructure/metrics"
	"github.com/hilthontt/chatrelay/internal/infrastructure/ratelimiter"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Event is one inbound frame from a client. Err is set when the frame was
// rejected before reaching the registry.
type Event struct {
	Client  *Client
	Inbound Inbound
	Err     error
}

type Recorder interface {
	ConnectionOpened()
	ConnectionClosed()
	InboundEvent(eventType, result string, took time.Duration)
	Delivery(result string)
}

type nopRecorder struct{}

func (nopRecorder) ConnectionOpened() {}

func (nopRecorder) ConnectionClosed() {}

func (nopRecorder) InboundEvent(string, string, time.Duration) {}

func (nopRecorder) Delivery(string) {}

type CoreOptions struct {
	Registry *domain.Registry
	Logger   logging.Logger
	Metrics  Recorder
	Tracer   trace.Tracer

	// InboundLimit frames per InboundWindow are accepted from each client.
	InboundLimit  int
	InboundWindow time.Duration
}

// Core is the single event loop that owns every connected client. Connects,
// disconnects and inbound frames are applied to the registry in arrival
// order, and Core is the registry's MessageSink.
type Core struct {
	registry *domain.Registry
	clients  map[domain.ParticipantID]*Client

	register   chan *Client
	unregister chan *Client
	inbound    chan Event
	done       chan struct{}

	limiter *ratelimiter.FixedWindow
	logger  logging.Logger
	metrics Recorder
	tracer  trace.Tracer
}

func NewCore(opts CoreOptions) *Core {
	if opts.Registry == nil {
		opts.Registry = domain.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = nopRecorder{}
	}
	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer("ws")
	}

	c := &Core{
		registry:   opts.Registry,
		clients:    make(map[domain.ParticipantID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan Event, 256),
		done:       make(chan struct{}),
		logger:     opts.Logger,
		metrics:    opts.Metrics,
		tracer:     opts.Tracer,
	}

	if opts.InboundLimit > 0 && opts.InboundWindow > 0 {
		c.limiter = ratelimiter.NewFixedWindow(opts.InboundLimit, opts.InboundWindow)
	}

	return c
}

func (c *Core) Run(ctx context.Context) {
	defer close(c.done)

	for {
		select {
		case cl := <-c.register:
			c.handleRegister(cl)

		case cl := <-c.unregister:
			c.handleUnregister(cl)

		case ev := <-c.inbound:
			c.handleEvent(ctx, ev)

		case <-ctx.Done():
			c.shutdown()
			return
		}
	}
}

// Register blocks until the core has assigned the client a participant. It
// reports false once the core has stopped.
func (c *Core) Register(cl *Client) bool {
	select {
	case c.register <- cl:
		return true
	case <-c.done:
		return false
	}
}

func (c *Core) Unregister(cl *Client) {
	select {
	case c.unregister <- cl:
	case <-c.done:
	}
}

func (c *Core) Submit(ev Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.inbound <- ev:
		return true
	case <-c.done:
		return false
	}
}

func (c *Core) Done() <-chan struct{} {
	return c.done
}

// Deliver implements domain.MessageSink. It runs on the event loop with the
// registry locked and never blocks: a full queue drops the frame.
func (c *Core) Deliver(recipient domain.ParticipantID, msg domain.Message) {
	cl, ok := c.clients[recipient]
	if !ok {
		c.metrics.Delivery(metrics.DeliveryOffline)
		return
	}

	if c.enqueue(cl, NewMessage(msg)) {
		c.metrics.Delivery(metrics.DeliveryQueued)
		return
	}

	c.metrics.Delivery(metrics.DeliveryDropped)
	c.logger.Warn(logging.WebSocket, logging.Delivery, "send queue full, dropping message", map[logging.ExtraKey]any{
		logging.ParticipantID: recipient,
		logging.ChannelID:     msg.ChannelID(),
	})
}

func (c *Core) enqueue(cl *Client, frame *OutboundFrame) bool {
	select {
	case cl.send <- frame:
		return true
	default:
		return false
	}
}

func (c *Core) allowInbound(sessionID string) bool {
	if c.limiter == nil {
		return true
	}
	ok, _ := c.limiter.Allow(sessionID)
	return ok
}

func (c *Core) handleRegister(cl *Client) {
	cl.participantID = c.registry.AddParticipant()
	c.clients[cl.participantID] = cl
	c.metrics.ConnectionOpened()

	c.logger.Info(logging.WebSocket, logging.Connect, "participant connected", map[logging.ExtraKey]any{
		logging.ParticipantID: cl.participantID,
		logging.SessionID:     cl.SessionID,
	})
}

func (c *Core) handleUnregister(cl *Client) {
	if c.clients[cl.participantID] != cl {
		return
	}

	c.disconnect(cl)

	c.logger.Info(logging.WebSocket, logging.Disconnect, "participant disconnected", map[logging.ExtraKey]any{
		logging.ParticipantID: cl.participantID,
		logging.SessionID:     cl.SessionID,
	})
}

func (c *Core) disconnect(cl *Client) {
	if err := c.registry.RemoveParticipant(cl.participantID); err != nil {
		c.logger.Error(logging.Registry, logging.Disconnect, "failed to remove participant", map[logging.ExtraKey]any{
			logging.ParticipantID: cl.participantID,
			logging.ErrorMessage:  err.Error(),
		})
	}

	delete(c.clients, cl.participantID)
	close(cl.send)
	c.metrics.ConnectionClosed()

	if c.limiter != nil {
		c.limiter.Forget(cl.SessionID)
	}
}

func (c *Core) handleEvent(ctx context.Context, ev Event) {
	cl := ev.Client
	if c.clients[cl.participantID] != cl {
		// already disconnected
		return
	}

	start := time.Now()
	eventType := ev.Inbound.Type

	if ev.Err != nil {
		if eventType == "" {
			eventType = "invalid"
		}
		c.enqueue(cl, NewError(errorDescription(ev.Err)))
		c.metrics.InboundEvent(eventType, metrics.ResultRejected, time.Since(start))
		c.logger.Debug(logging.WebSocket, logging.Inbound, "frame rejected", map[logging.ExtraKey]any{
			logging.ParticipantID: cl.participantID,
			logging.ErrorMessage:  ev.Err.Error(),
		})
		return
	}

	_, span := c.tracer.Start(ctx, "ws."+eventType, trace.WithAttributes(
		attribute.Int64("chat.participant_id", int64(cl.participantID)),
		attribute.Int64("chat.channel_id", int64(ev.Inbound.ChannelID)),
	))
	defer span.End()

	err := c.apply(cl, ev.Inbound)

	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.enqueue(cl, NewError(errorDescription(err)))
	}

	c.metrics.InboundEvent(eventType, result, time.Since(start))
}

func (c *Core) apply(cl *Client, in Inbound) error {
	switch in.Type {
	case JoinChannel:
		if err := c.registry.JoinChannel(cl.participantID, in.ChannelID); err != nil {
			return err
		}
		c.enqueue(cl, NewJoinChannelSuccess(cl.participantID, in.ChannelID))
		return nil

	case SendMessage:
		_, err := c.registry.SendMessage(cl.participantID, in.ChannelID, in.Content, in.SentAt, c)
		return err

	case LeaveChannel:
		return c.registry.LeaveChannel(cl.participantID, in.ChannelID)

	default:
		return ErrMalformedFrame
	}
}

// shutdown disconnects every remaining client so their write pumps send a
// close frame and the registry ends empty.
func (c *Core) shutdown() {
	for _, cl := range c.clients {
		c.disconnect(cl)
	}

	if c.limiter != nil {
		c.limiter.Close()
	}

	c.logger.Info(logging.WebSocket, logging.Shutdown, "chat core stopped", nil)
}
