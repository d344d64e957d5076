package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/contracts"
	"github.com/hilthontt/chatrelay/internal/infrastructure/logging"
	"github.com/hilthontt/chatrelay/internal/infrastructure/messaging"
)

const publishTimeout = 5 * time.Second

type Publisher interface {
	PublishMessage(ctx context.Context, routingKey string, message contracts.AmqpMessage) error
}

type PublishRecorder interface {
	EventPublished(result string)
}

// ChannelPublisher forwards registry lifecycle events to the broker. Observe
// only enqueues; Run does the publishing on its own goroutine, so a slow
// broker never stalls the registry.
type ChannelPublisher struct {
	publisher Publisher
	queue     chan domain.ChannelEvent
	logger    logging.Logger
	recorder  PublishRecorder
}

func NewChannelPublisher(publisher Publisher, queueSize int, logger logging.Logger, recorder PublishRecorder) *ChannelPublisher {
	return &ChannelPublisher{
		publisher: publisher,
		queue:     make(chan domain.ChannelEvent, queueSize),
		logger:    logger,
		recorder:  recorder,
	}
}

func (p *ChannelPublisher) Observe(event domain.ChannelEvent) {
	select {
	case p.queue <- event:
	default:
		p.record("dropped")
		p.logger.Warn(logging.RabbitMQ, logging.Publish, "event queue full, dropping event", map[logging.ExtraKey]any{
			logging.EventType: event.Type,
			logging.ChannelID: event.ChannelID,
		})
	}
}

// Run publishes queued events until ctx is done, then flushes what is left.
func (p *ChannelPublisher) Run(ctx context.Context) {
	for {
		select {
		case event := <-p.queue:
			p.publishOne(ctx, event)
		case <-ctx.Done():
			p.drain()
			return
		}
	}
}

func (p *ChannelPublisher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	for {
		select {
		case event := <-p.queue:
			p.publishOne(ctx, event)
		default:
			return
		}
	}
}

func (p *ChannelPublisher) publishOne(ctx context.Context, event domain.ChannelEvent) {
	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.Publish(publishCtx, event); err != nil {
		p.record("error")
		p.logger.Error(logging.RabbitMQ, logging.Publish, "failed to publish event", map[logging.ExtraKey]any{
			logging.EventType:    event.Type,
			logging.ErrorMessage: err.Error(),
		})
		return
	}
	p.record("ok")
}

func (p *ChannelPublisher) Publish(ctx context.Context, event domain.ChannelEvent) error {
	routingKey, ok := contracts.RoutingKey(event.Type)
	if !ok {
		return fmt.Errorf("no routing key for event type %q", event.Type)
	}

	data, err := json.Marshal(messaging.ChannelEventData{Event: event})
	if err != nil {
		return err
	}

	return p.publisher.PublishMessage(ctx, routingKey, contracts.AmqpMessage{
		OwnerID: strconv.FormatUint(uint64(event.ParticipantID), 10),
		Data:    data,
	})
}

func (p *ChannelPublisher) record(result string) {
	if p.recorder != nil {
		p.recorder.EventPublished(result)
	}
}
