package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/contracts"
	"github.com/hilthontt/chatrelay/internal/infrastructure/logging"
	"github.com/hilthontt/chatrelay/internal/infrastructure/messaging"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer interface {
	DeclareAndBindQueue(queueName string, routingKeys []string) error
	ConsumeMessages(ctx context.Context, queueName string, handler messaging.MessageHandler) error
}

// AuditConsumer writes every lifecycle event it receives into the audit
// repository and prunes entries older than the retention period.
type AuditConsumer struct {
	consumer  Consumer
	repo      domain.ChannelAuditRepository
	logger    logging.Logger
	retention time.Duration
	now       func() time.Time
}

func NewAuditConsumer(consumer Consumer, repo domain.ChannelAuditRepository, retention time.Duration, logger logging.Logger) *AuditConsumer {
	return &AuditConsumer{
		consumer:  consumer,
		repo:      repo,
		logger:    logger,
		retention: retention,
		now:       time.Now,
	}
}

func (c *AuditConsumer) Listen(ctx context.Context) error {
	if err := c.consumer.DeclareAndBindQueue(messaging.AuditQueue, contracts.AllRoutingKeys()); err != nil {
		return err
	}

	return c.consumer.ConsumeMessages(ctx, messaging.AuditQueue, c.Handle)
}

func (c *AuditConsumer) Handle(ctx context.Context, msg amqp091.Delivery) error {
	var message contracts.AmqpMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	var payload messaging.ChannelEventData
	if err := json.Unmarshal(message.Data, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal event data: %w", err)
	}

	if err := c.repo.Log(ctx, domain.NewChannelAuditLog(payload.Event)); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	c.logger.Debug(logging.MongoDB, logging.Audit, "audit log written", map[logging.ExtraKey]any{
		logging.EventType: payload.Event.Type,
		logging.ChannelID: payload.Event.ChannelID,
	})

	return nil
}

// Prune deletes audit entries older than the retention period. A zero
// retention keeps everything.
func (c *AuditConsumer) Prune(ctx context.Context) error {
	if c.retention <= 0 {
		return nil
	}
	return c.repo.DeleteOlderThan(ctx, c.now().Add(-c.retention))
}

func (c *AuditConsumer) RunPruner(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Prune(ctx); err != nil {
				c.logger.Error(logging.MongoDB, logging.Audit, "failed to prune audit logs", map[logging.ExtraKey]any{
					logging.ErrorMessage: err.Error(),
				})
			}
		case <-ctx.Done():
			return
		}
	}
}
