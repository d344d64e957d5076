package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ChannelAuditLog struct {
	ID            string           `bson:"_id" json:"id"`
	ChannelID     ChannelID        `bson:"channel_id" json:"channelId"`
	EventType     ChannelEventType `bson:"event_type" json:"eventType"`
	ParticipantID ParticipantID    `bson:"participant_id" json:"participantId"`
	Timestamp     time.Time        `bson:"timestamp" json:"timestamp"`
	Metadata      map[string]any   `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

//go:generate mockgen -destination=mocks/mock_channel_auditlog.go -package=mocks . ChannelAuditRepository

type ChannelAuditRepository interface {
	Log(ctx context.Context, log *ChannelAuditLog) error
	GetByChannelID(ctx context.Context, channelID ChannelID, limit int) ([]ChannelAuditLog, error)
	GetByEventType(ctx context.Context, eventType ChannelEventType, from, to time.Time) ([]ChannelAuditLog, error)
	DeleteOlderThan(ctx context.Context, before time.Time) error
	EnsureIndexes(ctx context.Context) error
}

func NewChannelAuditLog(event ChannelEvent) *ChannelAuditLog {
	ts := event.OccurredAt
	if ts.IsZero() {
		ts = time.Now()
	}

	log := &ChannelAuditLog{
		ID:            uuid.NewString(),
		ChannelID:     event.ChannelID,
		EventType:     event.Type,
		ParticipantID: event.ParticipantID,
		Timestamp:     ts,
		Metadata: map[string]any{
			"member_count": event.MemberCount,
		},
	}

	if event.Type == EventMessageSent {
		log.Metadata["message_id"] = uint64(event.MessageID)
	}

	return log
}
