package messaging

import "github.com/hilthontt/chatrelay/internal/domain"

const (
	AuditQueue      = "channel_audit"
	DeadLetterQueue = "dead_letter_queue"
)

type ChannelEventData struct {
	Event domain.ChannelEvent `json:"event"`
}
