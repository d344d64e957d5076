package contracts

import "github.com/hilthontt/chatrelay/internal/domain"

// AmqpMessage is the message structure for AMQP.
type AmqpMessage struct {
	OwnerID string `json:"ownerId"`
	Data    []byte `json:"data"`
}

// Routing keys
const (
	EventParticipantConnected    = "participant.connected"
	EventParticipantDisconnected = "participant.disconnected"
	EventChannelCreated          = "channel.created"
	EventChannelDestroyed        = "channel.destroyed"
	EventMemberJoined            = "member.joined"
	EventMemberLeft              = "member.left"
	EventMessageSent             = "message.sent"
)

var routingKeys = map[domain.ChannelEventType]string{
	domain.EventParticipantConnected:    EventParticipantConnected,
	domain.EventParticipantDisconnected: EventParticipantDisconnected,
	domain.EventChannelCreated:          EventChannelCreated,
	domain.EventChannelDestroyed:        EventChannelDestroyed,
	domain.EventMemberJoined:            EventMemberJoined,
	domain.EventMemberLeft:              EventMemberLeft,
	domain.EventMessageSent:             EventMessageSent,
}

// RoutingKey maps a registry event type to its routing key.
func RoutingKey(eventType domain.ChannelEventType) (string, bool) {
	key, ok := routingKeys[eventType]
	return key, ok
}

// AllRoutingKeys lists every routing key the relay publishes.
func AllRoutingKeys() []string {
	return []string{
		EventParticipantConnected,
		EventParticipantDisconnected,
		EventChannelCreated,
		EventChannelDestroyed,
		EventMemberJoined,
		EventMemberLeft,
		EventMessageSent,
	}
}
