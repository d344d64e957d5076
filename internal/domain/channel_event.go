package domain

import "time"

type ChannelEventType string

const (
	EventParticipantConnected    ChannelEventType = "participant_connected"
	EventParticipantDisconnected ChannelEventType = "participant_disconnected"
	EventChannelCreated          ChannelEventType = "channel_created"
	EventChannelDestroyed        ChannelEventType = "channel_destroyed"
	EventMemberJoined            ChannelEventType = "member_joined"
	EventMemberLeft              ChannelEventType = "member_left"
	EventMessageSent             ChannelEventType = "message_sent"
)

// ChannelEvent describes one state change applied by the registry.
// Fields that do not apply to the event type are zero.
type ChannelEvent struct {
	Type          ChannelEventType `json:"type"`
	ParticipantID ParticipantID    `json:"participantId"`
	ChannelID     ChannelID        `json:"channelId"`
	MessageID     MessageID        `json:"messageId,omitempty"`
	MemberCount   int              `json:"memberCount"`
	OccurredAt    time.Time        `json:"occurredAt"`
}

// Observer is notified after every successful registry mutation, with the
// registry lock held. Implementations must hand the event off without blocking.
type Observer interface {
	Observe(event ChannelEvent)
}

type ObserverFunc func(event ChannelEvent)

func (f ObserverFunc) Observe(event ChannelEvent) {
	f(event)
}

type noopObserver struct{}

func (noopObserver) Observe(ChannelEvent) {}

// Observers fans an event out to each observer in order.
type Observers []Observer

func (o Observers) Observe(event ChannelEvent) {
	for _, observer := range o {
		observer.Observe(event)
	}
}
