package domain

//go:generate mockgen -destination=mocks/mock_sink.go -package=mocks . MessageSink

// MessageSink receives one call per recipient of a sent message. Deliver runs
// while the registry is locked: it must not block and must not call back into
// the registry.
type MessageSink interface {
	Deliver(recipient ParticipantID, msg Message)
}

type SinkFunc func(recipient ParticipantID, msg Message)

func (f SinkFunc) Deliver(recipient ParticipantID, msg Message) {
	f(recipient, msg)
}
