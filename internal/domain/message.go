package domain

type MessageID uint64

// Message is an immutable record of one send into a channel. SentAt is an
// opaque token supplied by the sender and echoed back unchanged.
type Message struct {
	id        MessageID
	ownerID   ParticipantID
	channelID ChannelID
	content   string
	sentAt    string
}

func newMessage(id MessageID, ownerID ParticipantID, channelID ChannelID, content, sentAt string) Message {
	return Message{
		id:        id,
		ownerID:   ownerID,
		channelID: channelID,
		content:   content,
		sentAt:    sentAt,
	}
}

func (m Message) ID() MessageID {
	return m.id
}

func (m Message) OwnerID() ParticipantID {
	return m.ownerID
}

func (m Message) ChannelID() ChannelID {
	return m.channelID
}

func (m Message) Content() string {
	return m.content
}

func (m Message) SentAt() string {
	return m.sentAt
}
