package domain

import (
	"sort"
	"sync"
	"time"
)

// Registry owns every participant and channel and serializes all operations
// on them behind one lock. Invariants spanning a participant and a channel
// are maintained here and nowhere else.
type Registry struct {
	mu           sync.Mutex
	participants map[ParticipantID]*Participant
	channels     map[ChannelID]*Channel

	nextParticipantID ParticipantID
	nextMessageID     MessageID

	channelName string
	observer    Observer
	now         func() time.Time
}

// RegistryOption configures a Registry at construction.
type RegistryOption func(*Registry)

// WithObserver registers an observer for state changes. A nil observer is ignored.
func WithObserver(observer Observer) RegistryOption {
	return func(r *Registry) {
		if observer != nil {
			r.observer = observer
		}
	}
}

// WithChannelName sets the display name given to lazily created channels.
func WithChannelName(name string) RegistryOption {
	return func(r *Registry) {
		if name != "" {
			r.channelName = name
		}
	}
}

// WithClock sets the time source used to stamp events. A nil clock is ignored.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry returns an empty registry whose id counters start at 1.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		participants: make(map[ParticipantID]*Participant),
		channels:     make(map[ChannelID]*Channel),
		channelName:  DefaultChannelName,
		observer:     noopObserver{},
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// AddParticipant allocates a participant with no channels and returns its id.
func (r *Registry) AddParticipant() ParticipantID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextParticipantID++
	id := r.nextParticipantID
	r.participants[id] = NewParticipant(id)

	r.emit(ChannelEvent{Type: EventParticipantConnected, ParticipantID: id})

	return id
}

// RemoveParticipant drops the participant from every joined channel,
// destroying channels left empty, then forgets it.
func (r *Registry) RemoveParticipant(id ParticipantID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	participant, ok := r.participants[id]
	if !ok {
		return participantNotFound(id)
	}

	for _, channelID := range participant.ChannelIDs() {
		if channel, ok := r.channels[channelID]; ok {
			r.removeMember(channel, id)
		}
	}

	participant.clear()
	delete(r.participants, id)

	r.emit(ChannelEvent{Type: EventParticipantDisconnected, ParticipantID: id})

	return nil
}

// JoinChannel adds the participant to the channel, creating the channel on
// first reference. Joining a channel twice leaves state unchanged.
func (r *Registry) JoinChannel(participantID ParticipantID, channelID ChannelID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	participant, ok := r.participants[participantID]
	if !ok {
		return participantNotFound(participantID)
	}

	channel, ok := r.channels[channelID]
	if !ok {
		channel = NewChannel(channelID, r.channelName)
		r.channels[channelID] = channel
		r.emit(ChannelEvent{Type: EventChannelCreated, ParticipantID: participantID, ChannelID: channelID})
	}

	if channel.hasMember(participantID) {
		return nil
	}

	channel.addMember(participantID)
	participant.joinChannel(channelID)

	r.emit(ChannelEvent{
		Type:          EventMemberJoined,
		ParticipantID: participantID,
		ChannelID:     channelID,
		MemberCount:   channel.memberCount(),
	})

	return nil
}

// SendMessage records a message in the channel log and hands it to sink once
// for every member present when the call started, the sender included.
func (r *Registry) SendMessage(participantID ParticipantID, channelID ChannelID, content, sentAt string, sink MessageSink) (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.participants[participantID]; !ok {
		return Message{}, participantNotFound(participantID)
	}

	channel, ok := r.channels[channelID]
	if !ok {
		return Message{}, channelNotFound(channelID)
	}

	r.nextMessageID++
	msg := newMessage(r.nextMessageID, participantID, channelID, content, sentAt)
	channel.recordMessage(msg)

	recipients := channel.currentMembers()

	r.emit(ChannelEvent{
		Type:          EventMessageSent,
		ParticipantID: participantID,
		ChannelID:     channelID,
		MessageID:     msg.ID(),
		MemberCount:   len(recipients),
	})

	if sink != nil {
		for _, recipient := range recipients {
			sink.Deliver(recipient, msg)
		}
	}

	return msg, nil
}

// LeaveChannel removes the membership and destroys the channel once it is
// empty. Leaving an existing channel the participant is not in changes nothing.
func (r *Registry) LeaveChannel(participantID ParticipantID, channelID ChannelID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	participant, ok := r.participants[participantID]
	if !ok {
		return participantNotFound(participantID)
	}

	channel, ok := r.channels[channelID]
	if !ok {
		return channelNotFound(channelID)
	}

	if !participant.inChannel(channelID) {
		return nil
	}

	r.removeMember(channel, participantID)
	participant.leaveChannel(channelID)

	return nil
}

// removeMember drops the membership on the channel side and destroys the
// channel once it is empty. The caller updates the participant side.
func (r *Registry) removeMember(channel *Channel, participantID ParticipantID) {
	wasMember := channel.hasMember(participantID)
	channel.removeMember(participantID)

	if wasMember {
		r.emit(ChannelEvent{
			Type:          EventMemberLeft,
			ParticipantID: participantID,
			ChannelID:     channel.ID,
			MemberCount:   channel.memberCount(),
		})
	}

	if channel.memberCount() == 0 {
		delete(r.channels, channel.ID)
		r.emit(ChannelEvent{Type: EventChannelDestroyed, ParticipantID: participantID, ChannelID: channel.ID})
	}
}

func (r *Registry) Channels() []ChannelInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	infos := make([]ChannelInfo, 0, len(r.channels))
	for _, channel := range r.channels {
		infos = append(infos, channel.info())
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})

	return infos
}

func (r *Registry) Channel(id ChannelID) (ChannelInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	channel, ok := r.channels[id]
	if !ok {
		return ChannelInfo{}, channelNotFound(id)
	}

	return channel.info(), nil
}

// Messages returns the channel log in send order.
func (r *Registry) Messages(id ChannelID) ([]Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	channel, ok := r.channels[id]
	if !ok {
		return nil, channelNotFound(id)
	}

	return channel.history(), nil
}

func (r *Registry) ParticipantChannels(id ParticipantID) ([]ChannelID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	participant, ok := r.participants[id]
	if !ok {
		return nil, participantNotFound(id)
	}

	return participant.ChannelIDs(), nil
}

func (r *Registry) ParticipantCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.participants)
}

func (r *Registry) ChannelCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.channels)
}

func (r *Registry) emit(event ChannelEvent) {
	event.OccurredAt = r.now()
	r.observer.Observe(event)
}
