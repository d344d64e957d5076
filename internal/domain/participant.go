package domain

import (
	"slices"

	"github.com/samber/lo"
)

type ParticipantID uint64

type Participant struct {
	ID       ParticipantID
	channels map[ChannelID]struct{}
}

func NewParticipant(id ParticipantID) *Participant {
	return &Participant{
		ID:       id,
		channels: make(map[ChannelID]struct{}),
	}
}

func (p *Participant) joinChannel(channelID ChannelID) {
	p.channels[channelID] = struct{}{}
}

func (p *Participant) leaveChannel(channelID ChannelID) {
	delete(p.channels, channelID)
}

func (p *Participant) inChannel(channelID ChannelID) bool {
	_, ok := p.channels[channelID]
	return ok
}

// ChannelIDs returns the joined channels in ascending order.
func (p *Participant) ChannelIDs() []ChannelID {
	ids := lo.Keys(p.channels)
	slices.Sort(ids)
	return ids
}

func (p *Participant) clear() {
	clear(p.channels)
}
