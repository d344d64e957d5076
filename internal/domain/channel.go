package domain

import (
	"slices"

	"github.com/samber/lo"
)

const DefaultChannelName = "Channel"

type ChannelID uint64

// Channel holds the membership of one conversation group and the ordered log
// of messages sent into it. A channel whose last member leaves drops all of
// its content, so a later channel under the same id starts empty.
type Channel struct {
	ID       ChannelID
	Name     string
	members  map[ParticipantID]struct{}
	messages map[MessageID]Message
	order    []MessageID
}

// ChannelInfo is a point-in-time view of a channel, safe to hand out of the
// registry.
type ChannelInfo struct {
	ID           ChannelID       `json:"id"`
	Name         string          `json:"name"`
	Members      []ParticipantID `json:"members"`
	MessageCount int             `json:"messageCount"`
}

func NewChannel(id ChannelID, name string) *Channel {
	if name == "" {
		name = DefaultChannelName
	}

	return &Channel{
		ID:       id,
		Name:     name,
		members:  make(map[ParticipantID]struct{}),
		messages: make(map[MessageID]Message),
		order:    make([]MessageID, 0, 16),
	}
}

func (c *Channel) addMember(participantID ParticipantID) {
	c.members[participantID] = struct{}{}
}

func (c *Channel) removeMember(participantID ParticipantID) {
	delete(c.members, participantID)
	if len(c.members) == 0 {
		c.clear()
	}
}

func (c *Channel) hasMember(participantID ParticipantID) bool {
	_, ok := c.members[participantID]
	return ok
}

func (c *Channel) recordMessage(msg Message) {
	c.messages[msg.ID()] = msg
	c.order = append(c.order, msg.ID())
}

// currentMembers returns a copy of the membership, sorted for stable fan-out.
func (c *Channel) currentMembers() []ParticipantID {
	members := lo.Keys(c.members)
	slices.Sort(members)
	return members
}

func (c *Channel) memberCount() int {
	return len(c.members)
}

func (c *Channel) history() []Message {
	out := make([]Message, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.messages[id])
	}
	return out
}

func (c *Channel) info() ChannelInfo {
	return ChannelInfo{
		ID:           c.ID,
		Name:         c.Name,
		Members:      c.currentMembers(),
		MessageCount: len(c.order),
	}
}

func (c *Channel) clear() {
	clear(c.members)
	clear(c.messages)
	c.order = c.order[:0:0]
}
