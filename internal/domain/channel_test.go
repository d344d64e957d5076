package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChannel_RemoveLastMember_ClearsContent(t *testing.T) {
	req := require.New(t)
	channel := NewChannel(1, "")
	channel.addMember(1)
	channel.addMember(2)
	channel.recordMessage(newMessage(1, 1, 1, "a", ""))
	channel.recordMessage(newMessage(2, 2, 1, "b", ""))

	// When one of two members leaves, the log survives
	channel.removeMember(1)
	req.Len(channel.history(), 2)

	// When the last member leaves, everything is cleared
	channel.removeMember(2)
	req.Zero(channel.memberCount())
	req.Empty(channel.history())
	req.Empty(channel.messages)
	req.Empty(channel.order)
}

func TestChannel_AddMember_SetSemantics(t *testing.T) {
	req := require.New(t)
	channel := NewChannel(1, "general")

	channel.addMember(3)
	channel.addMember(3)

	req.Equal("general", channel.Name)
	req.Equal([]ParticipantID{3}, channel.currentMembers())
}

func TestChannel_CurrentMembers_IsSnapshot(t *testing.T) {
	req := require.New(t)
	channel := NewChannel(1, "")
	channel.addMember(1)
	channel.addMember(2)

	snapshot := channel.currentMembers()
	channel.addMember(3)
	channel.removeMember(1)

	req.Equal([]ParticipantID{1, 2}, snapshot)
	req.Equal([]ParticipantID{2, 3}, channel.currentMembers())
}

func TestParticipant_ChannelSet(t *testing.T) {
	req := require.New(t)
	participant := NewParticipant(1)

	participant.joinChannel(5)
	participant.joinChannel(3)
	participant.joinChannel(5)
	req.Equal([]ChannelID{3, 5}, participant.ChannelIDs())

	participant.leaveChannel(5)
	req.Equal([]ChannelID{3}, participant.ChannelIDs())

	participant.clear()
	req.Empty(participant.ChannelIDs())
}

func TestNotFoundError_Is(t *testing.T) {
	req := require.New(t)

	err := channelNotFound(7)

	req.ErrorIs(err, ErrNotFound)
	req.ErrorIs(err, ErrChannelNotFound)
	req.NotErrorIs(err, ErrParticipantNotFound)
	req.EqualError(participantNotFound(1), "participant not found")
}
