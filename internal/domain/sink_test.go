package domain_test

import (
	"testing"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/domain/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRegistry_SendMessage_DeliversThroughSink(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockMessageSink(ctrl)

	registry := domain.NewRegistry()
	alice := registry.AddParticipant()
	bob := registry.AddParticipant()
	req.NoError(registry.JoinChannel(alice, 10))
	req.NoError(registry.JoinChannel(bob, 10))

	// Given each member expects exactly one delivery
	var delivered []domain.Message
	record := func(_ domain.ParticipantID, msg domain.Message) {
		delivered = append(delivered, msg)
	}
	sink.EXPECT().Deliver(alice, gomock.Any()).Do(record).Times(1)
	sink.EXPECT().Deliver(bob, gomock.Any()).Do(record).Times(1)

	// When alice sends
	msg, err := registry.SendMessage(alice, 10, "hello bob", "123", sink)

	// Then both deliveries carry the stored message
	req.NoError(err)
	req.Equal([]domain.Message{msg, msg}, delivered)
}

func TestRegistry_SendMessage_FailureNeverTouchesSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockMessageSink(ctrl)
	sink.EXPECT().Deliver(gomock.Any(), gomock.Any()).Times(0)

	registry := domain.NewRegistry()
	p1 := registry.AddParticipant()

	_, err := registry.SendMessage(p1, 1, "nobody here", "", sink)
	require.ErrorIs(t, err, domain.ErrChannelNotFound)
}

func TestSinkFunc(t *testing.T) {
	var got domain.ParticipantID
	sink := domain.SinkFunc(func(recipient domain.ParticipantID, _ domain.Message) {
		got = recipient
	})

	sink.Deliver(5, domain.Message{})

	require.Equal(t, domain.ParticipantID(5), got)
}
