package channels

import "github.com/hilthontt/chatrelay/internal/domain"

// channelResponse describes an active channel
type channelResponse struct {
	ID           domain.ChannelID       `json:"id" example:"7"`
	Name         string                 `json:"name" example:"Channel"`
	Members      []domain.ParticipantID `json:"members"`
	MessageCount int                    `json:"messageCount" example:"3"`
}

// messageResponse is one entry of a channel log
type messageResponse struct {
	ID        domain.MessageID     `json:"id" example:"1"`
	OwnerID   domain.ParticipantID `json:"ownerId" example:"2"`
	Content   string               `json:"content" example:"hello world"`
	ChannelID domain.ChannelID     `json:"channelId" example:"7"`
	SentAt    string               `json:"sentAt" example:"1700000000000000"`
}

func toChannelResponse(info domain.ChannelInfo) channelResponse {
	return channelResponse{
		ID:           info.ID,
		Name:         info.Name,
		Members:      info.Members,
		MessageCount: info.MessageCount,
	}
}

func toMessageResponse(msg domain.Message) messageResponse {
	return messageResponse{
		ID:        msg.ID(),
		OwnerID:   msg.OwnerID(),
		Content:   msg.Content(),
		ChannelID: msg.ChannelID(),
		SentAt:    msg.SentAt(),
	}
}
