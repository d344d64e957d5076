package ws

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/hilthontt/chatrelay/internal/domain"
)

var (
	ErrMalformedFrame = errors.New("invalid message format")
	ErrRateLimited    = errors.New("rate limit exceeded")

	validate = validator.New()
)

// SentAt is the client supplied send time. Clients send either a JSON string
// or a number; both are kept verbatim as text.
type SentAt string

func (s *SentAt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = SentAt(str)
		return nil
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("sentAt must be a string or a number")
		}
		*s = SentAt(num.String())
		return nil
	}
}

type inboundFrame struct {
	Type    string          `json:"type" validate:"required,oneof=joinChannel sendMessage leaveChannel"`
	Payload *inboundPayload `json:"payload" validate:"required"`
}

type inboundPayload struct {
	ChannelID      *uint64 `json:"channelId" validate:"required"`
	MessageContent *string `json:"messageContent"`
	SentAt         SentAt  `json:"sentAt"`
}

// Inbound is a decoded and validated client request.
type Inbound struct {
	Type      string
	ChannelID domain.ChannelID
	Content   string
	SentAt    string
}

// DecodeInbound parses one text frame. Unknown payload fields are ignored.
func DecodeInbound(raw []byte) (Inbound, error) {
	var frame inboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	if err := validate.Struct(&frame); err != nil {
		return Inbound{}, fmt.Errorf("%w: %s", ErrMalformedFrame, describeValidation(err))
	}

	in := Inbound{
		Type:      frame.Type,
		ChannelID: domain.ChannelID(*frame.Payload.ChannelID),
		SentAt:    string(frame.Payload.SentAt),
	}

	if frame.Type == SendMessage {
		if frame.Payload.MessageContent == nil {
			return Inbound{}, fmt.Errorf("%w: messageContent is required", ErrMalformedFrame)
		}
		in.Content = *frame.Payload.MessageContent
	}

	return in, nil
}

func describeValidation(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}

	fe := errs[0]
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("unknown message type %q", fe.Value())
	case "required":
		return fmt.Sprintf("%s is required", jsonName(fe.Field()))
	default:
		return fmt.Sprintf("%s is invalid", jsonName(fe.Field()))
	}
}

func jsonName(field string) string {
	switch field {
	case "ChannelID":
		return "channelId"
	case "Payload":
		return "payload"
	case "Type":
		return "type"
	default:
		return field
	}
}

type OutboundFrame struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type MessagePayload struct {
	ID        domain.MessageID     `json:"id"`
	OwnerID   domain.ParticipantID `json:"ownerId"`
	Content   string               `json:"content"`
	ChannelID domain.ChannelID     `json:"channelId"`
	SentAt    string               `json:"sentAt"`
}

type JoinChannelSuccessPayload struct {
	UserID    domain.ParticipantID `json:"userId"`
	ChannelID domain.ChannelID     `json:"channelId"`
}

func NewMessage(msg domain.Message) *OutboundFrame {
	return &OutboundFrame{
		Type: MessageEvent,
		Payload: MessagePayload{
			ID:        msg.ID(),
			OwnerID:   msg.OwnerID(),
			Content:   msg.Content(),
			ChannelID: msg.ChannelID(),
			SentAt:    msg.SentAt(),
		},
	}
}

func NewJoinChannelSuccess(participantID domain.ParticipantID, channelID domain.ChannelID) *OutboundFrame {
	return &OutboundFrame{
		Type: JoinChannelSuccess,
		Payload: JoinChannelSuccessPayload{
			UserID:    participantID,
			ChannelID: channelID,
		},
	}
}

// NewError carries a human readable description as the bare payload.
func NewError(description string) *OutboundFrame {
	return &OutboundFrame{
		Type:    ErrorEvent,
		Payload: description,
	}
}

// errorDescription turns a failed request into the text sent to the client.
func errorDescription(err error) string {
	switch {
	case errors.Is(err, domain.ErrParticipantNotFound):
		return "User not found"
	case errors.Is(err, domain.ErrChannelNotFound):
		return "Channel not found"
	case errors.Is(err, ErrRateLimited):
		return "Rate limit exceeded"
	case errors.Is(err, ErrMalformedFrame):
		return err.Error()
	default:
		return "Internal error"
	}
}
