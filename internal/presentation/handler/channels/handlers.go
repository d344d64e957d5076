package channels

import (
	"errors"
	"net/http"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/json"
	"github.com/hilthontt/chatrelay/internal/presentation/utils"
	"github.com/samber/lo"
)

type Registry interface {
	Channels() []domain.ChannelInfo
	Channel(id domain.ChannelID) (domain.ChannelInfo, error)
	Messages(id domain.ChannelID) ([]domain.Message, error)
}

type Handler struct {
	registry Registry
}

func NewHandler(registry Registry) *Handler {
	return &Handler{registry: registry}
}

// ListChannelsHandler godoc
// @Summary      List active channels
// @Description  Returns every channel that currently has at least one member, ordered by id
// @Tags         channels
// @Produce      json
// @Success      200 {array} channelResponse
// @Router       /api/channels [get]
func (h *Handler) ListChannelsHandler(w http.ResponseWriter, r *http.Request) {
	_ = json.Write(w, http.StatusOK, lo.Map(h.registry.Channels(), func(info domain.ChannelInfo, _ int) channelResponse {
		return toChannelResponse(info)
	}))
}

// GetChannelHandler godoc
// @Summary      Get a channel
// @Description  Returns the members and log size of an active channel
// @Tags         channels
// @Produce      json
// @Param        channelId path int true "Channel ID"
// @Success      200 {object} channelResponse
// @Failure      400 {object} json.ErrorResponse "Invalid channel id"
// @Failure      404 {object} json.ErrorResponse "Channel not active"
// @Router       /api/channels/{channelId} [get]
func (h *Handler) GetChannelHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ChannelIDParam(r)
	if err != nil {
		json.WriteBadRequestError(w, err.Error())
		return
	}

	info, err := h.registry.Channel(id)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	_ = json.Write(w, http.StatusOK, toChannelResponse(info))
}

// GetMessagesHandler godoc
// @Summary      Get a channel log
// @Description  Returns the messages of an active channel in send order
// @Tags         channels
// @Produce      json
// @Param        channelId path int true "Channel ID"
// @Success      200 {array} messageResponse
// @Failure      400 {object} json.ErrorResponse "Invalid channel id"
// @Failure      404 {object} json.ErrorResponse "Channel not active"
// @Router       /api/channels/{channelId}/messages [get]
func (h *Handler) GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ChannelIDParam(r)
	if err != nil {
		json.WriteBadRequestError(w, err.Error())
		return
	}

	messages, err := h.registry.Messages(id)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	_ = json.Write(w, http.StatusOK, lo.Map(messages, func(msg domain.Message, _ int) messageResponse {
		return toMessageResponse(msg)
	}))
}

func writeRegistryError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		json.WriteNotFoundError(w, err)
		return
	}
	json.WriteInternalError(w)
}
