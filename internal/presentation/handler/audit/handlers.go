package audit

import (
	"net/http"
	"time"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/json"
	"github.com/hilthontt/chatrelay/internal/infrastructure/logging"
	"github.com/hilthontt/chatrelay/internal/presentation/utils"
)

const defaultLimit = 100

type Handler struct {
	repo   domain.ChannelAuditRepository
	logger logging.Logger
	now    func() time.Time
}

func NewHandler(repo domain.ChannelAuditRepository, logger logging.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// GetChannelAuditHandler godoc
// @Summary      Channel audit trail
// @Description  Returns the most recent lifecycle events recorded for a channel, newest first
// @Tags         audit
// @Produce      json
// @Param        channelId path int true "Channel ID"
// @Param        limit query int false "Maximum entries" default(100)
// @Success      200 {array} domain.ChannelAuditLog
// @Failure      400 {object} json.ErrorResponse
// @Failure      500 {object} json.ErrorResponse
// @Router       /api/channels/{channelId}/audit [get]
func (h *Handler) GetChannelAuditHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ChannelIDParam(r)
	if err != nil {
		json.WriteBadRequestError(w, err.Error())
		return
	}

	limit, err := utils.QueryInt(r, "limit", defaultLimit)
	if err != nil {
		json.WriteBadRequestError(w, err.Error())
		return
	}

	logs, err := h.repo.GetByChannelID(r.Context(), id, limit)
	if err != nil {
		h.internalError(w, err)
		return
	}

	_ = json.Write(w, http.StatusOK, logs)
}

// GetEventsHandler godoc
// @Summary      Audit events by type
// @Description  Returns lifecycle events of one type within a time range, newest first. The range defaults to the last 24 hours.
// @Tags         audit
// @Produce      json
// @Param        eventType query string true "Event type" Enums(participant_connected, participant_disconnected, channel_created, channel_destroyed, member_joined, member_left, message_sent)
// @Param        from query string false "RFC3339 start"
// @Param        to query string false "RFC3339 end"
// @Success      200 {array} domain.ChannelAuditLog
// @Failure      400 {object} json.ErrorResponse
// @Failure      500 {object} json.ErrorResponse
// @Router       /api/audit [get]
func (h *Handler) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	eventType := domain.ChannelEventType(r.URL.Query().Get("eventType"))
	if eventType == "" {
		json.WriteBadRequestError(w, "eventType is required")
		return
	}

	now := h.now()
	from, err := utils.QueryTime(r, "from", now.Add(-24*time.Hour))
	if err != nil {
		json.WriteBadRequestError(w, err.Error())
		return
	}
	to, err := utils.QueryTime(r, "to", now)
	if err != nil {
		json.WriteBadRequestError(w, err.Error())
		return
	}

	logs, err := h.repo.GetByEventType(r.Context(), eventType, from, to)
	if err != nil {
		h.internalError(w, err)
		return
	}

	_ = json.Write(w, http.StatusOK, logs)
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	h.logger.Error(logging.MongoDB, logging.Audit, "audit query failed", map[logging.ExtraKey]any{
		logging.ErrorMessage: err.Error(),
	})
	json.WriteInternalError(w)
}
