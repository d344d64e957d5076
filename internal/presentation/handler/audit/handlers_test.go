package audit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/domain/mocks"
	"github.com/hilthontt/chatrelay/internal/infrastructure/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/channels/{channelId}/audit", h.GetChannelAuditHandler)
	r.Get("/api/audit", h.GetEventsHandler)
	return r
}

func serve(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetChannelAuditHandler(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockChannelAuditRepository(ctrl)
	router := newRouter(NewHandler(repo, logging.NewNopLogger()))

	repo.EXPECT().
		GetByChannelID(gomock.Any(), domain.ChannelID(7), 5).
		Return([]domain.ChannelAuditLog{{ID: "a", ChannelID: 7, EventType: domain.EventChannelCreated}}, nil)

	rec := serve(router, "/api/channels/7/audit?limit=5")

	req.Equal(http.StatusOK, rec.Code)
	req.Contains(rec.Body.String(), `"eventType":"channel_created"`)

	req.Equal(http.StatusBadRequest, serve(router, "/api/channels/7/audit?limit=-2").Code)
}

func TestGetEventsHandler(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockChannelAuditRepository(ctrl)
	h := NewHandler(repo, logging.NewNopLogger())
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }
	router := newRouter(h)

	// defaults to the last day
	repo.EXPECT().
		GetByEventType(gomock.Any(), domain.EventMemberJoined, now.Add(-24*time.Hour), now).
		Return([]domain.ChannelAuditLog{}, nil)
	rec := serve(router, "/api/audit?eventType=member_joined")
	req.Equal(http.StatusOK, rec.Code)
	req.JSONEq(`[]`, rec.Body.String())

	repo.EXPECT().
		GetByEventType(gomock.Any(), domain.EventMessageSent, gomock.Any(), gomock.Any()).
		Return(nil, errors.New("mongo down"))
	req.Equal(http.StatusInternalServerError, serve(router, "/api/audit?eventType=message_sent&from=2025-01-01T00:00:00Z").Code)

	req.Equal(http.StatusBadRequest, serve(router, "/api/audit").Code)
	req.Equal(http.StatusBadRequest, serve(router, "/api/audit?eventType=member_left&to=soon").Code)
}
