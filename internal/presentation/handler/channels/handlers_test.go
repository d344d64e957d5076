package channels

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/stretchr/testify/require"
)

func newRouter(registry *domain.Registry) http.Handler {
	h := NewHandler(registry)
	r := chi.NewRouter()
	r.Get("/api/channels", h.ListChannelsHandler)
	r.Get("/api/channels/{channelId}", h.GetChannelHandler)
	r.Get("/api/channels/{channelId}/messages", h.GetMessagesHandler)
	return r
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestChannelsHandlers(t *testing.T) {
	req := require.New(t)

	// Given two participants sharing channel 7 with one message
	registry := domain.NewRegistry()
	p1 := registry.AddParticipant()
	p2 := registry.AddParticipant()
	req.NoError(registry.JoinChannel(p1, 7))
	req.NoError(registry.JoinChannel(p2, 7))
	req.NoError(registry.JoinChannel(p2, 3))
	_, err := registry.SendMessage(p1, 7, "hello", "100", nil)
	req.NoError(err)

	router := newRouter(registry)

	t.Run("list", func(t *testing.T) {
		req := require.New(t)
		rec := get(t, router, "/api/channels")

		req.Equal(http.StatusOK, rec.Code)
		var body []channelResponse
		req.NoError(json.NewDecoder(rec.Body).Decode(&body))
		req.Len(body, 2)
		req.Equal(domain.ChannelID(3), body[0].ID)
		req.Equal(domain.ChannelID(7), body[1].ID)
		req.Equal([]domain.ParticipantID{p1, p2}, body[1].Members)
		req.Equal(1, body[1].MessageCount)
	})

	t.Run("get", func(t *testing.T) {
		req := require.New(t)
		rec := get(t, router, "/api/channels/7")

		req.Equal(http.StatusOK, rec.Code)
		var body channelResponse
		req.NoError(json.NewDecoder(rec.Body).Decode(&body))
		req.Equal(domain.DefaultChannelName, body.Name)
	})

	t.Run("messages", func(t *testing.T) {
		req := require.New(t)
		rec := get(t, router, "/api/channels/7/messages")

		req.Equal(http.StatusOK, rec.Code)
		req.JSONEq(`[{"id":1,"ownerId":1,"content":"hello","channelId":7,"sentAt":"100"}]`, rec.Body.String())
	})

	t.Run("unknown channel", func(t *testing.T) {
		req := require.New(t)
		req.Equal(http.StatusNotFound, get(t, router, "/api/channels/99").Code)
		req.Equal(http.StatusNotFound, get(t, router, "/api/channels/99/messages").Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		require.Equal(t, http.StatusBadRequest, get(t, router, "/api/channels/abc").Code)
	})
}

func TestListChannels_EmptyIsArray(t *testing.T) {
	rec := get(t, newRouter(domain.NewRegistry()), "/api/channels")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}
