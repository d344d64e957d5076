package utils

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/chatrelay/internal/domain"
)

func ChannelIDParam(r *http.Request) (domain.ChannelID, error) {
	raw := chi.URLParam(r, "channelId")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid channel id %q", raw)
	}
	return domain.ChannelID(id), nil
}

// QueryInt returns fallback when key is absent and an error when it is not a
// positive integer.
func QueryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return v, nil
}

// QueryTime parses an RFC3339 query value, returning fallback when absent.
func QueryTime(r *http.Request, key string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be an RFC3339 timestamp", key)
	}
	return t, nil
}
