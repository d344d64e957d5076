package health

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hilthontt/chatrelay/internal/infrastructure/json"
)

type Handler struct {
	startTime time.Time
	healthy   atomic.Bool
}

func NewHandler() *Handler {
	h := &Handler{startTime: time.Now()}
	h.healthy.Store(true)
	return h
}

// MarkUnhealthy makes every probe fail, so load balancers stop routing new
// connections while the server drains.
func (h *Handler) MarkUnhealthy() {
	h.healthy.Store(false)
}

// GetHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the relay, including uptime and current timestamp
// @Tags         health
// @Produce      json
// @Success      200 {object} healthResponse "Service is healthy"
// @Failure      503 {object} healthResponse "Service is unhealthy"
// @Router       /api/health [get]
// @Router       /api/healthz [get]
// @Router       /api/ready [get]
// @Router       /api/live [get]
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	if !h.healthy.Load() {
		resp.Status = "unhealthy"
		_ = json.Write(w, http.StatusServiceUnavailable, resp)
		return
	}

	_ = json.Write(w, http.StatusOK, resp)
}
