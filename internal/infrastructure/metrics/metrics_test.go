package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserve_TracksRegistryGauges(t *testing.T) {
	req := require.New(t)
	m := New()

	for _, eventType := range []domain.ChannelEventType{
		domain.EventParticipantConnected,
		domain.EventParticipantConnected,
		domain.EventChannelCreated,
		domain.EventMemberJoined,
		domain.EventMessageSent,
		domain.EventMessageSent,
		domain.EventParticipantDisconnected,
		domain.EventChannelDestroyed,
	} {
		m.Observe(domain.ChannelEvent{Type: eventType})
	}

	req.Equal(1.0, testutil.ToFloat64(m.participants))
	req.Equal(0.0, testutil.ToFloat64(m.activeChannels))
	req.Equal(2.0, testutil.ToFloat64(m.messagesSent))
	req.Equal(2.0, testutil.ToFloat64(m.lifecycleEvents.WithLabelValues(string(domain.EventMessageSent))))
}

func TestConnectionsAndDeliveries(t *testing.T) {
	req := require.New(t)
	m := New()

	m.ConnectionOpened()
	m.ConnectionOpened()
	m.ConnectionClosed()
	m.Delivery(DeliveryQueued)
	m.Delivery(DeliveryQueued)
	m.Delivery(DeliveryDropped)
	m.InboundEvent("sendMessage", ResultOK, time.Millisecond)

	req.Equal(1.0, testutil.ToFloat64(m.connections))
	req.Equal(2.0, testutil.ToFloat64(m.deliveries.WithLabelValues(DeliveryQueued)))
	req.Equal(1.0, testutil.ToFloat64(m.deliveries.WithLabelValues(DeliveryDropped)))
	req.Equal(1.0, testutil.ToFloat64(m.inboundEvents.WithLabelValues("sendMessage", ResultOK)))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	req := require.New(t)
	m := New()
	m.HTTPRequest("GET", "/api/channels", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	req.NoError(err)
	req.Contains(string(body), `chatrelay_http_requests_total{method="GET",route="/api/channels",status="200"} 1`)
	req.Contains(string(body), "go_goroutines")
}
