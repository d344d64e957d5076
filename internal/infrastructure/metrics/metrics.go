package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chatrelay"

const (
	ResultOK       = "ok"
	ResultError    = "error"
	ResultRejected = "rejected"

	DeliveryQueued  = "queued"
	DeliveryDropped = "dropped"
	DeliveryOffline = "offline"
)

// Metrics defines our Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	connections     prometheus.Gauge
	activeChannels  prometheus.Gauge
	participants    prometheus.Gauge
	inboundEvents   *prometheus.CounterVec
	eventDuration   *prometheus.HistogramVec
	messagesSent    prometheus.Counter
	deliveries      *prometheus.CounterVec
	lifecycleEvents *prometheus.CounterVec
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	publishedEvents *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		connections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_connections",
			Help:      "Open chat WebSocket connections.",
		}),
		activeChannels: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channels_active",
			Help:      "Channels that currently have at least one member.",
		}),
		participants: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "participants",
			Help:      "Registered participants.",
		}),
		inboundEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_inbound_events_total",
			Help:      "Inbound chat frames by type and result.",
		}, []string{"type", "result"}),
		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ws_event_duration_seconds",
			Help:      "Time spent handling one inbound chat frame.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}, []string{"type"}),
		messagesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Messages accepted into a channel log.",
		}),
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "message_deliveries_total",
			Help:      "Per-recipient message deliveries by result.",
		}, []string{"result"}),
		lifecycleEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_events_total",
			Help:      "Registry state changes by event type.",
		}, []string{"type"}),
		requestCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		publishedEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Lifecycle events handed to the message broker by result.",
		}, []string{"result"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ConnectionOpened() { m.connections.Inc() }

func (m *Metrics) ConnectionClosed() { m.connections.Dec() }

func (m *Metrics) InboundEvent(eventType, result string, took time.Duration) {
	m.inboundEvents.WithLabelValues(eventType, result).Inc()
	m.eventDuration.WithLabelValues(eventType).Observe(took.Seconds())
}

func (m *Metrics) Delivery(result string) {
	m.deliveries.WithLabelValues(result).Inc()
}

func (m *Metrics) HTTPRequest(method, route string, status int, took time.Duration) {
	m.requestCount.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

func (m *Metrics) EventPublished(result string) {
	m.publishedEvents.WithLabelValues(result).Inc()
}

// Observe keeps the registry gauges in step with lifecycle events.
func (m *Metrics) Observe(event domain.ChannelEvent) {
	m.lifecycleEvents.WithLabelValues(string(event.Type)).Inc()

	switch event.Type {
	case domain.EventParticipantConnected:
		m.participants.Inc()
	case domain.EventParticipantDisconnected:
		m.participants.Dec()
	case domain.EventChannelCreated:
		m.activeChannels.Inc()
	case domain.EventChannelDestroyed:
		m.activeChannels.Dec()
	case domain.EventMessageSent:
		m.messagesSent.Inc()
	}
}
