package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/configs"
	"github.com/hilthontt/chatrelay/internal/infrastructure/logging"
	"github.com/hilthontt/chatrelay/internal/infrastructure/metrics"
	"github.com/hilthontt/chatrelay/internal/infrastructure/ratelimiter"
	"github.com/hilthontt/chatrelay/internal/infrastructure/ws"
	channelsHandler "github.com/hilthontt/chatrelay/internal/presentation/handler/channels"
	chatHandler "github.com/hilthontt/chatrelay/internal/presentation/handler/chat"
	healthHandler "github.com/hilthontt/chatrelay/internal/presentation/handler/health"
	"github.com/stretchr/testify/require"
)

func testConfig() configs.Config {
	return configs.Config{
		HTTP: configs.HTTPConfig{
			Host:            "127.0.0.1",
			Port:            0,
			AllowedOrigins:  []string{"*"},
			AllowedHeaders:  []string{"Content-Type"},
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
	}
}

func newTestApp(t *testing.T, limiter ratelimiter.Limiter) (*Application, *metrics.Metrics) {
	t.Helper()

	registry := domain.NewRegistry()
	core := ws.NewCore(ws.CoreOptions{Registry: registry})
	ctx, cancel := context.WithCancel(context.Background())
	go core.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-core.Done()
	})

	m := metrics.New()
	handlers := Handlers{
		Health:   healthHandler.NewHandler(),
		Channels: channelsHandler.NewHandler(registry),
		Chat: chatHandler.NewHandler(core, chatHandler.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			AllowedOrigins:  []string{"*"},
		}, logging.NewNopLogger()),
	}

	if limiter == nil {
		limiter = ratelimiter.New(ratelimiter.Options{MaxRatePerSecond: 1000, MaxBurst: 1000})
	}

	return NewApplication(testConfig(), handlers, logging.NewNopLogger(), limiter, m), m
}

func serve(handler http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		r.Header[k] = v
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	return rec
}

func TestMount_Routes(t *testing.T) {
	app, _ := newTestApp(t, nil)
	mux := app.Mount()

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{name: "health", path: "/api/health", status: http.StatusOK},
		{name: "liveness", path: "/api/live", status: http.StatusOK},
		{name: "channels", path: "/api/channels", status: http.StatusOK},
		{name: "unknown channel", path: "/api/channels/7", status: http.StatusNotFound},
		{name: "bad channel id", path: "/api/channels/abc/messages", status: http.StatusBadRequest},
		{name: "hello", path: "/hello", status: http.StatusOK},
		{name: "audit disabled", path: "/api/audit", status: http.StatusNotFound},
		{name: "metrics", path: "/metrics", status: http.StatusOK},
		{name: "expvar", path: "/debug/vars", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(mux, http.MethodGet, tt.path, nil)
			require.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	req := require.New(t)

	// Given a limiter allowing a single request
	app, _ := newTestApp(t, ratelimiter.New(ratelimiter.Options{MaxRatePerSecond: 1, MaxBurst: 1}))
	mux := app.Mount()

	// When the same client calls twice
	first := serve(mux, http.MethodGet, "/hello", nil)
	second := serve(mux, http.MethodGet, "/hello", nil)

	// Then the second call is rejected
	req.Equal(http.StatusOK, first.Code)
	req.Equal("1", first.Header().Get("X-RateLimit-Limit"))
	req.Equal(http.StatusTooManyRequests, second.Code)
	req.Equal("0", second.Header().Get("X-RateLimit-Remaining"))
	req.Equal("1", second.Header().Get("Retry-After"))

	// And metrics stay reachable
	req.Equal(http.StatusOK, serve(mux, http.MethodGet, "/metrics", nil).Code)
}

func TestMount_ChatUpgradeBypassesRateLimiter(t *testing.T) {
	req := require.New(t)

	// Given a per-IP bucket far smaller than the number of connections
	app, _ := newTestApp(t, ratelimiter.New(ratelimiter.Options{MaxRatePerSecond: 1, MaxBurst: 2}))
	srv := httptest.NewServer(app.Mount())
	defer srv.Close()

	// When one host opens many chat connections at once
	const clients = 25
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat"

	var wg sync.WaitGroup
	errs := make(chan error, clients)
	conns := make(chan *websocket.Conn, clients)
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			if err != nil {
				errs <- err
				return
			}
			conns <- conn
		}()
	}
	wg.Wait()
	close(errs)
	close(conns)

	// Then every upgrade succeeds
	for err := range errs {
		req.NoError(err)
	}
	req.Len(conns, clients)
	for conn := range conns {
		_ = conn.Close()
	}

	// And plain HTTP routes stay limited
	serve(app.Mount(), http.MethodGet, "/hello", nil)
	serve(app.Mount(), http.MethodGet, "/hello", nil)
	req.Equal(http.StatusTooManyRequests, serve(app.Mount(), http.MethodGet, "/hello", nil).Code)
}

func TestPrometheusMiddleware_UsesRoutePattern(t *testing.T) {
	req := require.New(t)
	app, _ := newTestApp(t, nil)
	mux := app.Mount()

	serve(mux, http.MethodGet, "/api/channels/7", nil)
	serve(mux, http.MethodGet, "/api/channels/8", nil)

	rec := serve(mux, http.MethodGet, "/metrics", nil)
	body := rec.Body.String()
	req.Contains(body, `route="/api/channels/{channelId}"`)
	req.Contains(body, `status="404"`)
	req.NotContains(body, `route="/api/channels/7"`)
}

func TestCORSPreflight(t *testing.T) {
	req := require.New(t)
	app, _ := newTestApp(t, nil)

	rec := serve(app.Mount(), http.MethodOptions, "/api/channels", http.Header{
		"Origin":                        {"https://chat.example"},
		"Access-Control-Request-Method": {http.MethodGet},
	})

	req.Equal(http.StatusOK, rec.Code)
	req.Equal("*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMount_WebSocketThroughMiddleware(t *testing.T) {
	req := require.New(t)
	app, _ := newTestApp(t, nil)

	srv := httptest.NewServer(app.Mount())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/hello-ws", nil)
	req.NoError(err)
	defer conn.Close()

	req.NoError(conn.WriteMessage(websocket.TextMessage, []byte("there")))
	req.NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, raw, err := conn.ReadMessage()
	req.NoError(err)
	req.Equal("Hello world: there", string(raw))
}

func TestRun_GracefulShutdown(t *testing.T) {
	req := require.New(t)
	app, _ := newTestApp(t, nil)

	// Given a running server
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx, app.Mount()) }()

	// When the context is cancelled
	time.Sleep(50 * time.Millisecond)
	cancel()

	// Then Run returns cleanly and health reports unhealthy
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}

	rec := serve(app.Mount(), http.MethodGet, "/api/health", nil)
	req.Equal(http.StatusServiceUnavailable, rec.Code)
	body, err := io.ReadAll(rec.Body)
	req.NoError(err)
	req.Contains(string(body), "unhealthy")
}
