package api

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/hilthontt/chatrelay/docs"
	"github.com/hilthontt/chatrelay/internal/infrastructure/configs"
	"github.com/hilthontt/chatrelay/internal/infrastructure/logging"
	"github.com/hilthontt/chatrelay/internal/infrastructure/metrics"
	"github.com/hilthontt/chatrelay/internal/infrastructure/ratelimiter"
	auditHandler "github.com/hilthontt/chatrelay/internal/presentation/handler/audit"
	channelsHandler "github.com/hilthontt/chatrelay/internal/presentation/handler/channels"
	chatHandler "github.com/hilthontt/chatrelay/internal/presentation/handler/chat"
	healthHandler "github.com/hilthontt/chatrelay/internal/presentation/handler/health"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const apiTimeout = 60 * time.Second

// Handlers groups the route handlers. Audit is nil when the audit trail is
// disabled, and its routes are then not mounted.
type Handlers struct {
	Health   *healthHandler.Handler
	Channels *channelsHandler.Handler
	Chat     *chatHandler.Handler
	Audit    *auditHandler.Handler
}

type Application struct {
	config      configs.Config
	handlers    Handlers
	logger      logging.Logger
	ratelimiter ratelimiter.Limiter
	metrics     *metrics.Metrics
}

func NewApplication(
	config configs.Config,
	handlers Handlers,
	logger logging.Logger,
	ratelimiter ratelimiter.Limiter,
	metrics *metrics.Metrics,
) *Application {
	return &Application{
		config:      config,
		handlers:    handlers,
		logger:      logger,
		ratelimiter: ratelimiter,
		metrics:     metrics,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(app.prometheusMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.HTTP.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: app.config.HTTP.AllowedHeaders,
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         300,
	}))

	// Chat connections are long-lived and their frames are limited per session
	// by the ws core, so the per-IP bucket does not apply to the upgrade.
	r.Get("/chat", app.handlers.Chat.ChatHandler)

	r.Group(func(r chi.Router) {
		r.Use(app.rateLimiterMiddleware)

		r.Get("/hello", app.handlers.Chat.HelloHandler)
		r.Get("/hello-ws", app.handlers.Chat.HelloWSHandler)

		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.Timeout(apiTimeout))

			r.Get("/health", app.handlers.Health.GetHealth)
			r.Get("/healthz", app.handlers.Health.GetHealth)
			r.Get("/ready", app.handlers.Health.GetHealth)
			r.Get("/live", app.handlers.Health.GetHealth)

			r.Route("/channels", func(r chi.Router) {
				r.Get("/", app.handlers.Channels.ListChannelsHandler)
				r.Get("/{channelId}", app.handlers.Channels.GetChannelHandler)
				r.Get("/{channelId}/messages", app.handlers.Channels.GetMessagesHandler)

				if app.handlers.Audit != nil {
					r.Get("/{channelId}/audit", app.handlers.Audit.GetChannelAuditHandler)
				}
			})

			if app.handlers.Audit != nil {
				r.Get("/audit", app.handlers.Audit.GetEventsHandler)
			}
		})
	})

	if app.metrics != nil {
		r.Handle("/metrics", app.metrics.Handler())
	}
	r.Handle("/debug/vars", expvar.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}

// Run serves mux until ctx is cancelled, then marks the service unhealthy
// and drains in-flight requests within the configured shutdown timeout.
func (app *Application) Run(ctx context.Context, mux http.Handler) error {
	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler: otelhttp.NewHandler(mux, "http.server",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		IdleTimeout:  time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
			"addr": srv.Addr,
		})
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.handlers.Health.MarkUnhealthy()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.HTTP.ShutdownTimeout)
	defer cancel()

	app.logger.Info(logging.General, logging.Shutdown, "shutting down server", map[logging.ExtraKey]any{
		"addr":    srv.Addr,
		"timeout": app.config.HTTP.ShutdownTimeout.String(),
	})

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	return nil
}
