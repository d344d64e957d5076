package main

import (
	"context"
	"expvar"
	"flag"
	"log"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/hilthontt/chatrelay/internal/infrastructure/configs"
	"github.com/hilthontt/chatrelay/internal/infrastructure/events"
	"github.com/hilthontt/chatrelay/internal/infrastructure/logging"
	"github.com/hilthontt/chatrelay/internal/infrastructure/messaging"
	"github.com/hilthontt/chatrelay/internal/infrastructure/metrics"
	"github.com/hilthontt/chatrelay/internal/infrastructure/ratelimiter"
	"github.com/hilthontt/chatrelay/internal/infrastructure/tracing"
	"github.com/hilthontt/chatrelay/internal/infrastructure/ws"
	"github.com/hilthontt/chatrelay/internal/persistence/db"
	"github.com/hilthontt/chatrelay/internal/persistence/repository"
	"github.com/hilthontt/chatrelay/internal/presentation/api"
	"github.com/hilthontt/chatrelay/internal/presentation/handler/audit"
	"github.com/hilthontt/chatrelay/internal/presentation/handler/channels"
	"github.com/hilthontt/chatrelay/internal/presentation/handler/chat"
	"github.com/hilthontt/chatrelay/internal/presentation/handler/health"
	"github.com/joho/godotenv"
)

const pruneInterval = time.Hour

//	@title			chatrelay API
//	@version		1.0
//	@description	Real-time group messaging relay. Chat traffic flows over the /chat WebSocket; the REST routes expose read-only views of live channels and the audit trail.
//	@BasePath		/

func main() {
	configFlag := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := configs.Load(configs.DetermineConfigPath(*configFlag))
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(&logging.LoggerConfig{
		FilePath: cfg.Logger.FilePath,
		Encoding: cfg.Logger.Encoding,
		Level:    cfg.Logger.Level,
		Logger:   cfg.Logger.Logger,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		tracerCfg := tracing.NewDefaultConfig(cfg.Tracing.ServiceName)
		tracerCfg.Endpoint = cfg.Tracing.Endpoint
		tracerCfg.Insecure = cfg.Tracing.Insecure
		tracerCfg.SampleRatio = cfg.Tracing.SampleRatio

		shutdownTracer, err := tracing.InitTracer(ctx, tracerCfg)
		if err != nil {
			logger.Fatal(logging.General, logging.Startup, "failed to initialize the tracer", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracer(shutdownCtx)
		}()
	}

	m := metrics.New()
	observers := domain.Observers{m}

	// The publisher outlives the core so the disconnects emitted while the
	// core shuts down still reach the broker.
	publisherCtx, stopPublisher := context.WithCancel(context.Background())
	defer stopPublisher()
	var background sync.WaitGroup

	var auditHandler *audit.Handler

	if cfg.Events.Enabled {
		rabbitmq, err := messaging.NewRabbitMQ(cfg.Events.URL, cfg.Events.Exchange, logger)
		if err != nil {
			logger.Fatal(logging.RabbitMQ, logging.Startup, "failed to connect to RabbitMQ", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
		defer rabbitmq.Close()

		publisher := events.NewChannelPublisher(rabbitmq, cfg.Events.QueueSize, logger, m)
		observers = append(observers, publisher)

		background.Add(1)
		go func() {
			defer background.Done()
			publisher.Run(publisherCtx)
		}()

		if cfg.Audit.Enabled {
			mongoClient, err := db.NewMongoClient(ctx, &db.MongoConfig{
				URI:               cfg.Audit.URI,
				Database:          cfg.Audit.Database,
				ConnectionTimeout: db.DefaultConnectionTimeout,
			}, logger)
			if err != nil {
				logger.Fatal(logging.MongoDB, logging.Startup, "failed to connect to MongoDB", map[logging.ExtraKey]any{
					logging.ErrorMessage: err.Error(),
				})
			}
			defer func() {
				disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = db.DisconnectMongo(disconnectCtx, mongoClient)
			}()

			auditRepo := repository.NewChannelAuditLogRepository(mongoClient.Database(cfg.Audit.Database), cfg.Audit.Collection)
			if err := auditRepo.EnsureIndexes(ctx); err != nil {
				logger.Fatal(logging.MongoDB, logging.Startup, "failed to create audit indexes", map[logging.ExtraKey]any{
					logging.ErrorMessage: err.Error(),
				})
			}

			consumer := events.NewAuditConsumer(rabbitmq, auditRepo, cfg.Audit.Retention, logger)
			if err := consumer.Listen(ctx); err != nil {
				logger.Fatal(logging.RabbitMQ, logging.Startup, "failed to start the audit consumer", map[logging.ExtraKey]any{
					logging.ErrorMessage: err.Error(),
				})
			}
			go consumer.RunPruner(ctx, pruneInterval)

			auditHandler = audit.NewHandler(auditRepo, logger)
		}
	}

	registry := domain.NewRegistry(
		domain.WithObserver(observers),
		domain.WithChannelName(cfg.Channels.DefaultName),
	)

	core := ws.NewCore(ws.CoreOptions{
		Registry:      registry,
		Logger:        logger,
		Metrics:       m,
		Tracer:        tracing.GetTracer("chatrelay/ws"),
		InboundLimit:  cfg.WebSocket.InboundLimit,
		InboundWindow: cfg.WebSocket.InboundWindow,
	})
	go core.Run(ctx)

	rl := ratelimiter.New(ratelimiter.Options{
		MaxRatePerSecond: cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:         cfg.RateLimiter.MaxBurst,
		CacheTTL:         cfg.RateLimiter.CacheTTL,
		SourceHeaderKey:  cfg.RateLimiter.SourceHeaderKey,
	})

	handlers := api.Handlers{
		Health:   health.NewHandler(),
		Channels: channels.NewHandler(registry),
		Chat: chat.NewHandler(core, chat.Config{
			ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
			WriteBufferSize: cfg.WebSocket.WriteBufferSize,
			AllowedOrigins:  cfg.HTTP.AllowedOrigins,
			Client: ws.ClientConfig{
				SendQueueSize:  cfg.WebSocket.SendQueueSize,
				MaxMessageSize: cfg.WebSocket.MaxMessageSize,
				WriteWait:      cfg.WebSocket.WriteWait,
				PongWait:       cfg.WebSocket.PongWait,
			},
		}, logger),
		Audit: auditHandler,
	}

	app := api.NewApplication(*cfg, handlers, logger, rl, m)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(ctx, mux); err != nil {
		logger.Error(logging.General, logging.Shutdown, "server stopped with error", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		stop()
	}

	<-core.Done()
	stopPublisher()
	background.Wait()

	logger.Info(logging.General, logging.Shutdown, "chatrelay stopped", nil)
}
