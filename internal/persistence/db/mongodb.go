package db

import (
	"context"
	"fmt"
	"time"

	"github.com/hilthontt/chatrelay/internal/infrastructure/logging"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	DefaultDatabase          = "chatrelay"
	DefaultConnectionTimeout = 20 * time.Second
)

type MongoConfig struct {
	URI               string
	Database          string
	ConnectionTimeout time.Duration
}

func (c *MongoConfig) validate() error {
	if c == nil {
		return fmt.Errorf("mongodb config is required")
	}
	if c.URI == "" {
		return fmt.Errorf("mongodb URI is required")
	}
	if c.Database == "" {
		return fmt.Errorf("mongodb database is required")
	}
	return nil
}

func NewMongoClient(ctx context.Context, cfg *MongoConfig, logger logging.Logger) (*mongo.Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	timeout := cfg.ConnectionTimeout
	if timeout <= 0 {
		timeout = DefaultConnectionTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info(logging.MongoDB, logging.Startup, "connected to mongodb", map[logging.ExtraKey]any{
		"database": cfg.Database,
	})
	return client, nil
}

func DisconnectMongo(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}

	disconnectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Disconnect(disconnectCtx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}
