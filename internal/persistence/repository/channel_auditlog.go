package repository

import (
	"context"
	"time"

	"github.com/hilthontt/chatrelay/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DefaultAuditLogsCollection = "channel_audit_logs"

type channelAuditLogRepository struct {
	collection *mongo.Collection
}

func NewChannelAuditLogRepository(db *mongo.Database, collection string) domain.ChannelAuditRepository {
	if collection == "" {
		collection = DefaultAuditLogsCollection
	}
	return &channelAuditLogRepository{
		collection: db.Collection(collection),
	}
}

func (r *channelAuditLogRepository) Log(ctx context.Context, log *domain.ChannelAuditLog) error {
	_, err := r.collection.InsertOne(ctx, log)
	return err
}

func (r *channelAuditLogRepository) GetByChannelID(ctx context.Context, channelID domain.ChannelID, limit int) ([]domain.ChannelAuditLog, error) {
	filter := bson.M{"channel_id": channelID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	return r.find(ctx, filter, opts)
}

func (r *channelAuditLogRepository) GetByEventType(ctx context.Context, eventType domain.ChannelEventType, from, to time.Time) ([]domain.ChannelAuditLog, error) {
	filter := bson.M{
		"event_type": eventType,
		"timestamp": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	return r.find(ctx, filter, opts)
}

func (r *channelAuditLogRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.ChannelAuditLog, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []domain.ChannelAuditLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *channelAuditLogRepository) DeleteOlderThan(ctx context.Context, before time.Time) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{
		"timestamp": bson.M{"$lt": before},
	})
	return err
}

func (r *channelAuditLogRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "channel_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "event_type", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
