package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mrlokans/digital-library/internal/entities"
)

const defaultAuditPageSize = 50

type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(coll *mongo.Collection) *AuditRepository {
	return &AuditRepository{coll: coll}
}

// LogEvent saves an audit event.
func (r *AuditRepository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	event.ID = ""
	id, err := insertOne(ctx, r.coll, event)
	if err != nil {
		return err
	}
	event.ID = id
	return nil
}

// GetEvents returns a page of events, most recent first, and the total
// number of events matching the filter.
func (r *AuditRepository) GetEvents(ctx context.Context, entityType string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	filter := bson.M{}
	if entityType != "" {
		filter["entityType"] = entityType
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = defaultAuditPageSize
	}
	if offset < 0 {
		offset = 0
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	events := []entities.AuditEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// DeleteOldEvents removes events created before olderThan.
func (r *AuditRepository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"createdAt": bson.M{"$lt": olderThan}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
