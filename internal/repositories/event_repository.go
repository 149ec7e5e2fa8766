package repositories

import (
	"context"
	"time"

	"github.com/anonto42/event-comments/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventRepository resolves the events comments belong to
type EventRepository interface {
	// GetEventsByIDs returns the events found for the given IDs keyed by hex ID.
	GetEventsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[string]models.EventCompact, error)
}

// MongoEventRepository reads events from MongoDB
type MongoEventRepository struct {
	collection *mongo.Collection
}

// NewMongoEventRepository creates a new MongoEventRepository
func NewMongoEventRepository(db *mongo.Database, collection string) *MongoEventRepository {
	return &MongoEventRepository{collection: db.Collection(collection)}
}

type mongoEvent struct {
	ID       primitive.ObjectID `bson:"_id"`
	Name     string             `bson:"name"`
	Schedule time.Time          `bson:"schedule"`
}

// GetEventsByIDs fetches name and schedule for all the given IDs in one query
func (r *MongoEventRepository) GetEventsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[string]models.EventCompact, error) {
	result := make(map[string]models.EventCompact, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1, "schedule": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []mongoEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	for _, e := range events {
		result[e.ID.Hex()] = models.EventCompact{ID: e.ID.Hex(), Name: e.Name, Schedule: e.Schedule.UTC()}
	}
	return result, nil
}
