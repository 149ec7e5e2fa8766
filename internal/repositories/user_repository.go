package repositories

import (
	"context"

	"github.com/anonto42/event-comments/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// UserRepository resolves comment authors. Lookups are batched: one call per result set.
type UserRepository interface {
	// GetUsersByIDs returns the users found for the given IDs keyed by hex ID.
	// IDs without a matching user are absent from the map.
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[string]models.UserCompact, error)
}

// MongoUserRepository reads users from the shared MongoDB database
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database, collection string) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection(collection)}
}

type mongoUser struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	Gmail    string             `bson:"gmail"`
}

// GetUsersByIDs fetches username and contact handle for all the given IDs in one query
func (r *MongoUserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[string]models.UserCompact, error) {
	result := make(map[string]models.UserCompact, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	opts := options.Find().SetProjection(bson.M{"username": 1, "gmail": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []mongoUser
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID.Hex()] = models.UserCompact{ID: u.ID.Hex(), Username: u.Username, Email: u.Gmail}
	}
	return result, nil
}

// PostgresUserRepository reads users from the account service's PostgreSQL table
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// GetUsersByIDs fetches all the given users with a single IN query
func (r *PostgresUserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[string]models.UserCompact, error) {
	result := make(map[string]models.UserCompact, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	hexIDs := make([]string, len(ids))
	for i, id := range ids {
		hexIDs[i] = id.Hex()
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Select("id", "username", "email").Where("id IN ?", hexIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u.ToCompact()
	}
	return result, nil
}
