// Package memory provides in-memory versions of the repositories for tests.
// They follow the MongoDB implementations: same ordering, same filters, same not-found errors.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/event-comments/backend/internal/models"
	"github.com/anonto42/event-comments/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentRepository is a mutex-guarded comment store
type CommentRepository struct {
	mu       sync.Mutex
	comments map[primitive.ObjectID]models.Comment
}

// NewCommentRepository creates an empty CommentRepository
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[primitive.ObjectID]models.Comment)}
}

var _ repositories.CommentRepository = (*CommentRepository)(nil)

func (r *CommentRepository) CreateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment.ID = primitive.NewObjectID()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	comment.CreatedAt = comment.CreatedAt.UTC().Truncate(time.Millisecond)
	r.comments[comment.ID] = *comment
	return nil
}

func (r *CommentRepository) GetCommentByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, repositories.ErrCommentNotFound
	}
	return &c, nil
}

func (r *CommentRepository) ListComments(_ context.Context, filter repositories.CommentFilter, skip, limit int64) ([]models.Comment, error) {
	r.mu.Lock()
	matched := r.match(filter)
	r.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.Hex() > matched[j].ID.Hex()
	})

	n := int64(len(matched))
	if skip < 0 {
		skip = 0
	}
	if skip >= n {
		return []models.Comment{}, nil
	}
	end := n
	if limit > 0 && limit < n-skip {
		end = skip + limit
	}
	return append([]models.Comment{}, matched[skip:end]...), nil
}

func (r *CommentRepository) CountComments(_ context.Context, filter repositories.CommentFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.match(filter))), nil
}

func (r *CommentRepository) UpdateComment(_ context.Context, id primitive.ObjectID, patch models.UpdateCommentRequest) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, repositories.ErrCommentNotFound
	}
	if patch.IsEmpty() {
		return &c, nil
	}
	if patch.Content != nil {
		c.Content = *patch.Content
	}
	if patch.LikeCount != nil {
		c.LikeCount = *patch.LikeCount
	}
	r.comments[id] = c
	return &c, nil
}

func (r *CommentRepository) IncrementLikeCount(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, repositories.ErrCommentNotFound
	}
	c.LikeCount++
	r.comments[id] = c
	return &c, nil
}

func (r *CommentRepository) DeleteComment(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, repositories.ErrCommentNotFound
	}
	delete(r.comments, id)
	return &c, nil
}

// match must be called with mu held.
func (r *CommentRepository) match(filter repositories.CommentFilter) []models.Comment {
	needle := strings.ToLower(filter.ContentContains)
	var out []models.Comment
	for _, c := range r.comments {
		if filter.EventID != nil && c.EventID != *filter.EventID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(c.Content), needle) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// UserRepository serves a fixed set of users and counts lookups
type UserRepository struct {
	mu    sync.Mutex
	users map[string]models.UserCompact
	Calls int
}

// NewUserRepository creates a UserRepository holding the given users
func NewUserRepository(users ...models.UserCompact) *UserRepository {
	r := &UserRepository{users: make(map[string]models.UserCompact, len(users))}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

var _ repositories.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) (map[string]models.UserCompact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls++
	out := make(map[string]models.UserCompact, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id.Hex()]; ok {
			out[id.Hex()] = u
		}
	}
	return out, nil
}

// EventRepository serves a fixed set of events and counts lookups
type EventRepository struct {
	mu     sync.Mutex
	events map[string]models.EventCompact
	Calls  int
}

// NewEventRepository creates an EventRepository holding the given events
func NewEventRepository(events ...models.EventCompact) *EventRepository {
	r := &EventRepository{events: make(map[string]models.EventCompact, len(events))}
	for _, e := range events {
		r.events[e.ID] = e
	}
	return r
}

var _ repositories.EventRepository = (*EventRepository)(nil)

func (r *EventRepository) GetEventsByIDs(_ context.Context, ids []primitive.ObjectID) (map[string]models.EventCompact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls++
	out := make(map[string]models.EventCompact, len(ids))
	for _, id := range ids {
		if e, ok := r.events[id.Hex()]; ok {
			out[id.Hex()] = e
		}
	}
	return out, nil
}
