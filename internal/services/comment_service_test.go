package services

import (
	"context"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/event-comments/backend/internal/models"
	"github.com/anonto42/event-comments/backend/internal/repositories/memory"
	"github.com/anonto42/event-comments/backend/internal/validators"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	svc      *CommentService
	comments *memory.CommentRepository
	users    *memory.UserRepository
	events   *memory.EventRepository
	author   models.UserCompact
	event    models.EventCompact
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	author := models.UserCompact{ID: primitive.NewObjectID().Hex(), Username: "ana", Email: "ana@example.com"}
	event := models.EventCompact{
		ID:       primitive.NewObjectID().Hex(),
		Name:     "Jazz Night",
		Schedule: time.Date(2026, 11, 20, 21, 0, 0, 0, time.UTC),
	}

	f := &fixture{
		comments: memory.NewCommentRepository(),
		users:    memory.NewUserRepository(author),
		events:   memory.NewEventRepository(event),
		author:   author,
		event:    event,
	}
	f.svc = NewCommentService(f.comments, f.users, f.events, validators.NewValidator())
	return f
}

func (f *fixture) create(t *testing.T, content string, createdAt time.Time) *models.Comment {
	t.Helper()
	c, err := f.svc.Create(context.Background(), models.CreateCommentRequest{
		Content:   content,
		AuthorID:  f.author.ID,
		EventID:   f.event.ID,
		CreatedAt: &createdAt,
	})
	require.NoError(t, err)
	return c
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestCreate_Defaults(t *testing.T) {
	f := newFixture(t)

	before := time.Now().Add(-time.Second)
	c, err := f.svc.Create(context.Background(), models.CreateCommentRequest{
		Content:  "Great event",
		AuthorID: f.author.ID,
		EventID:  f.event.ID,
	})
	require.NoError(t, err)

	require.False(t, c.ID.IsZero())
	require.Equal(t, 0, c.LikeCount)
	require.Equal(t, "Great event", c.Content)
	require.Equal(t, f.author.ID, c.AuthorID.Hex())
	require.Equal(t, f.event.ID, c.EventID.Hex())
	require.True(t, c.CreatedAt.After(before), "created_at %v should be after %v", c.CreatedAt, before)
	require.True(t, c.CreatedAt.Before(time.Now().Add(time.Second)))
}

func TestCreate_KeepsSuppliedValues(t *testing.T) {
	f := newFixture(t)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c, err := f.svc.Create(context.Background(), models.CreateCommentRequest{
		Content:   "ok",
		AuthorID:  f.author.ID,
		EventID:   f.event.ID,
		LikeCount: intPtr(7),
		CreatedAt: &at,
	})
	require.NoError(t, err)
	require.Equal(t, 7, c.LikeCount)
	require.True(t, c.CreatedAt.Equal(at))
}

func TestCreate_InvalidInputPersistsNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CreateCommentRequest
	}{
		{"empty content", models.CreateCommentRequest{AuthorID: f.author.ID, EventID: f.event.ID}},
		{"content too long", models.CreateCommentRequest{Content: strings.Repeat("x", 501), AuthorID: f.author.ID, EventID: f.event.ID}},
		{"missing author", models.CreateCommentRequest{Content: "x", EventID: f.event.ID}},
		{"malformed author", models.CreateCommentRequest{Content: "x", AuthorID: "not-an-id", EventID: f.event.ID}},
		{"malformed event", models.CreateCommentRequest{Content: "x", AuthorID: f.author.ID, EventID: "123"}},
		{"negative likes", models.CreateCommentRequest{Content: "x", AuthorID: f.author.ID, EventID: f.event.ID, LikeCount: intPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tt.req)
			require.ErrorIs(t, err, ErrValidation)
		})
	}

	page, err := f.svc.ListAll(ctx, 1, 10)
	require.NoError(t, err)
	require.Zero(t, page.Total)
}

func TestCreate_DoesNotRequireExistingAuthorOrEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, models.CreateCommentRequest{
		Content:  "orphan",
		AuthorID: primitive.NewObjectID().Hex(),
		EventID:  primitive.NewObjectID().Hex(),
	})
	require.NoError(t, err)

	got, err := f.svc.GetByID(ctx, c.ID.Hex())
	require.NoError(t, err)
	require.Nil(t, got.Author)
	require.Nil(t, got.Event)
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, "hello", time.Now())

	got, err := f.svc.GetByID(ctx, c.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, c.Content, got.Content)
	require.NotNil(t, got.Author)
	require.Equal(t, f.author, *got.Author)
	require.NotNil(t, got.Event)
	require.Equal(t, f.event, *got.Event)

	again, err := f.svc.GetByID(ctx, c.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestGetByID_MalformedVersusMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetByID(ctx, "xyz")
	require.ErrorIs(t, err, ErrInvalidID)
	require.NotErrorIs(t, err, ErrCommentNotFound)

	_, err = f.svc.GetByID(ctx, primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrCommentNotFound)
	require.NotErrorIs(t, err, ErrInvalidID)
}

func TestListAll_Pagination(t *testing.T) {
	tests := []struct {
		name  string
		total int
		size  int
	}{
		{"empty store", 0, 1},
		{"empty store default size", 0, 10},
		{"single record", 1, 1},
		{"size above total", 5, 10},
		{"size equals total", 10, 10},
		{"partial last page", 25, 10},
		{"uneven split", 7, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			for i := 0; i < tt.total; i++ {
				f.create(t, "comment", base.Add(time.Duration(i)*time.Minute))
			}
			wantPages := (tt.total + tt.size - 1) / tt.size

			seen := make(map[primitive.ObjectID]bool)
			var prev time.Time
			for page := 1; page <= wantPages; page++ {
				res, err := f.svc.ListAll(ctx, page, tt.size)
				require.NoError(t, err)
				require.EqualValues(t, tt.total, res.Total)
				require.Equal(t, page, res.Page)
				require.Equal(t, wantPages, res.TotalPages)
				require.NotEmpty(t, res.Records, "page %d", page)
				require.LessOrEqual(t, len(res.Records), tt.size)

				for _, r := range res.Records {
					require.False(t, seen[r.ID], "comment %s returned twice", r.ID.Hex())
					seen[r.ID] = true
					if !prev.IsZero() {
						require.True(t, r.CreatedAt.Before(prev), "records must be newest first")
					}
					prev = r.CreatedAt
				}
			}
			require.Len(t, seen, tt.total, "pages must cover every record")

			beyond, err := f.svc.ListAll(ctx, wantPages+1, tt.size)
			require.NoError(t, err)
			require.NotNil(t, beyond.Records)
			require.Empty(t, beyond.Records)
			require.EqualValues(t, tt.total, beyond.Total)
			require.Equal(t, wantPages, beyond.TotalPages)
		})
	}
}

func TestListAll_HugePagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		f.create(t, "c", time.Now())
	}

	for _, tc := range []struct{ page, size int }{
		{math.MaxInt, 10},
		{2, math.MaxInt},
		{math.MaxInt, math.MaxInt},
	} {
		res, err := f.svc.ListAll(ctx, tc.page, tc.size)
		require.NoError(t, err, "page=%d size=%d", tc.page, tc.size)
		require.NotNil(t, res.Records)
		require.Empty(t, res.Records)
		require.EqualValues(t, 3, res.Total)
	}

	res, err := f.svc.ListAll(ctx, 1, math.MaxInt)
	require.NoError(t, err)
	require.Len(t, res.Records, 3)
	require.Equal(t, 1, res.TotalPages)
}

func TestListAll_NormalizesPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		f.create(t, "c", time.Now())
	}

	res, err := f.svc.ListAll(ctx, 0, -3)
	require.NoError(t, err)
	require.Equal(t, 1, res.Page)
	require.Len(t, res.Records, DefaultPageSize)
	require.Equal(t, 2, res.TotalPages)
}

func TestListByEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, "for jazz", time.Now())
	other := primitive.NewObjectID().Hex()
	_, err := f.svc.Create(ctx, models.CreateCommentRequest{Content: "elsewhere", AuthorID: f.author.ID, EventID: other})
	require.NoError(t, err)

	res, err := f.svc.ListByEvent(ctx, f.event.ID, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
	require.Equal(t, "for jazz", res.Records[0].Content)

	_, err = f.svc.ListByEvent(ctx, "bad", 1, 10)
	require.ErrorIs(t, err, ErrInvalidID)
}

func TestListByEvent_UnknownEventIsEmpty(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.ListByEvent(context.Background(), primitive.NewObjectID().Hex(), 1, 10)
	require.NoError(t, err)
	require.NotNil(t, res.Records)
	require.Empty(t, res.Records)
	require.Zero(t, res.Total)
	require.Zero(t, res.TotalPages)
	require.Equal(t, 1, res.Page)
}

func TestListByEvent_NilObjectIDIsAFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, "for jazz", time.Now())
	_, err := f.svc.Create(ctx, models.CreateCommentRequest{
		Content:  "zero event",
		AuthorID: f.author.ID,
		EventID:  primitive.NilObjectID.Hex(),
	})
	require.NoError(t, err)

	res, err := f.svc.ListByEvent(ctx, primitive.NilObjectID.Hex(), 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
	require.Len(t, res.Records, 1)
	require.Equal(t, "zero event", res.Records[0].Content)
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, "Excelente evento", time.Now())
	f.create(t, "muy EXCELENTE", time.Now())
	f.create(t, "malo", time.Now())

	res, err := f.svc.Search(ctx, "excelente", 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, res.Total)
	for _, r := range res.Records {
		require.Contains(t, strings.ToLower(r.Content), "excelente")
	}
}

func TestSearch_QueryIsLiteral(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, "axb", time.Now())
	f.create(t, "a.b", time.Now())

	res, err := f.svc.Search(ctx, "a.b", 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
	require.Equal(t, "a.b", res.Records[0].Content)
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, "first", time.Now())

	got, err := f.svc.Update(ctx, c.ID.Hex(), models.UpdateCommentRequest{Content: strPtr("second"), LikeCount: intPtr(4)})
	require.NoError(t, err)
	require.Equal(t, "second", got.Content)
	require.Equal(t, 4, got.LikeCount)
	require.Equal(t, c.AuthorID, got.AuthorID)
	require.Equal(t, c.EventID, got.EventID)
	require.True(t, c.CreatedAt.Equal(got.CreatedAt))
	require.NotNil(t, got.Author)

	same, err := f.svc.Update(ctx, c.ID.Hex(), models.UpdateCommentRequest{})
	require.NoError(t, err)
	require.Equal(t, "second", same.Content)
}

func TestUpdate_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, "keep", time.Now())

	_, err := f.svc.Update(ctx, c.ID.Hex(), models.UpdateCommentRequest{Content: strPtr("")})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Update(ctx, c.ID.Hex(), models.UpdateCommentRequest{LikeCount: intPtr(-2)})
	require.ErrorIs(t, err, ErrValidation)

	got, err := f.svc.GetByID(ctx, c.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "keep", got.Content)
	require.Equal(t, 0, got.LikeCount)

	_, err = f.svc.Update(ctx, "nope", models.UpdateCommentRequest{Content: strPtr("x")})
	require.ErrorIs(t, err, ErrInvalidID)

	_, err = f.svc.Update(ctx, primitive.NewObjectID().Hex(), models.UpdateCommentRequest{Content: strPtr("x")})
	require.ErrorIs(t, err, ErrCommentNotFound)
}

func TestIncrementLike_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, "popular", time.Now())

	const likes = 50
	errs := make(chan error, likes)
	var wg sync.WaitGroup
	for i := 0; i < likes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.IncrementLike(ctx, c.ID.Hex())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := f.svc.GetByID(ctx, c.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, likes, got.LikeCount)
}

func TestIncrementLike_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.IncrementLike(ctx, "bad")
	require.ErrorIs(t, err, ErrInvalidID)

	_, err = f.svc.IncrementLike(ctx, primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, "bye", time.Now())

	deleted, err := f.svc.Delete(ctx, c.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, c.ID, deleted.ID)
	require.Equal(t, "bye", deleted.Content)

	_, err = f.svc.GetByID(ctx, c.ID.Hex())
	require.ErrorIs(t, err, ErrCommentNotFound)

	_, err = f.svc.Delete(ctx, c.ID.Hex())
	require.ErrorIs(t, err, ErrCommentNotFound)

	_, err = f.svc.Delete(ctx, "bad")
	require.ErrorIs(t, err, ErrInvalidID)
}

func TestListAll_EnrichesInOneBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		f.create(t, "batch", time.Now())
	}
	f.users.Calls, f.events.Calls = 0, 0

	res, err := f.svc.ListAll(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, res.Records, 10)
	require.Equal(t, 1, f.users.Calls)
	require.Equal(t, 1, f.events.Calls)
	for _, r := range res.Records {
		require.NotNil(t, r.Author)
		require.NotNil(t, r.Event)
	}
}

func TestListAll_EmptyDoesNotLookUpRefs(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.ListAll(context.Background(), 1, 10)
	require.NoError(t, err)
	require.NotNil(t, res.Records)
	require.Zero(t, f.users.Calls)
	require.Zero(t, f.events.Calls)
}
