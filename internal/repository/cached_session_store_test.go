package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/mathsession-backend/internal/config"
	"github.com/stemsi/mathsession-backend/internal/model"
	"github.com/stemsi/mathsession-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore counts GetSession calls reaching the backing store.
type countingStore struct {
	service.SessionStore
	gets int
}

func (c *countingStore) GetSession(ctx context.Context, id string) (*model.ProblemSession, error) {
	c.gets++
	return c.SessionStore.GetSession(ctx, id)
}

func newTestCachedStore(t *testing.T) (*CachedSessionStore, *countingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	inner := &countingStore{SessionStore: newTestSQLiteRepository(t)}
	return NewCachedSessionStore(inner, rdb, time.Hour, zerolog.Nop()), inner, mr
}

func TestCachedSessionStore_WriteThroughAndHit(t *testing.T) {
	store, inner, mr := newTestCachedStore(t)
	ctx := context.Background()

	created, err := store.CreateSession(ctx, "7 x 8?", 56)
	require.NoError(t, err)

	key := config.CacheKey.ProblemSessionKey(created.ID.String())
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	got, err := store.GetSession(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 56.0, got.CorrectAnswer)
	assert.Equal(t, 0, inner.gets)
}

func TestCachedSessionStore_MissPopulates(t *testing.T) {
	store, inner, mr := newTestCachedStore(t)
	ctx := context.Background()

	created, err := store.CreateSession(ctx, "12 / 4?", 3)
	require.NoError(t, err)
	mr.FlushAll()

	_, err = store.GetSession(ctx, created.ID.String())
	require.NoError(t, err)
	_, err = store.GetSession(ctx, created.ID.String())
	require.NoError(t, err)

	assert.Equal(t, 1, inner.gets)
	assert.True(t, mr.Exists(config.CacheKey.ProblemSessionKey(created.ID.String())))
}

func TestCachedSessionStore_RedisDownFallsBack(t *testing.T) {
	store, inner, mr := newTestCachedStore(t)
	ctx := context.Background()

	created, err := store.CreateSession(ctx, "9 - 4?", 5)
	require.NoError(t, err)
	mr.Close()

	got, err := store.GetSession(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.CorrectAnswer)
	assert.Equal(t, 1, inner.gets)
}

func TestCachedSessionStore_NotFoundIsNotCached(t *testing.T) {
	store, _, mr := newTestCachedStore(t)
	id := uuid.NewString()

	_, err := store.GetSession(context.Background(), id)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.False(t, mr.Exists(config.CacheKey.ProblemSessionKey(id)))

	_, err = store.GetSession(context.Background(), "bogus")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCachedSessionStore_DelegatesSubmissions(t *testing.T) {
	store, _, _ := newTestCachedStore(t)
	ctx := context.Background()

	created, err := store.CreateSession(ctx, "2 + 2?", 4)
	require.NoError(t, err)
	require.NoError(t, store.CreateSubmission(ctx, &model.Submission{
		SessionID: created.ID, UserAnswer: 4, IsCorrect: true, FeedbackText: "Yes!",
	}))

	subs, err := store.ListSubmissions(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}
