package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "club-signup/internal/common/errors"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client)
	t.Cleanup(func() { _ = store.Close() })
	return mr, store
}

func TestRedisStore_Create(t *testing.T) {
	mr, store := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Create(ctx, "students", "id-1", testApplication()))

	got, err := mr.Get("students:id-1")
	require.NoError(t, err)
	assert.JSONEq(t, testRecordJSON, got)
	assert.Equal(t, time.Duration(0), mr.TTL("students:id-1"))
}

func TestRedisStore_Duplicate(t *testing.T) {
	mr, store := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("students:id-1", `{"fullName":"First"}`))

	err := store.Create(ctx, "students", "id-1", testApplication())
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDocumentExists))

	got, _ := mr.Get("students:id-1")
	assert.Equal(t, `{"fullName":"First"}`, got)
}

func TestRedisStore_WriteError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client)

	mock.ExpectSetNX("students:id-1", testRecordJSON, 0).SetErr(errors.New("connection reset"))

	err := store.Create(context.Background(), "students", "id-1", testApplication())

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDocumentWriteFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_PingFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}))
	defer store.Close()
	mr.Close()

	assert.Error(t, store.Ping(context.Background()))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "students:abc", Key("students", "abc"))
}
