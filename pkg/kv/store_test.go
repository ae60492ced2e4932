package kv

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract runs the behaviour every backend must share.
func storeContract(t *testing.T, s Store, advance func(time.Duration)) {
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "a", []byte("1"), 0))
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	ok, err := s.SetNX(ctx, "a", []byte("2"), 0)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.SetNX(ctx, "b", []byte("2"), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	advance(2 * time.Minute)
	_, err = s.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "once", []byte("token"), time.Minute))
	got, err = s.GetDel(ctx, "once")
	require.NoError(t, err)
	assert.Equal(t, []byte("token"), got)
	_, err = s.GetDel(ctx, "once")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	storeContract(t, s, func(d time.Duration) { now = now.Add(d) })
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := NewRedisStore(client, "test:")
	storeContract(t, s, mr.FastForward)

	require.NoError(t, s.Set(context.Background(), "c", []byte("x"), 0))
	assert.True(t, mr.Exists("test:c"))
}

func TestNewRedisClientPing(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	mr.Close()
	_, err = NewRedisClient(context.Background(), RedisConfig{Addr: mr.Addr()})
	assert.Error(t, err)
}
