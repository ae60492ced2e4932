package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/quatton/metashare/pkg/db/dbtest"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/kv"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/quatton/metashare/pkg/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, kvStore kv.Store) (*AuthService, *models.User) {
	t.Helper()
	users := store.New(dbtest.New(t)).Users
	u := &models.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, users.Insert(context.Background(), u))
	svc := NewAuthService(Config{Secret: "test-secret", AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour}, users, kvStore, mslog.NewDiscard())
	return svc, u
}

func redisStore(t *testing.T) kv.Store {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return kv.NewRedisStore(client, "test:")
}

func TestRefreshTokenRedeemedOnce(t *testing.T) {
	backends := map[string]func(t *testing.T) kv.Store{
		"memory": func(*testing.T) kv.Store { return kv.NewMemoryStore() },
		"redis":  redisStore,
	}
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			svc, u := newService(t, backend(t))
			ctx := context.Background()
			pair, err := svc.IssueTokensWithRefresh(ctx, u)
			require.NoError(t, err)

			const callers = 8
			var (
				wg       sync.WaitGroup
				mu       sync.Mutex
				winners  int
				rejected int
			)
			for i := 0; i < callers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := svc.RefreshTokens(ctx, pair.RefreshToken)
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						winners++
					case errors.Is(err, ErrInvalidRefreshToken):
						rejected++
					default:
						t.Errorf("unexpected error: %v", err)
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, 1, winners)
			assert.Equal(t, callers-1, rejected)
		})
	}
}

func TestRefreshTokenForDeletedUser(t *testing.T) {
	svc, u := newService(t, kv.NewMemoryStore())
	ctx := context.Background()
	pair, err := svc.IssueTokensWithRefresh(ctx, u)
	require.NoError(t, err)
	require.NoError(t, svc.users.Delete(ctx, u))

	_, err = svc.RefreshTokens(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
