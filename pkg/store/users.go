package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/uptrace/bun"
)

// UserFilter has no fields; users are listed unfiltered.
type UserFilter struct{}

type UserStore struct {
	t table[models.User]
}

func NewUserStore(db bun.IDB) *UserStore {
	return &UserStore{t: table[models.User]{db: db, kind: "user"}}
}

func (s *UserStore) List(ctx context.Context, _ *models.User, _ UserFilter) ([]*models.User, error) {
	return s.t.list(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("username ASC")
	})
}

func (s *UserStore) Get(ctx context.Context, _ *models.User, id uuid.UUID) (*models.User, error) {
	return s.t.get(ctx, ByID(id))
}

// GetByID loads a user outside of any request scope.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.t.get(ctx, ByID(id))
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.t.get(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.username = ?", username)
	})
}

func (s *UserStore) Insert(ctx context.Context, u *models.User) error {
	return s.t.insert(ctx, u)
}

func (s *UserStore) Update(ctx context.Context, u *models.User, columns ...string) error {
	return s.t.update(ctx, u, columns...)
}

func (s *UserStore) Delete(ctx context.Context, u *models.User) error {
	return s.t.delete(ctx, u)
}
