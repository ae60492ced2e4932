package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/uptrace/bun"
)

type RepositoryFilter struct {
	Slug string
}

// RepositoryStore scopes every read to the repositories a caller is a
// member of and whose GitHub id has been resolved.
type RepositoryStore struct {
	db bun.IDB
	t  table[models.Repository]
}

func NewRepositoryStore(db bun.IDB) *RepositoryStore {
	return &RepositoryStore{db: db, t: table[models.Repository]{db: db, kind: "repository"}}
}

// MemberRepoIDs returns the GitHub ids of every repository linked to userID.
func (s *RepositoryStore) MemberRepoIDs(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	ids := []int64{}
	err := s.db.NewSelect().
		Model((*models.GitHubRepository)(nil)).
		Column("repo_id").
		Where("user_id = ?", userID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *RepositoryStore) visible(ctx context.Context, caller *models.User) (QueryFilter, error) {
	ids, err := s.MemberRepoIDs(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return apply(q, RepoIDResolved(), RepoIDIn(ids))
	}, nil
}

func (s *RepositoryStore) List(ctx context.Context, caller *models.User, f RepositoryFilter) ([]*models.Repository, error) {
	scope, err := s.visible(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.t.list(ctx, scope, BySlug(f.Slug), OrderByName())
}

func (s *RepositoryStore) Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Repository, error) {
	scope, err := s.visible(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.t.get(ctx, scope, ByID(id))
}

// GetByID loads a repository without membership scoping.
func (s *RepositoryStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Repository, error) {
	return s.t.get(ctx, ByID(id))
}

// ListUnresolved returns every repository still missing a GitHub id,
// regardless of membership.
func (s *RepositoryStore) ListUnresolved(ctx context.Context) ([]*models.Repository, error) {
	return s.t.list(ctx, RepoIDUnresolved(), OrderByCreated())
}

// SetRepoID caches a resolved GitHub id.
func (s *RepositoryStore) SetRepoID(ctx context.Context, r *models.Repository, repoID int64) error {
	r.RepoID = &repoID
	return s.t.update(ctx, r, "repo_id")
}

func (s *RepositoryStore) Insert(ctx context.Context, r *models.Repository) error {
	return s.t.insert(ctx, r)
}

func (s *RepositoryStore) Update(ctx context.Context, r *models.Repository, columns ...string) error {
	return s.t.update(ctx, r, columns...)
}

func (s *RepositoryStore) Delete(ctx context.Context, r *models.Repository) error {
	return s.t.delete(ctx, r)
}

// ReplaceMemberships swaps the user's membership rows for links, in one
// transaction.
func (s *RepositoryStore) ReplaceMemberships(ctx context.Context, userID uuid.UUID, links []*models.GitHubRepository) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.GitHubRepository)(nil)).
			Where("user_id = ?", userID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		for _, l := range links {
			l.UserID = userID
			if l.ID == uuid.Nil {
				l.ID = uuid.New()
			}
		}
		_, err = tx.NewInsert().Model(&links).Exec(ctx)
		return err
	})
}
