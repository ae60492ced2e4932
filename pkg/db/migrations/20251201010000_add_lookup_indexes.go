package migrations

import (
	"context"

	"github.com/quatton/metashare/pkg/db/models"
	"github.com/uptrace/bun"
)

type index struct {
	name    string
	model   any
	columns []string
	unique  bool
}

var lookupIndexes = []index{
	{name: "github_repositories_user_repo_idx", model: (*models.GitHubRepository)(nil), columns: []string{"user_id", "repo_id"}, unique: true},
	{name: "projects_repository_slug_idx", model: (*models.Project)(nil), columns: []string{"repository_id", "slug"}, unique: true},
	{name: "tasks_project_slug_idx", model: (*models.Task)(nil), columns: []string{"project_id", "slug"}, unique: true},
	{name: "scratch_orgs_task_idx", model: (*models.ScratchOrg)(nil), columns: []string{"task_id"}},
	{name: "scratch_orgs_owner_idx", model: (*models.ScratchOrg)(nil), columns: []string{"owner_id"}},
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		for _, idx := range lookupIndexes {
			q := db.NewCreateIndex().
				Model(idx.model).
				Index(idx.name).
				Column(idx.columns...).
				IfNotExists()
			if idx.unique {
				q = q.Unique()
			}
			if _, err := q.Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		for _, idx := range lookupIndexes {
			if _, err := db.NewDropIndex().Index(idx.name).IfExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
