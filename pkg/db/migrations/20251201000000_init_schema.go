package migrations

import (
	"context"

	"github.com/quatton/metashare/pkg/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		tables := []struct {
			model       any
			foreignKeys []string
		}{
			{model: (*models.User)(nil)},
			{model: (*models.Repository)(nil)},
			{
				model: (*models.GitHubRepository)(nil),
				foreignKeys: []string{
					`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
				},
			},
			{
				model: (*models.Project)(nil),
				foreignKeys: []string{
					`("repository_id") REFERENCES "repositories" ("id") ON DELETE CASCADE`,
				},
			},
			{
				model: (*models.Task)(nil),
				foreignKeys: []string{
					`("project_id") REFERENCES "projects" ("id") ON DELETE CASCADE`,
					`("assigned_dev") REFERENCES "users" ("id") ON DELETE SET NULL`,
					`("assigned_qa") REFERENCES "users" ("id") ON DELETE SET NULL`,
				},
			},
			{
				model: (*models.ScratchOrg)(nil),
				foreignKeys: []string{
					`("task_id") REFERENCES "tasks" ("id") ON DELETE CASCADE`,
					`("owner_id") REFERENCES "users" ("id") ON DELETE CASCADE`,
				},
			},
		}

		for _, tbl := range tables {
			q := db.NewCreateTable().Model(tbl.model).IfNotExists()
			for _, fk := range tbl.foreignKeys {
				q = q.ForeignKey(fk)
			}
			if _, err := q.Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		for _, model := range []any{
			(*models.ScratchOrg)(nil),
			(*models.Task)(nil),
			(*models.Project)(nil),
			(*models.GitHubRepository)(nil),
			(*models.Repository)(nil),
			(*models.User)(nil),
		} {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
