package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// stamp assigns an id on insert and keeps the timestamps current. updated
// may be nil for append-only tables.
func stamp(query bun.Query, id *uuid.UUID, created, updated *time.Time) {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if *id == uuid.Nil {
			*id = uuid.New()
		}
		if created.IsZero() {
			*created = now
		}
		if updated != nil {
			*updated = now
		}
	case *bun.UpdateQuery:
		if updated != nil {
			*updated = now
		}
	}
}

var (
	_ bun.BeforeAppendModelHook = (*User)(nil)
	_ bun.BeforeAppendModelHook = (*Repository)(nil)
	_ bun.BeforeAppendModelHook = (*GitHubRepository)(nil)
	_ bun.BeforeAppendModelHook = (*Project)(nil)
	_ bun.BeforeAppendModelHook = (*Task)(nil)
	_ bun.BeforeAppendModelHook = (*ScratchOrg)(nil)
)

func (u *User) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stamp(query, &u.ID, &u.CreatedAt, &u.UpdatedAt)
	return nil
}

func (r *Repository) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stamp(query, &r.ID, &r.CreatedAt, &r.UpdatedAt)
	return nil
}

func (g *GitHubRepository) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stamp(query, &g.ID, &g.CreatedAt, nil)
	return nil
}

func (p *Project) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stamp(query, &p.ID, &p.CreatedAt, &p.UpdatedAt)
	return nil
}

func (t *Task) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stamp(query, &t.ID, &t.CreatedAt, &t.UpdatedAt)
	return nil
}

func (o *ScratchOrg) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stamp(query, &o.ID, &o.CreatedAt, &o.UpdatedAt)
	return nil
}
