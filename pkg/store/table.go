package store

import (
	"context"

	"github.com/uptrace/bun"
)

// table carries the CRUD statements shared by every store. M is a bun
// model struct type; kind names it in not-found errors.
type table[M any] struct {
	db   bun.IDB
	kind string
}

func (t table[M]) get(ctx context.Context, filters ...QueryFilter) (*M, error) {
	m := new(M)
	err := apply(t.db.NewSelect().Model(m), filters...).Limit(1).Scan(ctx)
	if err != nil {
		return nil, notFound(err, t.kind)
	}
	return m, nil
}

func (t table[M]) list(ctx context.Context, filters ...QueryFilter) ([]*M, error) {
	items := []*M{}
	if err := apply(t.db.NewSelect().Model(&items), filters...).Scan(ctx); err != nil {
		return nil, err
	}
	return items, nil
}

func (t table[M]) insert(ctx context.Context, m *M) error {
	_, err := t.db.NewInsert().Model(m).Exec(ctx)
	return err
}

// update writes columns (plus updated_at), or every mutable column when
// none are given.
func (t table[M]) update(ctx context.Context, m *M, columns ...string) error {
	q := t.db.NewUpdate().Model(m).WherePK()
	if len(columns) > 0 {
		cols := append(append([]string(nil), columns...), "updated_at")
		q = q.Column(cols...)
	} else {
		q = q.ExcludeColumn("id", "created_at")
	}
	res, err := q.Exec(ctx)
	return requireAffected(res, err, t.kind)
}

func (t table[M]) delete(ctx context.Context, m *M) error {
	res, err := t.db.NewDelete().Model(m).WherePK().Exec(ctx)
	return requireAffected(res, err, t.kind)
}
