// Package store holds the query functions behind every resource. Scoping
// is expressed as named QueryFilter values composed per request.
package store

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// QueryFilter narrows a select query.
type QueryFilter func(q *bun.SelectQuery) *bun.SelectQuery

func apply(q *bun.SelectQuery, filters ...QueryFilter) *bun.SelectQuery {
	for _, f := range filters {
		if f != nil {
			q = f(q)
		}
	}
	return q
}

func ByID(id uuid.UUID) QueryFilter {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.id = ?", id)
	}
}

// BySlug matches the slug column. An empty slug matches everything.
func BySlug(slug string) QueryFilter {
	if slug == "" {
		return nil
	}
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.slug = ?", slug)
	}
}

func ByRepository(id *uuid.UUID) QueryFilter {
	if id == nil {
		return nil
	}
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.repository_id = ?", *id)
	}
}

func ByProject(id *uuid.UUID) QueryFilter {
	if id == nil {
		return nil
	}
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.project_id = ?", *id)
	}
}

func ByTask(id *uuid.UUID) QueryFilter {
	if id == nil {
		return nil
	}
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.task_id = ?", *id)
	}
}

func ByOwner(id uuid.UUID) QueryFilter {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.owner_id = ?", id)
	}
}

func RepoIDResolved() QueryFilter {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.repo_id IS NOT NULL")
	}
}

func RepoIDUnresolved() QueryFilter {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.repo_id IS NULL")
	}
}

// RepoIDIn matches repositories whose GitHub id is one of ids. An empty
// list matches nothing.
func RepoIDIn(ids []int64) QueryFilter {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if len(ids) == 0 {
			return q.Where("1 = 0")
		}
		return q.Where("?TableAlias.repo_id IN (?)", bun.In(ids))
	}
}

func OrderByName() QueryFilter {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("name ASC")
	}
}

func OrderByCreated() QueryFilter {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.created_at ASC")
	}
}
