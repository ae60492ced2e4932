package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/uptrace/bun"
)

type ProjectFilter struct {
	Repository *uuid.UUID
	Slug       string
}

type ProjectStore struct {
	t table[models.Project]
}

func NewProjectStore(db bun.IDB) *ProjectStore {
	return &ProjectStore{t: table[models.Project]{db: db, kind: "project"}}
}

func (s *ProjectStore) List(ctx context.Context, _ *models.User, f ProjectFilter) ([]*models.Project, error) {
	return s.t.list(ctx, ByRepository(f.Repository), BySlug(f.Slug), OrderByName())
}

func (s *ProjectStore) Get(ctx context.Context, _ *models.User, id uuid.UUID) (*models.Project, error) {
	return s.t.get(ctx, ByID(id))
}

func (s *ProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.t.get(ctx, ByID(id))
}

func (s *ProjectStore) Insert(ctx context.Context, p *models.Project) error {
	return s.t.insert(ctx, p)
}

func (s *ProjectStore) Update(ctx context.Context, p *models.Project, columns ...string) error {
	return s.t.update(ctx, p, columns...)
}

func (s *ProjectStore) Delete(ctx context.Context, p *models.Project) error {
	return s.t.delete(ctx, p)
}

type TaskFilter struct {
	Project *uuid.UUID
	Slug    string
}

type TaskStore struct {
	t table[models.Task]
}

func NewTaskStore(db bun.IDB) *TaskStore {
	return &TaskStore{t: table[models.Task]{db: db, kind: "task"}}
}

func (s *TaskStore) List(ctx context.Context, _ *models.User, f TaskFilter) ([]*models.Task, error) {
	return s.t.list(ctx, ByProject(f.Project), BySlug(f.Slug), OrderByName())
}

func (s *TaskStore) Get(ctx context.Context, _ *models.User, id uuid.UUID) (*models.Task, error) {
	return s.t.get(ctx, ByID(id))
}

func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return s.t.get(ctx, ByID(id))
}

func (s *TaskStore) Insert(ctx context.Context, t *models.Task) error {
	return s.t.insert(ctx, t)
}

func (s *TaskStore) Update(ctx context.Context, t *models.Task, columns ...string) error {
	return s.t.update(ctx, t, columns...)
}

func (s *TaskStore) Delete(ctx context.Context, t *models.Task) error {
	return s.t.delete(ctx, t)
}
