// Package resource is the generic list/retrieve/create/update/delete
// contract every entity controller implements. Entity-specific behaviour is
// injected through Hooks rather than by overriding methods.
package resource

import (
	"context"

	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/db/models"
)

// Store is the persistence a Controller drives. F is the entity's filter
// type.
type Store[M any, F any] interface {
	List(ctx context.Context, caller *models.User, filter F) ([]*M, error)
	Get(ctx context.Context, caller *models.User, id uuid.UUID) (*M, error)
	Insert(ctx context.Context, m *M) error
	Update(ctx context.Context, m *M, columns ...string) error
	Delete(ctx context.Context, m *M) error
}

// Resource is the operation set exposed per entity.
type Resource[M any, F any] interface {
	List(ctx context.Context, caller *models.User, filter F) ([]*M, error)
	Retrieve(ctx context.Context, caller *models.User, id uuid.UUID) (*M, error)
	Create(ctx context.Context, caller *models.User, m *M) error
	Update(ctx context.Context, caller *models.User, id uuid.UUID, patch Patch[M]) (*M, error)
	Delete(ctx context.Context, caller *models.User, id uuid.UUID) error
}

// Patch applies an update to a loaded entity and returns the columns it
// changed. Returning no columns makes Update a no-op write.
type Patch[M any] func(m *M) ([]string, error)

// Hook runs against a single entity. Returning an error aborts the
// operation.
type Hook[M any] func(ctx context.Context, caller *models.User, m *M) error

// Hooks customises a Controller. Every field is optional.
type Hooks[M any] struct {
	// BeforeList runs before the list query, e.g. to refresh data the
	// query depends on.
	BeforeList func(ctx context.Context, caller *models.User) error
	// AfterList sees every listed entity before serialization.
	AfterList func(ctx context.Context, caller *models.User, items []*M) error
	// BeforeRetrieve runs before the single-entity query.
	BeforeRetrieve func(ctx context.Context, caller *models.User) error
	AfterRetrieve  Hook[M]
	// BeforeCreate is the place for permission checks and defaults; the
	// entity is not yet persisted.
	BeforeCreate Hook[M]
	AfterCreate  Hook[M]
	BeforeUpdate Hook[M]
	// Destroy replaces the default delete, e.g. to queue deletion instead
	// of removing the row.
	Destroy Hook[M]
}

// Controller implements Resource over a Store.
type Controller[M any, F any] struct {
	store Store[M, F]
	hooks Hooks[M]
}

func NewController[M any, F any](store Store[M, F], hooks Hooks[M]) *Controller[M, F] {
	return &Controller[M, F]{store: store, hooks: hooks}
}

var _ Resource[struct{}, struct{}] = (*Controller[struct{}, struct{}])(nil)

func (c *Controller[M, F]) List(ctx context.Context, caller *models.User, filter F) ([]*M, error) {
	if c.hooks.BeforeList != nil {
		if err := c.hooks.BeforeList(ctx, caller); err != nil {
			return nil, err
		}
	}
	items, err := c.store.List(ctx, caller, filter)
	if err != nil {
		return nil, err
	}
	if c.hooks.AfterList != nil {
		if err := c.hooks.AfterList(ctx, caller, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (c *Controller[M, F]) Retrieve(ctx context.Context, caller *models.User, id uuid.UUID) (*M, error) {
	if c.hooks.BeforeRetrieve != nil {
		if err := c.hooks.BeforeRetrieve(ctx, caller); err != nil {
			return nil, err
		}
	}
	m, err := c.store.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := run(ctx, c.hooks.AfterRetrieve, caller, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *Controller[M, F]) Create(ctx context.Context, caller *models.User, m *M) error {
	if err := run(ctx, c.hooks.BeforeCreate, caller, m); err != nil {
		return err
	}
	if err := c.store.Insert(ctx, m); err != nil {
		return err
	}
	return run(ctx, c.hooks.AfterCreate, caller, m)
}

func (c *Controller[M, F]) Update(ctx context.Context, caller *models.User, id uuid.UUID, patch Patch[M]) (*M, error) {
	m, err := c.store.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := run(ctx, c.hooks.BeforeUpdate, caller, m); err != nil {
		return nil, err
	}
	columns, err := patch(m)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return m, nil
	}
	if err := c.store.Update(ctx, m, columns...); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *Controller[M, F]) Delete(ctx context.Context, caller *models.User, id uuid.UUID) error {
	m, err := c.store.Get(ctx, caller, id)
	if err != nil {
		return err
	}
	if c.hooks.Destroy != nil {
		return c.hooks.Destroy(ctx, caller, m)
	}
	return c.store.Delete(ctx, m)
}

func run[M any](ctx context.Context, h Hook[M], caller *models.User, m *M) error {
	if h == nil {
		return nil
	}
	return h(ctx, caller, m)
}
