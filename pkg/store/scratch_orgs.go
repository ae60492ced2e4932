package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/uptrace/bun"
)

type ScratchOrgFilter struct {
	Task *uuid.UUID
}

type ScratchOrgStore struct {
	t table[models.ScratchOrg]
}

func NewScratchOrgStore(db bun.IDB) *ScratchOrgStore {
	return &ScratchOrgStore{t: table[models.ScratchOrg]{db: db, kind: "scratch org"}}
}

func (s *ScratchOrgStore) List(ctx context.Context, _ *models.User, f ScratchOrgFilter) ([]*models.ScratchOrg, error) {
	return s.t.list(ctx, ByTask(f.Task), OrderByCreated())
}

func (s *ScratchOrgStore) Get(ctx context.Context, _ *models.User, id uuid.UUID) (*models.ScratchOrg, error) {
	return s.t.get(ctx, ByID(id))
}

// GetByID loads an org outside of any request scope, for job handlers.
func (s *ScratchOrgStore) GetByID(ctx context.Context, id uuid.UUID) (*models.ScratchOrg, error) {
	return s.t.get(ctx, ByID(id))
}

// ListOwnedBy returns the caller's own orgs.
func (s *ScratchOrgStore) ListOwnedBy(ctx context.Context, ownerID uuid.UUID) ([]*models.ScratchOrg, error) {
	return s.t.list(ctx, ByOwner(ownerID), OrderByCreated())
}

func (s *ScratchOrgStore) Insert(ctx context.Context, o *models.ScratchOrg) error {
	return s.t.insert(ctx, o)
}

func (s *ScratchOrgStore) Update(ctx context.Context, o *models.ScratchOrg, columns ...string) error {
	return s.t.update(ctx, o, columns...)
}

func (s *ScratchOrgStore) Delete(ctx context.Context, o *models.ScratchOrg) error {
	return s.t.delete(ctx, o)
}

// MarkDeleteQueued records that deletion has been requested. The row stays
// readable until the delete job removes it.
func (s *ScratchOrgStore) MarkDeleteQueued(ctx context.Context, o *models.ScratchOrg, at time.Time) error {
	at = at.UTC()
	o.DeleteQueuedAt = &at
	return s.t.update(ctx, o, "delete_queued_at")
}

// ClearDeleteQueued undoes MarkDeleteQueued when no delete job could be
// queued.
func (s *ScratchOrgStore) ClearDeleteQueued(ctx context.Context, o *models.ScratchOrg) error {
	o.DeleteQueuedAt = nil
	return s.t.update(ctx, o, "delete_queued_at")
}

func (s *ScratchOrgStore) SetRefreshing(ctx context.Context, o *models.ScratchOrg, refreshing bool) error {
	o.CurrentlyRefreshingChanges = refreshing
	return s.t.update(ctx, o, "currently_refreshing_changes")
}

// SaveUnsavedChanges stores a freshly fetched changeset and releases the
// refreshing flag.
func (s *ScratchOrgStore) SaveUnsavedChanges(ctx context.Context, o *models.ScratchOrg, changes models.Changeset, revision int64) error {
	o.UnsavedChanges = changes
	o.LatestRevision = revision
	o.LastModifiedAt = time.Now().UTC()
	o.CurrentlyRefreshingChanges = false
	return s.t.update(ctx, o,
		"unsaved_changes",
		"latest_revision",
		"last_modified_at",
		"currently_refreshing_changes",
	)
}
