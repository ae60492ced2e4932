package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type OrgType string

const (
	OrgTypeDev OrgType = "Dev"
	OrgTypeQA  OrgType = "QA"
)

// Valid reports whether t is one of the known org types.
func (t OrgType) Valid() bool {
	return t == OrgTypeDev || t == OrgTypeQA
}

// Changeset groups metadata member names by metadata type.
type Changeset map[string][]string

// Len counts every member across all groups.
func (c Changeset) Len() int {
	n := 0
	for _, members := range c {
		n += len(members)
	}
	return n
}

type ScratchOrg struct {
	bun.BaseModel `bun:"table:scratch_orgs,alias:so"`

	ID              uuid.UUID `bun:"type:uuid,pk"`
	TaskID          uuid.UUID `bun:"type:uuid,notnull"`
	OrgType         OrgType   `bun:",notnull"`
	OwnerID         uuid.UUID `bun:"type:uuid,notnull"`
	OwnerSfID       string    `bun:"owner_sf_id,nullzero"`
	OwnerGhUsername string    `bun:",nullzero"`

	// URL is the instance URL once the org has been provisioned.
	URL            *string   `bun:"url"`
	SfOrgID        string    `bun:",nullzero"`
	SfAccessToken  string    `bun:",nullzero"`
	SfRefreshToken string    `bun:",nullzero"`
	ExpiresAt      time.Time `bun:",nullzero"`
	LastModifiedAt time.Time `bun:",nullzero"`
	LatestRevision int64     `bun:",notnull,default:0"`
	UnsavedChanges Changeset `bun:",type:jsonb,nullzero"`

	CurrentlyCapturingChanges  bool `bun:",notnull,default:false"`
	CurrentlyRefreshingChanges bool `bun:",notnull,default:false"`

	DeleteQueuedAt *time.Time

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// HasURL reports whether the org has a populated access URL.
func (o *ScratchOrg) HasURL() bool {
	return o.URL != nil && *o.URL != ""
}

// IsDeleteQueued reports whether deletion has been requested.
func (o *ScratchOrg) IsDeleteQueued() bool {
	return o.DeleteQueuedAt != nil
}

// ShouldFetchUnsavedChanges decides whether reading this org on behalf of
// callerID should kick off a refresh of its unsaved changes. All conditions
// must hold at once.
func (o *ScratchOrg) ShouldFetchUnsavedChanges(callerID uuid.UUID) bool {
	return o.OwnerID == callerID &&
		o.OrgType == OrgTypeDev &&
		o.HasURL() &&
		!o.IsDeleteQueued() &&
		!o.CurrentlyCapturingChanges &&
		!o.CurrentlyRefreshingChanges
}
