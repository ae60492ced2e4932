package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository points at a GitHub repository. RepoID is resolved lazily from
// RepoOwner/RepoName and cached once found.
type Repository struct {
	bun.BaseModel `bun:"table:repositories,alias:r"`

	ID            uuid.UUID `bun:"type:uuid,pk"`
	Name          string    `bun:",notnull"`
	Slug          string    `bun:",unique,notnull"`
	RepoOwner     string    `bun:",notnull"`
	RepoName      string    `bun:",notnull"`
	RepoID        *int64    `bun:",unique"`
	Description   string    `bun:",nullzero"`
	VersionNumber string    `bun:",nullzero"`
	IsManaged     bool      `bun:",notnull,default:false"`
	License       string    `bun:",nullzero"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// FullName is the owner/name pair used when talking to GitHub.
func (r *Repository) FullName() string {
	return r.RepoOwner + "/" + r.RepoName
}

// GitHubRepository records that a user can see a GitHub repository. Rows are
// replaced wholesale by the refresh-repositories job.
type GitHubRepository struct {
	bun.BaseModel `bun:"table:github_repositories,alias:gr"`

	ID      uuid.UUID `bun:"type:uuid,pk"`
	UserID  uuid.UUID `bun:"type:uuid,notnull"`
	RepoID  int64     `bun:",notnull"`
	RepoURL string    `bun:",nullzero"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
