package schemas

import (
	"time"

	"github.com/quatton/metashare/pkg/db/models"
)

type Repository struct {
	ID            string    `json:"id" doc:"Repository ID"`
	Name          string    `json:"name" doc:"Display name"`
	Slug          string    `json:"slug" doc:"URL-safe name"`
	RepoOwner     string    `json:"repo_owner" doc:"GitHub owner"`
	RepoName      string    `json:"repo_name" doc:"GitHub repository name"`
	RepoURL       string    `json:"repo_url" doc:"GitHub web URL"`
	Description   string    `json:"description" doc:"Free-form description"`
	VersionNumber string    `json:"version_number" doc:"Latest released version"`
	IsManaged     bool      `json:"is_managed" doc:"Whether this is a managed package"`
	License       string    `json:"license" doc:"License identifier"`
	CreatedAt     time.Time `json:"created_at" doc:"Creation timestamp"`
}

func NewRepository(r *models.Repository) Repository {
	return Repository{
		ID:            r.ID.String(),
		Name:          r.Name,
		Slug:          r.Slug,
		RepoOwner:     r.RepoOwner,
		RepoName:      r.RepoName,
		RepoURL:       "https://github.com/" + r.FullName(),
		Description:   r.Description,
		VersionNumber: r.VersionNumber,
		IsManaged:     r.IsManaged,
		License:       r.License,
		CreatedAt:     r.CreatedAt,
	}
}

type RepositoryCreate struct {
	Name          string `json:"name" minLength:"1" maxLength:"50" doc:"Display name"`
	Slug          string `json:"slug" minLength:"1" maxLength:"50" pattern:"^[a-z0-9-]+$" doc:"URL-safe name"`
	RepoOwner     string `json:"repo_owner" minLength:"1" doc:"GitHub owner"`
	RepoName      string `json:"repo_name" minLength:"1" doc:"GitHub repository name"`
	Description   string `json:"description,omitempty" doc:"Free-form description"`
	VersionNumber string `json:"version_number,omitempty" doc:"Latest released version"`
	IsManaged     bool   `json:"is_managed,omitempty" doc:"Whether this is a managed package"`
	License       string `json:"license,omitempty" doc:"License identifier"`
}

func (c RepositoryCreate) Model() *models.Repository {
	return &models.Repository{
		Name:          c.Name,
		Slug:          c.Slug,
		RepoOwner:     c.RepoOwner,
		RepoName:      c.RepoName,
		Description:   c.Description,
		VersionNumber: c.VersionNumber,
		IsManaged:     c.IsManaged,
		License:       c.License,
	}
}

type RepositoryPatch struct {
	Name          *string `json:"name,omitempty" minLength:"1" maxLength:"50"`
	Description   *string `json:"description,omitempty"`
	VersionNumber *string `json:"version_number,omitempty"`
	IsManaged     *bool   `json:"is_managed,omitempty"`
	License       *string `json:"license,omitempty"`
}

// Apply copies the set fields onto r and returns the changed columns.
func (p RepositoryPatch) Apply(r *models.Repository) ([]string, error) {
	var cols []string
	set(&cols, "name", p.Name, &r.Name)
	set(&cols, "description", p.Description, &r.Description)
	set(&cols, "version_number", p.VersionNumber, &r.VersionNumber)
	set(&cols, "is_managed", p.IsManaged, &r.IsManaged)
	set(&cols, "license", p.License, &r.License)
	return cols, nil
}

func set[T any](cols *[]string, column string, src *T, dst *T) {
	if src == nil {
		return
	}
	*dst = *src
	*cols = append(*cols, column)
}

type RepositoryListRequest struct {
	Slug string `query:"slug" doc:"Filter by slug"`
}

type RepositoryCreateRequest struct {
	Body RepositoryCreate
}

type RepositoryPatchRequest struct {
	IDPath
	Body RepositoryPatch
}

type RepositoryResponse struct {
	Body Repository
}

type RepositoryListResponse struct {
	Body []Repository
}
