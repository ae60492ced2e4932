package schemas

import (
	"time"

	"github.com/quatton/metashare/pkg/db/models"
)

type Project struct {
	ID          string    `json:"id"`
	Repository  string    `json:"repository" doc:"Owning repository ID"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	BranchName  string    `json:"branch_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProject(p *models.Project) Project {
	return Project{
		ID:          p.ID.String(),
		Repository:  p.RepositoryID.String(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		BranchName:  p.BranchName,
		CreatedAt:   p.CreatedAt,
	}
}

type ProjectCreate struct {
	Repository  string `json:"repository" format:"uuid" doc:"Owning repository ID"`
	Name        string `json:"name" minLength:"1" maxLength:"50"`
	Slug        string `json:"slug" minLength:"1" maxLength:"50" pattern:"^[a-z0-9-]+$"`
	Description string `json:"description,omitempty"`
	BranchName  string `json:"branch_name,omitempty"`
}

func (c ProjectCreate) Model() (*models.Project, error) {
	repoID, err := ParseID("repository", c.Repository)
	if err != nil {
		return nil, err
	}
	return &models.Project{
		RepositoryID: repoID,
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		BranchName:   c.BranchName,
	}, nil
}

type ProjectPatch struct {
	Name        *string `json:"name,omitempty" minLength:"1" maxLength:"50"`
	Description *string `json:"description,omitempty"`
	BranchName  *string `json:"branch_name,omitempty"`
}

func (p ProjectPatch) Apply(m *models.Project) ([]string, error) {
	var cols []string
	set(&cols, "name", p.Name, &m.Name)
	set(&cols, "description", p.Description, &m.Description)
	set(&cols, "branch_name", p.BranchName, &m.BranchName)
	return cols, nil
}

type ProjectListRequest struct {
	Repository string `query:"repository" format:"uuid" doc:"Filter by repository ID"`
	Slug       string `query:"slug" doc:"Filter by slug"`
}

type ProjectCreateRequest struct {
	Body ProjectCreate
}

type ProjectPatchRequest struct {
	IDPath
	Body ProjectPatch
}

type ProjectResponse struct {
	Body Project
}

type ProjectListResponse struct {
	Body []Project
}
