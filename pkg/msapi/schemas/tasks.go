package schemas

import (
	"time"

	"github.com/quatton/metashare/pkg/db/models"
)

type Task struct {
	ID          string    `json:"id"`
	Project     string    `json:"project" doc:"Owning project ID"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	BranchName  string    `json:"branch_name"`
	AssignedDev *string   `json:"assigned_dev" doc:"User assigned to develop the task"`
	AssignedQA  *string   `json:"assigned_qa" doc:"User assigned to test the task"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewTask(t *models.Task) Task {
	return Task{
		ID:          t.ID.String(),
		Project:     t.ProjectID.String(),
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		BranchName:  t.BranchName,
		AssignedDev: idString(t.AssignedDev),
		AssignedQA:  idString(t.AssignedQA),
		CreatedAt:   t.CreatedAt,
	}
}

type TaskCreate struct {
	Project     string `json:"project" format:"uuid"`
	Name        string `json:"name" minLength:"1" maxLength:"50"`
	Slug        string `json:"slug" minLength:"1" maxLength:"50" pattern:"^[a-z0-9-]+$"`
	Description string `json:"description,omitempty"`
	BranchName  string `json:"branch_name,omitempty"`
	AssignedDev string `json:"assigned_dev,omitempty" format:"uuid"`
	AssignedQA  string `json:"assigned_qa,omitempty" format:"uuid"`
}

func (c TaskCreate) Model() (*models.Task, error) {
	projectID, err := ParseID("project", c.Project)
	if err != nil {
		return nil, err
	}
	dev, err := ParseOptionalID("assigned_dev", c.AssignedDev)
	if err != nil {
		return nil, err
	}
	qa, err := ParseOptionalID("assigned_qa", c.AssignedQA)
	if err != nil {
		return nil, err
	}
	return &models.Task{
		ProjectID:   projectID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		BranchName:  c.BranchName,
		AssignedDev: dev,
		AssignedQA:  qa,
	}, nil
}

// TaskPatch updates a task. An empty assignee string unassigns.
type TaskPatch struct {
	Name        *string `json:"name,omitempty" minLength:"1" maxLength:"50"`
	Description *string `json:"description,omitempty"`
	BranchName  *string `json:"branch_name,omitempty"`
	AssignedDev *string `json:"assigned_dev,omitempty"`
	AssignedQA  *string `json:"assigned_qa,omitempty"`
}

func (p TaskPatch) Apply(t *models.Task) ([]string, error) {
	var cols []string
	set(&cols, "name", p.Name, &t.Name)
	set(&cols, "description", p.Description, &t.Description)
	set(&cols, "branch_name", p.BranchName, &t.BranchName)

	if p.AssignedDev != nil {
		id, err := ParseOptionalID("assigned_dev", *p.AssignedDev)
		if err != nil {
			return nil, err
		}
		t.AssignedDev = id
		cols = append(cols, "assigned_dev")
	}
	if p.AssignedQA != nil {
		id, err := ParseOptionalID("assigned_qa", *p.AssignedQA)
		if err != nil {
			return nil, err
		}
		t.AssignedQA = id
		cols = append(cols, "assigned_qa")
	}
	return cols, nil
}

type TaskListRequest struct {
	Project string `query:"project" format:"uuid" doc:"Filter by project ID"`
	Slug    string `query:"slug" doc:"Filter by slug"`
}

type TaskCreateRequest struct {
	Body TaskCreate
}

type TaskPatchRequest struct {
	IDPath
	Body TaskPatch
}

type TaskResponse struct {
	Body Task
}

type TaskListResponse struct {
	Body []Task
}
