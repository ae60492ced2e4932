package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID           uuid.UUID `bun:"type:uuid,pk"`
	RepositoryID uuid.UUID `bun:"type:uuid,notnull"`
	Name         string    `bun:",notnull"`
	Slug         string    `bun:",notnull"`
	Description  string    `bun:",nullzero"`
	BranchName   string    `bun:",nullzero"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:t"`

	ID          uuid.UUID  `bun:"type:uuid,pk"`
	ProjectID   uuid.UUID  `bun:"type:uuid,notnull"`
	Name        string     `bun:",notnull"`
	Slug        string     `bun:",notnull"`
	Description string     `bun:",nullzero"`
	BranchName  string     `bun:",nullzero"`
	AssignedDev *uuid.UUID `bun:"type:uuid"`
	AssignedQA  *uuid.UUID `bun:"assigned_qa,type:uuid"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
