package store

import "github.com/uptrace/bun"

// Stores bundles one store per entity over a shared database handle.
type Stores struct {
	Users        *UserStore
	Repositories *RepositoryStore
	Projects     *ProjectStore
	Tasks        *TaskStore
	ScratchOrgs  *ScratchOrgStore
}

func New(db *bun.DB) *Stores {
	return &Stores{
		Users:        NewUserStore(db),
		Repositories: NewRepositoryStore(db),
		Projects:     NewProjectStore(db),
		Tasks:        NewTaskStore(db),
		ScratchOrgs:  NewScratchOrgStore(db),
	}
}
