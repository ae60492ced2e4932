package routes

var (
	BearerAuth = []map[string][]string{
		{"bearer": {}},
	}
)

type Tag string

const (
	TagAuth         Tag = "auth"
	TagHealth       Tag = "health"
	TagUsers        Tag = "users"
	TagRepositories Tag = "repositories"
	TagProjects     Tag = "projects"
	TagTasks        Tag = "tasks"
	TagScratchOrgs  Tag = "scratch-orgs"
)

func (t Tag) String() string { return string(t) }

func AllTags() []string {
	return []string{
		TagAuth.String(),
		TagHealth.String(),
		TagUsers.String(),
		TagRepositories.String(),
		TagProjects.String(),
		TagTasks.String(),
		TagScratchOrgs.String(),
	}
}
