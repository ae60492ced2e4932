package schemas

import (
	"time"

	"github.com/quatton/metashare/pkg/db/models"
)

type ScratchOrg struct {
	ID                         string              `json:"id"`
	Task                       string              `json:"task" doc:"Task the org was created for"`
	OrgType                    string              `json:"org_type" enum:"Dev,QA"`
	Owner                      string              `json:"owner" doc:"User ID of the creator"`
	OwnerSfID                  string              `json:"owner_sf_id" doc:"Salesforce username of the creator"`
	OwnerGhUsername            string              `json:"owner_gh_username"`
	URL                        *string             `json:"url" doc:"Instance URL, null until provisioned"`
	ExpiresAt                  *time.Time          `json:"expires_at"`
	LastModifiedAt             *time.Time          `json:"last_modified_at"`
	UnsavedChanges             map[string][]string `json:"unsaved_changes" doc:"Changed members grouped by metadata type"`
	HasUnsavedChanges          bool                `json:"has_unsaved_changes"`
	CurrentlyCapturingChanges  bool                `json:"currently_capturing_changes"`
	CurrentlyRefreshingChanges bool                `json:"currently_refreshing_changes"`
	DeleteQueuedAt             *time.Time          `json:"delete_queued_at" doc:"Set once deletion has been requested"`
	CreatedAt                  time.Time           `json:"created_at"`
}

func optTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func NewScratchOrg(o *models.ScratchOrg) ScratchOrg {
	changes := map[string][]string(o.UnsavedChanges)
	if changes == nil {
		changes = map[string][]string{}
	}
	return ScratchOrg{
		ID:                         o.ID.String(),
		Task:                       o.TaskID.String(),
		OrgType:                    string(o.OrgType),
		Owner:                      o.OwnerID.String(),
		OwnerSfID:                  o.OwnerSfID,
		OwnerGhUsername:            o.OwnerGhUsername,
		URL:                        o.URL,
		ExpiresAt:                  optTime(o.ExpiresAt),
		LastModifiedAt:             optTime(o.LastModifiedAt),
		UnsavedChanges:             changes,
		HasUnsavedChanges:          o.UnsavedChanges.Len() > 0,
		CurrentlyCapturingChanges:  o.CurrentlyCapturingChanges,
		CurrentlyRefreshingChanges: o.CurrentlyRefreshingChanges,
		DeleteQueuedAt:             o.DeleteQueuedAt,
		CreatedAt:                  o.CreatedAt,
	}
}

// ScratchOrgCreate carries only what the caller chooses. Ownership is
// taken from the authenticated user.
type ScratchOrgCreate struct {
	Task    string `json:"task" format:"uuid"`
	OrgType string `json:"org_type" enum:"Dev,QA"`
}

func (c ScratchOrgCreate) Model() (*models.ScratchOrg, error) {
	taskID, err := ParseID("task", c.Task)
	if err != nil {
		return nil, err
	}
	return &models.ScratchOrg{TaskID: taskID, OrgType: models.OrgType(c.OrgType)}, nil
}

type ScratchOrgPatch struct {
	OrgType *string `json:"org_type,omitempty" enum:"Dev,QA"`
}

func (p ScratchOrgPatch) Apply(o *models.ScratchOrg) ([]string, error) {
	if p.OrgType == nil {
		return nil, nil
	}
	o.OrgType = models.OrgType(*p.OrgType)
	return []string{"org_type"}, nil
}

type CommitRequestBody struct {
	CommitMessage   string              `json:"commit_message" minLength:"1" doc:"Message for the resulting commit"`
	Changes         map[string][]string `json:"changes" doc:"Members to commit grouped by metadata type"`
	TargetDirectory string              `json:"target_directory,omitempty" doc:"Directory in the repository to write into"`
}

type ScratchOrgListRequest struct {
	Task string `query:"task" format:"uuid" doc:"Filter by task ID"`
}

type ScratchOrgCreateRequest struct {
	Body ScratchOrgCreate
}

type ScratchOrgPatchRequest struct {
	IDPath
	Body ScratchOrgPatch
}

type CommitRequest struct {
	IDPath
	Body CommitRequestBody
}

type ScratchOrgResponse struct {
	Body ScratchOrg
}

type ScratchOrgListResponse struct {
	Body []ScratchOrg
}

// RedirectResponse is a bare 302.
type RedirectResponse struct {
	Status   int
	Location string `header:"Location"`
}
