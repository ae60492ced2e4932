package schemas

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/mserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullUserValidTokenFor(t *testing.T) {
	u := &models.User{ID: uuid.New(), Username: "octo", SfOrgID: "00D1", SfAccessToken: "tok", IsStaff: true}

	full := NewFullUser(u)
	require.NotNil(t, full.ValidTokenFor)
	assert.Equal(t, "00D1", *full.ValidTokenFor)
	assert.True(t, full.IsStaff)

	u.InvalidateSalesforceCredentials()
	assert.Nil(t, NewFullUser(u).ValidTokenFor)
}

func TestMinimalUserHidesPrivateFields(t *testing.T) {
	u := &models.User{ID: uuid.New(), Username: "octo", Email: "octo@example.com", AvatarURL: "https://a"}

	assert.Equal(t, MinimalUser{ID: u.ID.String(), Username: "octo", AvatarURL: "https://a"}, NewMinimalUser(u))
}

func TestScratchOrgView(t *testing.T) {
	url := "https://org.my.salesforce.com"
	queued := time.Now()
	o := &models.ScratchOrg{
		ID:             uuid.New(),
		OrgType:        models.OrgTypeDev,
		URL:            &url,
		UnsavedChanges: models.Changeset{"ApexClass": {"Foo"}},
		DeleteQueuedAt: &queued,
	}

	view := NewScratchOrg(o)
	assert.True(t, view.HasUnsavedChanges)
	assert.Equal(t, &url, view.URL)
	assert.Equal(t, &queued, view.DeleteQueuedAt)
	assert.Nil(t, view.ExpiresAt)

	empty := NewScratchOrg(&models.ScratchOrg{})
	assert.NotNil(t, empty.UnsavedChanges)
	assert.False(t, empty.HasUnsavedChanges)
}

func TestRepositoryPatchColumns(t *testing.T) {
	name := "Renamed"
	managed := true
	r := &models.Repository{Name: "Old", Description: "keep"}

	cols, err := RepositoryPatch{Name: &name, IsManaged: &managed}.Apply(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "is_managed"}, cols)
	assert.Equal(t, "Renamed", r.Name)
	assert.Equal(t, "keep", r.Description)
}

func TestTaskPatchUnassigns(t *testing.T) {
	dev := uuid.New()
	task := &models.Task{AssignedDev: &dev}
	empty := ""

	cols, err := TaskPatch{AssignedDev: &empty}.Apply(task)
	require.NoError(t, err)
	assert.Equal(t, []string{"assigned_dev"}, cols)
	assert.Nil(t, task.AssignedDev)

	bad := "nope"
	_, err = TaskPatch{AssignedQA: &bad}.Apply(task)
	assert.True(t, mserr.IsCode(err, mserr.CodeValidation))
}

func TestCreateBodiesParseIDs(t *testing.T) {
	_, err := ProjectCreate{Repository: "not-a-uuid", Name: "x", Slug: "x"}.Model()
	assert.True(t, mserr.IsCode(err, mserr.CodeValidation))

	repoID := uuid.New()
	p, err := ProjectCreate{Repository: repoID.String(), Name: "Alpha", Slug: "alpha"}.Model()
	require.NoError(t, err)
	assert.Equal(t, repoID, p.RepositoryID)

	o, err := ScratchOrgCreate{Task: uuid.NewString(), OrgType: "QA"}.Model()
	require.NoError(t, err)
	assert.Equal(t, models.OrgTypeQA, o.OrgType)
}
