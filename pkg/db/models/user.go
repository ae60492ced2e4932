package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        uuid.UUID `bun:"type:uuid,pk"`
	Username  string    `bun:",unique,notnull"`
	Email     string    `bun:",notnull"`
	AvatarURL string    `bun:",nullzero"`
	IsStaff   bool      `bun:",notnull,default:false"`

	GithubAccessToken string `bun:",nullzero"`

	// Salesforce connection. Everything below is cleared together by
	// InvalidateSalesforceCredentials.
	SfUsername      string `bun:",nullzero"`
	SfInstanceURL   string `bun:",nullzero"`
	SfOrgID         string `bun:",nullzero"`
	SfAccessToken   string `bun:",nullzero"`
	SfRefreshToken  string `bun:",nullzero"`
	OrgName         string `bun:",nullzero"`
	OrgType         string `bun:",nullzero"`
	IsDevhubEnabled bool   `bun:",notnull,default:false"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// ValidTokenFor returns the Salesforce org id the user's stored token is
// good for, or "" when there is no usable token.
func (u *User) ValidTokenFor() string {
	if u.SfAccessToken == "" && u.SfRefreshToken == "" {
		return ""
	}
	return u.SfOrgID
}

// InvalidateSalesforceCredentials forgets the user's Salesforce connection.
// The caller persists the change.
func (u *User) InvalidateSalesforceCredentials() {
	u.SfUsername = ""
	u.SfInstanceURL = ""
	u.SfOrgID = ""
	u.SfAccessToken = ""
	u.SfRefreshToken = ""
	u.OrgName = ""
	u.OrgType = ""
	u.IsDevhubEnabled = false
}

// SalesforceColumns lists the columns InvalidateSalesforceCredentials touches.
var SalesforceColumns = []string{
	"sf_username",
	"sf_instance_url",
	"sf_org_id",
	"sf_access_token",
	"sf_refresh_token",
	"org_name",
	"org_type",
	"is_devhub_enabled",
}
