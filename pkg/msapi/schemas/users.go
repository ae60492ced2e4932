package schemas

import "github.com/quatton/metashare/pkg/db/models"

// FullUser is the caller's own view of themselves.
type FullUser struct {
	ID              string  `json:"id" doc:"User ID"`
	Username        string  `json:"username" doc:"GitHub login"`
	Email           string  `json:"email" doc:"Email address"`
	AvatarURL       string  `json:"avatar_url,omitempty" doc:"Avatar image URL"`
	ValidTokenFor   *string `json:"valid_token_for" doc:"Salesforce org ID the stored token is valid for, null when disconnected"`
	SfUsername      string  `json:"sf_username,omitempty" doc:"Connected Salesforce username"`
	OrgName         string  `json:"org_name,omitempty" doc:"Connected Salesforce org name"`
	OrgType         string  `json:"org_type,omitempty" doc:"Connected Salesforce org type"`
	IsDevhubEnabled bool    `json:"is_devhub_enabled" doc:"Whether the connected org can create scratch orgs"`
	IsStaff         bool    `json:"is_staff" doc:"Staff members may manage repositories"`
}

// MinimalUser is how other users are listed.
type MinimalUser struct {
	ID        string `json:"id" doc:"User ID"`
	Username  string `json:"username" doc:"GitHub login"`
	AvatarURL string `json:"avatar_url,omitempty" doc:"Avatar image URL"`
}

func NewFullUser(u *models.User) FullUser {
	out := FullUser{
		ID:              u.ID.String(),
		Username:        u.Username,
		Email:           u.Email,
		AvatarURL:       u.AvatarURL,
		SfUsername:      u.SfUsername,
		OrgName:         u.OrgName,
		OrgType:         u.OrgType,
		IsDevhubEnabled: u.IsDevhubEnabled,
		IsStaff:         u.IsStaff,
	}
	if org := u.ValidTokenFor(); org != "" {
		out.ValidTokenFor = &org
	}
	return out
}

func NewMinimalUser(u *models.User) MinimalUser {
	return MinimalUser{ID: u.ID.String(), Username: u.Username, AvatarURL: u.AvatarURL}
}

type FullUserResponse struct {
	Body FullUser
}

type MinimalUserResponse struct {
	Body MinimalUser
}

type UserListResponse struct {
	Body []MinimalUser
}
