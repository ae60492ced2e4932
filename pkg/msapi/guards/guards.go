// Package guards holds the permission checks shared by the controllers.
// Each check returns nil or a permission-denied error carrying the message
// shown to the caller.
package guards

import (
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/mserr"
)

const (
	MsgNotOwner      = "Requesting user did not create scratch org."
	MsgOtherAccount  = "User is not connected to the same SalesForce organization that created the ScratchOrg."
	MsgNoDevHub      = "User is not connected to a DevHub-enabled SalesForce organization."
	MsgStaffRequired = "Only staff members can modify repositories."
)

// IsOwner passes when caller created org.
func IsOwner(caller *models.User, org *models.ScratchOrg) error {
	if caller == nil || org.OwnerID != caller.ID {
		return mserr.PermissionDenied(MsgNotOwner)
	}
	return nil
}

// SameSalesforceAccount passes when caller is connected with the Salesforce
// username that created org.
func SameSalesforceAccount(caller *models.User, org *models.ScratchOrg) error {
	if caller == nil || caller.SfUsername == "" || caller.SfUsername != org.OwnerSfID {
		return mserr.PermissionDenied(MsgOtherAccount)
	}
	return nil
}

func HasDevHub(caller *models.User) error {
	if caller == nil || !caller.IsDevhubEnabled {
		return mserr.PermissionDenied(MsgNoDevHub)
	}
	return nil
}

func IsStaff(caller *models.User) error {
	if caller == nil || !caller.IsStaff {
		return mserr.PermissionDenied(MsgStaffRequired)
	}
	return nil
}
