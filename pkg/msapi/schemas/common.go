package schemas

import (
	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/mserr"
)

// IDPath is the {id} path parameter shared by every detail route.
type IDPath struct {
	ID string `path:"id" format:"uuid" doc:"Resource ID"`
}

// ParseID parses an inbound uuid, reporting field on failure.
func ParseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, mserr.Validation(mserr.FieldError{Field: field, Message: "must be a valid UUID"})
	}
	return id, nil
}

// ParseOptionalID returns nil for an empty string.
func ParseOptionalID(field, s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := ParseID(field, s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
