package mserr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNilPassthrough(t *testing.T) {
	assert.NoError(t, New(CodeUnknown, nil))
	assert.NoError(t, Upstream("github", nil))
}

func TestIsCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("deleting org: %w", PermissionDenied("nope"))

	assert.True(t, IsCode(err, CodePermissionDenied))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.Equal(t, CodePermissionDenied, CodeOf(err))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("boom")))
	assert.False(t, IsCode(nil, CodeUnknown))
}

func TestUpstreamUnwraps(t *testing.T) {
	cause := errors.New("rate limited")
	err := Upstream("github", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "upstream: github: rate limited", err.Error())
}

func TestValidationFields(t *testing.T) {
	err := Validation(FieldError{Field: "commit_message", Message: "required"})

	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, []FieldError{{Field: "commit_message", Message: "required"}}, e.Fields)
}

func TestMessage(t *testing.T) {
	var e *Error
	errors.As(NotFound("scratch org"), &e)
	assert.Equal(t, "scratch org not found", e.Message())
}

func TestConflict(t *testing.T) {
	err := Conflict("busy")
	assert.True(t, IsCode(err, CodeConflict))
	assert.Equal(t, "conflict: busy", err.Error())
}
