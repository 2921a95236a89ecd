package util

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"campus-chat/dto/req"
)

func TestValidatorFacultyTag(t *testing.T) {
	validate := NewValidator()

	valid := req.JoinFacultyRequest{UserID: "u1", Faculty: "Tarix"}
	assert.NoError(t, validate.Struct(valid))

	invalid := req.JoinFacultyRequest{UserID: "u1", Faculty: "Sehr"}
	assert.Error(t, validate.Struct(invalid))
}

func TestValidatorPrivateChatNeedsDistinctUsers(t *testing.T) {
	validate := NewValidator()
	assert.Error(t, validate.Struct(req.JoinPrivateChatRequest{UserID: "u1", TargetUserID: "u1"}))
	assert.NoError(t, validate.Struct(req.JoinPrivateChatRequest{UserID: "u1", TargetUserID: "u2"}))
}
