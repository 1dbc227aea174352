package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindConflict, KindOf(Conflict("taken")))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handling request: %w", InvalidState("already checked in"))

	assert.True(t, IsKind(err, KindInvalidState))
	assert.False(t, IsKind(err, KindNotFound))
}

func TestWithCause(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := Conflict("Phone already registered").WithCause(cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Phone already registered")
	assert.Contains(t, err.Error(), cause.Error())
}

func TestWithField(t *testing.T) {
	err := Validation("validation failed").
		WithField("phone", "invalid phone number").
		WithField("name", "name is required")

	fields := FieldsOf(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "invalid phone number", fields["phone"])
	assert.Equal(t, "name is required", fields["name"])
}

func TestFieldsOfNonAppError(t *testing.T) {
	assert.Nil(t, FieldsOf(errors.New("plain")))
}
