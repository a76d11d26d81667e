package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/model"
)

func TestResolveRole(t *testing.T) {
	doctor := model.UserRoleDoctor

	// An explicit role always wins, owner or not.
	assert.Equal(t, &doctor, resolveRole(&doctor, "owner-1", "owner-1"))
	assert.Equal(t, &doctor, resolveRole(&doctor, "user-1", "owner-1"))

	// The owner identity is promoted to admin when no role is given.
	got := resolveRole(nil, "owner-1", "owner-1")
	require.NotNil(t, got)
	assert.Equal(t, model.UserRoleAdmin, *got)

	// Everyone else keeps their stored role (nil leaves the column
	// untouched on conflict).
	assert.Nil(t, resolveRole(nil, "user-1", "owner-1"))
	assert.Nil(t, resolveRole(nil, "owner-1", ""))
}
