package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanCreateEmployees(t *testing.T) {
	cases := []struct {
		actor int
		want  bool
	}{
		{LevelManager, true},
		{LevelAsstManager, true},
		{LevelGeneralEmployee, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanCreateEmployees(tc.actor), "actor=%d", tc.actor)
	}
}

func TestCanAssignTaskTo(t *testing.T) {
	cases := []struct {
		actor  int
		target int
		want   bool
	}{
		{1, 1, false},
		{1, 2, true},
		{1, 3, true},
		{2, 1, false},
		{2, 2, false},
		{2, 3, true},
		{3, 1, false},
		{3, 2, false},
		{3, 3, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanAssignTaskTo(tc.actor, tc.target), "actor=%d target=%d", tc.actor, tc.target)
	}
}

func TestCanViewReportsOf(t *testing.T) {
	cases := []struct {
		actor  int
		target int
		want   bool
	}{
		{1, 1, true},
		{1, 2, true},
		{1, 3, true},
		{2, 1, false},
		{2, 2, true},
		{2, 3, true},
		{3, 1, false},
		{3, 2, false},
		{3, 3, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanViewReportsOf(tc.actor, tc.target), "actor=%d target=%d", tc.actor, tc.target)
	}
}

func TestCanDeactivate(t *testing.T) {
	cases := []struct {
		actor  int
		target int
		want   bool
	}{
		{1, 1, false},
		{1, 2, true},
		{1, 3, true},
		{2, 1, false},
		{2, 2, false},
		{2, 3, true},
		{3, 1, false},
		{3, 2, false},
		{3, 3, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanDeactivate(tc.actor, tc.target), "actor=%d target=%d", tc.actor, tc.target)
	}
}

func TestRoleNameLevelRoundTrip(t *testing.T) {
	assert.Equal(t, LevelManager, RoleLevel(NameManager))
	assert.Equal(t, LevelAsstManager, RoleLevel(NameAsstManager))
	assert.Equal(t, LevelGeneralEmployee, RoleLevel(NameGeneralEmployee))
	assert.Equal(t, LevelGeneralEmployee, RoleLevel("Contractor"))

	assert.Equal(t, NameManager, RoleName(1))
	assert.Equal(t, NameAsstManager, RoleName(2))
	assert.Equal(t, NameGeneralEmployee, RoleName(3))
	assert.Equal(t, NameGeneralEmployee, RoleName(7))
}

func TestIsManagement(t *testing.T) {
	assert.True(t, IsManagement(LevelManager))
	assert.True(t, IsManagement(LevelAsstManager))
	assert.False(t, IsManagement(LevelGeneralEmployee))
}
