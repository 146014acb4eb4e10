package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleCan(t *testing.T) {
	assert.True(t, RoleStudent.Can(CapSubmitJobs))
	assert.False(t, RoleStudent.Can(CapManageQueue))
	assert.False(t, RoleStudent.Can(CapReadAnyDocument))

	assert.False(t, RoleStaff.Can(CapSubmitJobs))
	assert.True(t, RoleStaff.Can(CapManageQueue))
	assert.True(t, RoleStaff.Can(CapReadAnyDocument))

	assert.False(t, Role("admin").Can(CapManageQueue))
}

func TestRoleDashboard(t *testing.T) {
	assert.Equal(t, "/student", RoleStudent.Dashboard())
	assert.Equal(t, "/staff", RoleStaff.Dashboard())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Staff ")
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, r)

	_, err = ParseRole("admin")
	assert.Error(t, err)
}

func TestParseJobStatus(t *testing.T) {
	s, err := ParseJobStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s)

	_, err = ParseJobStatus("Done")
	assert.Error(t, err)
}

func TestJobStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to JobStatus
		ok       bool
	}{
		{StatusQueued, StatusPrinting, true},
		{StatusQueued, StatusCompleted, true},
		{StatusQueued, StatusCancelled, true},
		{StatusPrinting, StatusQueued, true},
		{StatusPrinting, StatusCompleted, true},
		{StatusQueued, StatusQueued, false},
		{StatusCompleted, StatusQueued, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPrinting, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestJobStatusTerminal(t *testing.T) {
	assert.False(t, StatusQueued.Terminal())
	assert.False(t, StatusPrinting.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.Empty(t, StatusCompleted.NextStatuses())
}
