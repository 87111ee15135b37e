package authz

import (
	"testing"

	"timesheet/models"

	"github.com/stretchr/testify/require"
)

func TestIsManager(t *testing.T) {
	require.True(t, IsManager(&models.User{Role: models.RoleManager}))
	require.False(t, IsManager(&models.User{Role: models.RoleEmployee}))
	require.False(t, IsManager(nil))
}

func TestVisibleScope(t *testing.T) {
	require.Equal(t, ScopeAll, VisibleScope(&models.User{Role: models.RoleManager}))
	require.Equal(t, ScopeOwn, VisibleScope(&models.User{Role: models.RoleEmployee}))
	require.Equal(t, ScopeOwn, VisibleScope(nil))
}

func TestCanMutate(t *testing.T) {
	owner := &models.Employee{ID: 10}
	other := &models.Employee{ID: 11}
	entry := &models.Entry{EmployeeID: 10}

	require.True(t, CanMutate(owner, entry))
	require.False(t, CanMutate(other, entry))
	require.False(t, CanMutate(nil, entry))
	require.False(t, CanMutate(owner, nil))
}

func TestCanApprove(t *testing.T) {
	require.True(t, CanApprove(&models.User{Role: models.RoleManager}))
	require.False(t, CanApprove(&models.User{Role: models.RoleEmployee}))
}
