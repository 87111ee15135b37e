package models

import (
	"testing"
	"time"

	"timesheet/apperrors"

	"github.com/stretchr/testify/require"
)

func validEntry() Entry {
	return Entry{
		EmployeeID: 1,
		TaskID:     2,
		Date:       time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
		Hours:      7.5,
		Status:     StatusPending,
	}
}

func TestEntryValidate(t *testing.T) {
	entry := validEntry()
	require.NoError(t, entry.Validate())

	entry = validEntry()
	entry.Hours = -1
	err := entry.Validate()
	require.Error(t, err)
	require.True(t, apperrors.IsValidation(err))

	entry = validEntry()
	entry.Hours = 0
	require.NoError(t, entry.Validate(), "zero hours is allowed")

	entry = validEntry()
	entry.TaskID = 0
	require.Error(t, entry.Validate())

	entry = validEntry()
	entry.EmployeeID = 0
	require.Error(t, entry.Validate())

	entry = validEntry()
	entry.Date = time.Time{}
	require.Error(t, entry.Validate())

	entry = validEntry()
	entry.Status = Status("escalated")
	require.Error(t, entry.Validate())
}

func TestStatusValid(t *testing.T) {
	require.True(t, StatusPending.Valid())
	require.True(t, StatusApproved.Valid())
	require.True(t, StatusRejected.Valid())
	require.False(t, Status("").Valid())
	require.False(t, Status("done").Valid())
}

func TestTotalSalary(t *testing.T) {
	entry := Entry{
		Hours:    15,
		Employee: Employee{HourlyRate: 20.00},
	}
	require.Equal(t, 300.00, entry.TotalSalary())

	// Recomputed from the current rate on every read.
	entry.Employee.HourlyRate = 25.00
	require.Equal(t, 375.00, entry.TotalSalary())
}
