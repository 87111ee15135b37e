package models

import (
	"time"

	"timesheet/apperrors"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Entry is one timesheet record: hours worked on a task on a given
// calendar date. Employee and task references are fixed at creation;
// only the owner edits date/hours/notes, only a manager moves status.
type Entry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	EmployeeID uint      `gorm:"not null;index" json:"employee_id"`
	Employee   Employee  `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"employee,omitempty"`
	TaskID     uint      `gorm:"not null;index" json:"task_id"`
	Task       Task      `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"task,omitempty"`
	Date       time.Time `gorm:"not null;type:date" json:"date"`
	Hours      float64   `gorm:"not null" json:"hours"`
	Status     Status    `gorm:"not null;size:10;default:pending" json:"status"`
	Notes      string    `gorm:"size:500" json:"notes"`
}

func (e *Entry) Validate() error {
	if e.EmployeeID == 0 {
		return &apperrors.ValidationError{Field: "employee", Reason: "required"}
	}
	if e.TaskID == 0 {
		return &apperrors.ValidationError{Field: "task", Reason: "required"}
	}
	if e.Date.IsZero() {
		return &apperrors.ValidationError{Field: "date", Reason: "required"}
	}
	if e.Hours < 0 {
		return &apperrors.ValidationError{Field: "hours", Reason: "must not be negative"}
	}
	if !e.Status.Valid() {
		return &apperrors.ValidationError{Field: "status", Reason: "unknown value"}
	}
	return nil
}

// TotalSalary is derived on every read so it can never drift from the
// employee's current rate. It is not a stored column.
func (e *Entry) TotalSalary() float64 {
	return e.Hours * e.Employee.HourlyRate
}
