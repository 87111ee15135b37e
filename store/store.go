package store

import (
	"time"

	"timesheet/models"
)

type Order string

const (
	OrderDateDesc         Order = "date_desc"
	OrderEmployeeDateDesc Order = "employee_date_desc"
)

// EntryFilter narrows a Find. Zero-valued fields are ignored; From/To
// are inclusive calendar-date bounds.
type EntryFilter struct {
	EmployeeID uint
	Status     models.Status
	From       *time.Time
	To         *time.Time
	Order      Order
}

// EntryStore is the storage collaborator consumed by the approval and
// reporting services.
type EntryStore interface {
	Find(f EntryFilter) ([]models.Entry, error)
	GetByID(id uint) (*models.Entry, error)
	Save(entry *models.Entry) error
	Delete(entry *models.Entry) error
	GetOrCreateEmployee(userID uint, defaultRate float64) (*models.Employee, error)
}
