package store

import (
	"errors"

	"timesheet/apperrors"
	"timesheet/models"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Find(f EntryFilter) ([]models.Entry, error) {
	query := s.db.Preload("Employee").Preload("Employee.User").
		Preload("Task").Preload("Task.Project")

	if f.EmployeeID != 0 {
		query = query.Where("employee_id = ?", f.EmployeeID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.From != nil {
		query = query.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("date <= ?", *f.To)
	}

	switch f.Order {
	case OrderEmployeeDateDesc:
		query = query.Order("employee_id asc, date desc")
	default:
		query = query.Order("date desc")
	}

	var entries []models.Entry
	if err := query.Find(&entries).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "find entries")
	}
	return entries, nil
}

func (s *GormStore) GetByID(id uint) (*models.Entry, error) {
	var entry models.Entry
	err := s.db.Preload("Employee").Preload("Employee.User").
		Preload("Task").Preload("Task.Project").
		First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "get entry")
	}
	return &entry, nil
}

func (s *GormStore) Save(entry *models.Entry) error {
	if err := s.db.Save(entry).Error; err != nil {
		return pkgerrors.Wrap(err, "save entry")
	}
	return nil
}

func (s *GormStore) Delete(entry *models.Entry) error {
	if err := s.db.Delete(entry).Error; err != nil {
		return pkgerrors.Wrap(err, "delete entry")
	}
	return nil
}

// GetOrCreateEmployee resolves the payroll profile for a user account,
// creating it with the default rate on first use. Idempotent.
func (s *GormStore) GetOrCreateEmployee(userID uint, defaultRate float64) (*models.Employee, error) {
	var employee models.Employee
	err := s.db.Preload("User").Where("user_id = ?", userID).First(&employee).Error
	if err == nil {
		return &employee, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(err, "lookup employee")
	}

	employee = models.Employee{UserID: userID, HourlyRate: defaultRate}
	if err := s.db.Create(&employee).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "create employee")
	}
	if err := s.db.Preload("User").First(&employee, employee.ID).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "reload employee")
	}
	return &employee, nil
}
