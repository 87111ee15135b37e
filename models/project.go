package models

import (
	"time"
)

type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Name        string     `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Description string     `gorm:"size:500" json:"description"`
	Employees   []Employee `gorm:"many2many:project_employees" json:"employees,omitempty"`
	Tasks       []Task     `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
