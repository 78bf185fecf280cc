package models

import "time"

// Employee represents a staff member accountable for billboards
type Employee struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Phone     string `gorm:"size:20"`
	Position  string `gorm:"size:100"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time

	Billboards []Billboard `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name for Employee
func (Employee) TableName() string {
	return "employees"
}

// FullName returns the display name used across the API
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
