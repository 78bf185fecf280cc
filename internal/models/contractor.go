package models

import (
	"fmt"
	"time"
)

// Contractor represents a client company renting billboards
type Contractor struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	Name           string `gorm:"size:200;not null"`
	ContactPerson  string `gorm:"size:100"`
	Phone          string `gorm:"size:20"`
	Email          string `gorm:"size:255"`
	Address        string `gorm:"type:text"`
	ContractNumber string `gorm:"size:50"`
	INN            string `gorm:"size:20"`
	Website        string `gorm:"size:255"`
	Notes          string `gorm:"type:text"`
	IsActive       bool   `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Billboards []Billboard `gorm:"foreignKey:ContractorID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name for Contractor
func (Contractor) TableName() string {
	return "contractors"
}

// DisplayContact combines the contact person and phone for list views
func (c *Contractor) DisplayContact() string {
	switch {
	case c.ContactPerson != "" && c.Phone != "":
		return fmt.Sprintf("%s (%s)", c.ContactPerson, c.Phone)
	case c.ContactPerson != "":
		return c.ContactPerson
	default:
		return c.Phone
	}
}
