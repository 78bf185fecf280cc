package models

import (
	"strconv"
	"time"
)

// Billboard status values
const (
	StatusActive      = "active"
	StatusPending     = "pending"
	StatusExpired     = "expired"
	StatusMaintenance = "maintenance"
)

// Statuses lists every valid billboard status
var Statuses = []string{StatusActive, StatusPending, StatusExpired, StatusMaintenance}

// ValidStatus reports whether s is a known billboard status
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Billboard is the central entity: a physical advertising structure with its
// placement, rental period, accountable employee and renting contractor.
//
// CategoryID and ContractorID are nullable, but deleting a referenced
// category or contractor cascades to the billboard (DB-level constraint).
type Billboard struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`

	EmployeeID   uint  `gorm:"not null;index"`
	CategoryID   *uint `gorm:"index"`
	ContractorID *uint `gorm:"index"`

	Width  float64 `gorm:"not null"`
	Height float64 `gorm:"not null"`

	Address   string  `gorm:"type:text;not null"`
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`

	StartDate Date  `gorm:"not null"`
	EndDate   *Date `gorm:"index"`

	Status string `gorm:"size:20;not null;default:'active';index"`

	Price *float64
	Notes string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee   Employee    `gorm:"constraint:OnDelete:CASCADE"`
	Category   *Category   `gorm:"constraint:OnDelete:CASCADE"`
	Contractor *Contractor `gorm:"constraint:OnDelete:CASCADE"`

	Images []BillboardImage `gorm:"foreignKey:BillboardID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name for Billboard
func (Billboard) TableName() string {
	return "billboards"
}

// SizeDisplay formats the physical size as "{height}x{width} м"
func (b *Billboard) SizeDisplay() string {
	return formatDecimal(b.Height) + "x" + formatDecimal(b.Width) + " м"
}

// PeriodDisplay formats the rental period as "dd.mm.yyyy – dd.mm.yyyy"
func (b *Billboard) PeriodDisplay() string {
	end := ""
	if b.EndDate != nil {
		end = b.EndDate.Time().Format("02.01.2006")
	}
	return b.StartDate.Time().Format("02.01.2006") + " – " + end
}

// IsExpired reports whether the rental end date is strictly before today
func (b *Billboard) IsExpired(now time.Time) bool {
	if b.EndDate == nil {
		return false
	}
	today := NewDate(now).Time()
	return b.EndDate.Time().Before(today)
}

// DaysUntilExpiry returns the non-negative number of days left on the rental,
// or nil when no end date is set.
func (b *Billboard) DaysUntilExpiry(now time.Time) *int {
	if b.EndDate == nil {
		return nil
	}
	today := NewDate(now).Time()
	days := int(b.EndDate.Time().Sub(today).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

// formatDecimal renders a dimension without trailing zeros ("3", "3.2")
func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
