package models

import "time"

// Category classifies the type of advertising structure (digital screen,
// bus shelter, etc.)
type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"uniqueIndex;size:100;not null"`
	Slug        string `gorm:"uniqueIndex;size:100;not null"`
	Description string `gorm:"type:text"`
	Icon        string `gorm:"size:50"`
	Color       string `gorm:"size:7;not null;default:'#3B82F6'"`
	IsActive    bool   `gorm:"not null;default:true"`
	SortOrder   int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Billboards []Billboard `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name for Category
func (Category) TableName() string {
	return "categories"
}
