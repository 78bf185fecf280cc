package models

import "time"

// BillboardImage is a photo attached to a billboard. The Image field holds
// the asset path relative to the media root; absolute URLs are built at
// serialization time.
//
// At most one image per billboard may have IsPrimary set. The invariant is
// enforced transactionally in the image service, never assumed here.
type BillboardImage struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	BillboardID uint   `gorm:"not null;index"`
	Image       string `gorm:"size:500;not null"`
	AltText     string `gorm:"size:200"`
	SortOrder   int    `gorm:"not null;default:0"`
	IsPrimary   bool   `gorm:"not null;default:false"`
	UploadedAt  time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the table name for BillboardImage
func (BillboardImage) TableName() string {
	return "billboard_images"
}

// ImageOrder is the canonical ordering for billboard images
const ImageOrder = "sort_order ASC, uploaded_at DESC"
