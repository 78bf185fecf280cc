package services

import (
	"fmt"

	"github.com/asg0d/billboards-live/internal/models"
	"github.com/asg0d/billboards-live/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImageInput carries the mutable attributes of a billboard image
type ImageInput struct {
	AltText   string `json:"alt_text"`
	SortOrder int    `json:"order"`
	IsPrimary bool   `json:"is_primary"`
}

// AddImage attaches an uploaded image asset to a billboard. The parent row
// is locked for the duration of the transaction so concurrent primary
// updates serialize and at most one image stays primary.
func AddImage(db *gorm.DB, billboardID uint, imagePath string, in ImageInput) (*models.BillboardImage, error) {
	if in.SortOrder < 0 {
		in.SortOrder = 0
	}

	image := &models.BillboardImage{
		BillboardID: billboardID,
		Image:       imagePath,
		AltText:     in.AltText,
		SortOrder:   in.SortOrder,
		IsPrimary:   in.IsPrimary,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockBillboard(tx, billboardID); err != nil {
			return err
		}
		if in.IsPrimary {
			if err := clearPrimary(tx, billboardID, 0); err != nil {
				return err
			}
		}
		return tx.Create(image).Error
	})
	if err != nil {
		return nil, err
	}
	return image, nil
}

// ImagePatch is a partial metadata update; nil fields keep their stored
// value.
type ImagePatch struct {
	AltText   *string `json:"alt_text"`
	SortOrder *int    `json:"order"`
	IsPrimary *bool   `json:"is_primary"`
}

func (p ImagePatch) apply(image *models.BillboardImage) {
	if p.AltText != nil {
		image.AltText = *p.AltText
	}
	if p.SortOrder != nil && *p.SortOrder >= 0 {
		image.SortOrder = *p.SortOrder
	}
	if p.IsPrimary != nil {
		image.IsPrimary = *p.IsPrimary
	}
}

// promotes reports whether applying the patch turns a non-primary image
// primary.
func (p ImagePatch) promotes(image *models.BillboardImage) bool {
	return p.IsPrimary != nil && *p.IsPrimary && !image.IsPrimary
}

// UpdateImage changes alt text, ordering, or the primary flag of an image.
// The parent billboard row is locked so a promotion demotes its siblings
// atomically.
func UpdateImage(db *gorm.DB, billboardID, imageID uint, in ImagePatch) (*models.BillboardImage, error) {
	var image models.BillboardImage

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockBillboard(tx, billboardID); err != nil {
			return err
		}
		if err := tx.Where("billboard_id = ?", billboardID).First(&image, imageID).Error; err != nil {
			return translateDBError(err, fmt.Sprintf("image %d", imageID))
		}
		if in.promotes(&image) {
			if err := clearPrimary(tx, billboardID, imageID); err != nil {
				return err
			}
		}

		in.apply(&image)
		return tx.Save(&image).Error
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// DeleteImage removes an image record and reports its stored asset path so
// the caller can remove the file from the media root.
func DeleteImage(db *gorm.DB, billboardID, imageID uint) (string, error) {
	var image models.BillboardImage
	if err := db.Where("billboard_id = ?", billboardID).First(&image, imageID).Error; err != nil {
		return "", translateDBError(err, fmt.Sprintf("image %d", imageID))
	}
	if err := db.Delete(&image).Error; err != nil {
		return "", err
	}
	return image.Image, nil
}

// ImageBatchItem is one entry of a bulk metadata update
type ImageBatchItem struct {
	ID types.FlexUint64 `json:"id"`
	ImagePatch
}

// BatchUpdateImages applies metadata changes to several images of one
// billboard in a single transaction. The payload accepts either a single
// object or an array. When more than one item claims primary, the last one
// in the list wins.
func BatchUpdateImages(db *gorm.DB, billboardID uint, items types.FlexList[ImageBatchItem]) ([]models.BillboardImage, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockBillboard(tx, billboardID); err != nil {
			return err
		}
		for _, item := range items.Slice() {
			imageID := uint(item.ID)
			var image models.BillboardImage
			if err := tx.Where("billboard_id = ?", billboardID).First(&image, imageID).Error; err != nil {
				return translateDBError(err, fmt.Sprintf("image %d", imageID))
			}
			if item.promotes(&image) {
				if err := clearPrimary(tx, billboardID, imageID); err != nil {
					return err
				}
			}
			item.apply(&image)
			if err := tx.Save(&image).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ListImages(db, billboardID)
}

// ListImages returns a billboard's images in display order
func ListImages(db *gorm.DB, billboardID uint) ([]models.BillboardImage, error) {
	var images []models.BillboardImage
	err := db.Where("billboard_id = ?", billboardID).
		Order(models.ImageOrder).
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// lockBillboard takes a row lock on the billboard so primary-flag updates
// serialize per billboard. SQLite ignores the locking clause; its single
// writer gives the same guarantee.
func lockBillboard(tx *gorm.DB, billboardID uint) error {
	var billboard models.Billboard
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&billboard, billboardID).Error; err != nil {
		return translateDBError(err, fmt.Sprintf("billboard %d", billboardID))
	}
	return nil
}

// clearPrimary demotes every image of the billboard except exceptID.
// Must run inside the transaction of the triggering write.
func clearPrimary(tx *gorm.DB, billboardID, exceptID uint) error {
	q := tx.Model(&models.BillboardImage{}).
		Where("billboard_id = ? AND is_primary = ?", billboardID, true)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	return q.Update("is_primary", false).Error
}
