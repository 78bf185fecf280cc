package services

import (
	"fmt"

	"github.com/asg0d/billboards-live/internal/models"
	"github.com/asg0d/billboards-live/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// BillboardInput is the mutation payload for creating or updating a
// billboard. FK identities accept both JSON numbers and strings.
type BillboardInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Employee    types.FlexUint64  `json:"employee"`
	Category    *types.FlexUint64 `json:"category"`
	Contractor  *types.FlexUint64 `json:"contractor"`
	Width       float64           `json:"width"`
	Height      float64           `json:"height"`
	Address     string            `json:"address"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	Status      string            `json:"status"`
	Price       *float64          `json:"price"`
	Notes       string            `json:"notes"`
}

// Validate checks every field constraint and returns a typed validation
// error with per-field details, or nil.
func (in *BillboardInput) Validate() error {
	violations := map[string]string{}

	if in.Title == "" {
		violations["title"] = "required"
	}
	if in.Address == "" {
		violations["address"] = "required"
	}
	if in.Employee == 0 {
		violations["employee"] = "required"
	}
	if in.Width <= 0 {
		violations["width"] = "must be positive"
	}
	if in.Height <= 0 {
		violations["height"] = "must be positive"
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		violations["latitude"] = "must be between -90 and 90"
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		violations["longitude"] = "must be between -180 and 180"
	}
	if in.StartDate == "" {
		violations["start_date"] = "required"
	} else if _, err := models.ParseDate(in.StartDate); err != nil {
		violations["start_date"] = "must be a YYYY-MM-DD date"
	}
	if in.EndDate != "" {
		if _, err := models.ParseDate(in.EndDate); err != nil {
			violations["end_date"] = "must be a YYYY-MM-DD date"
		}
	}
	if in.Status != "" && !models.ValidStatus(in.Status) {
		violations["status"] = "unknown status"
	}
	if in.Price != nil && *in.Price < 0 {
		violations["price"] = "must not be negative"
	}

	if len(violations) > 0 {
		return types.NewValidationError(violations)
	}
	return nil
}

// apply copies the validated input onto the model
func (in *BillboardInput) apply(b *models.Billboard) {
	b.Title = in.Title
	b.Description = in.Description
	b.EmployeeID = uint(in.Employee.Uint64())
	b.CategoryID = optionalID(in.Category)
	b.ContractorID = optionalID(in.Contractor)
	b.Width = in.Width
	b.Height = in.Height
	b.Address = in.Address
	b.Latitude = in.Latitude
	b.Longitude = in.Longitude

	start, _ := models.ParseDate(in.StartDate)
	b.StartDate = start
	if in.EndDate != "" {
		end, _ := models.ParseDate(in.EndDate)
		b.EndDate = &end
	} else {
		b.EndDate = nil
	}

	b.Status = in.Status
	if b.Status == "" {
		b.Status = models.StatusActive
	}
	b.Price = in.Price
	b.Notes = in.Notes
}

func optionalID(v *types.FlexUint64) *uint {
	if v == nil || *v == 0 {
		return nil
	}
	id := uint(v.Uint64())
	return &id
}

// ListBillboards returns the filtered billboard set with every relation the
// projections need, newest first.
func ListBillboards(db *gorm.DB, filter BillboardFilter) ([]models.Billboard, error) {
	var billboards []models.Billboard

	q := filter.Apply(db)
	if db.Dialector.Name() == "mysql" {
		q = q.Clauses(hints.UseIndex("idx_billboards_status"))
	}

	err := q.
		Preload("Employee").
		Preload("Category").
		Preload("Contractor").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order(models.ImageOrder)
		}).
		Order("billboards.created_at DESC").
		Find(&billboards).Error
	if err != nil {
		return nil, err
	}
	return billboards, nil
}

// GetBillboard fetches a single billboard with all relations
func GetBillboard(db *gorm.DB, id uint) (*models.Billboard, error) {
	var billboard models.Billboard
	err := db.
		Preload("Employee").
		Preload("Category").
		Preload("Contractor").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order(models.ImageOrder)
		}).
		First(&billboard, id).Error
	if err != nil {
		return nil, translateDBError(err, fmt.Sprintf("billboard %d", id))
	}
	return &billboard, nil
}

// CreateBillboard validates the input, verifies every referenced identity,
// and inserts the billboard.
func CreateBillboard(db *gorm.DB, in *BillboardInput) (*models.Billboard, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := checkReferences(db, in); err != nil {
		return nil, err
	}

	var billboard models.Billboard
	in.apply(&billboard)

	if err := db.Create(&billboard).Error; err != nil {
		return nil, translateDBError(err, "billboard")
	}
	return GetBillboard(db, billboard.ID)
}

// UpdateBillboard replaces every mutable field of an existing billboard
func UpdateBillboard(db *gorm.DB, id uint, in *BillboardInput) (*models.Billboard, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var billboard models.Billboard
	if err := db.First(&billboard, id).Error; err != nil {
		return nil, translateDBError(err, fmt.Sprintf("billboard %d", id))
	}
	if err := checkReferences(db, in); err != nil {
		return nil, err
	}

	in.apply(&billboard)
	if err := db.Save(&billboard).Error; err != nil {
		return nil, translateDBError(err, "billboard")
	}
	return GetBillboard(db, billboard.ID)
}

// DeleteBillboard removes a billboard and its images in one transaction.
// Cascades are applied at the application level so behavior is identical
// across dialects regardless of FK enforcement. The stored asset paths of
// the removed images are returned so the caller can delete the files after
// the transaction commits.
func DeleteBillboard(db *gorm.DB, id uint) ([]string, error) {
	var orphaned []string
	err := db.Transaction(func(tx *gorm.DB) error {
		var billboard models.Billboard
		if err := tx.First(&billboard, id).Error; err != nil {
			return translateDBError(err, fmt.Sprintf("billboard %d", id))
		}
		if err := tx.Model(&models.BillboardImage{}).
			Where("billboard_id = ?", id).
			Pluck("image", &orphaned).Error; err != nil {
			return err
		}
		if err := tx.Where("billboard_id = ?", id).Delete(&models.BillboardImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&billboard).Error
	})
	if err != nil {
		return nil, err
	}
	return orphaned, nil
}

// checkReferences verifies that employee/category/contractor identities
// exist before a write, so a bad reference surfaces as a 404 rather than a
// dialect-specific FK failure.
func checkReferences(db *gorm.DB, in *BillboardInput) error {
	var count int64

	if err := db.Model(&models.Employee{}).Where("id = ?", uint(in.Employee.Uint64())).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return types.NewNotFoundError(fmt.Sprintf("employee %d not found", in.Employee.Uint64()))
	}

	if id := optionalID(in.Category); id != nil {
		if err := db.Model(&models.Category{}).Where("id = ?", *id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return types.NewNotFoundError(fmt.Sprintf("category %d not found", *id))
		}
	}

	if id := optionalID(in.Contractor); id != nil {
		if err := db.Model(&models.Contractor{}).Where("id = ?", *id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return types.NewNotFoundError(fmt.Sprintf("contractor %d not found", *id))
		}
	}

	return nil
}
