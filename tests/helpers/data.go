package helpers

import (
	"testing"
	"time"

	"github.com/asg0d/billboards-live/internal/models"
	"gorm.io/gorm"
)

// CreateTestEmployee creates an active employee
func CreateTestEmployee(t *testing.T, db *gorm.DB, firstName, lastName, email string) *models.Employee {
	t.Helper()
	employee := &models.Employee{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		IsActive:  true,
	}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("Failed to create employee: %v", err)
	}
	return employee
}

// CreateTestCategory creates an active category
func CreateTestCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()
	category := &models.Category{
		Name:     name,
		Slug:     slug,
		Color:    "#3B82F6",
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	return category
}

// CreateTestContractor creates an active contractor
func CreateTestContractor(t *testing.T, db *gorm.DB, name string) *models.Contractor {
	t.Helper()
	contractor := &models.Contractor{
		Name:     name,
		IsActive: true,
	}
	if err := db.Create(contractor).Error; err != nil {
		t.Fatalf("Failed to create contractor: %v", err)
	}
	return contractor
}

// BillboardOption mutates a billboard before it is persisted
type BillboardOption func(*models.Billboard)

// WithStatus sets the billboard status
func WithStatus(status string) BillboardOption {
	return func(b *models.Billboard) { b.Status = status }
}

// WithCategory links the billboard to a category
func WithCategory(c *models.Category) BillboardOption {
	return func(b *models.Billboard) { b.CategoryID = &c.ID }
}

// WithContractor links the billboard to a contractor
func WithContractor(c *models.Contractor) BillboardOption {
	return func(b *models.Billboard) { b.ContractorID = &c.ID }
}

// WithPeriod sets the rental period; either date may be the zero string to
// leave the default.
func WithPeriod(start, end string) BillboardOption {
	return func(b *models.Billboard) {
		if start != "" {
			d, _ := models.ParseDate(start)
			b.StartDate = d
		}
		if end != "" {
			d, _ := models.ParseDate(end)
			b.EndDate = &d
		}
	}
}

// WithSize sets the physical dimensions
func WithSize(width, height float64) BillboardOption {
	return func(b *models.Billboard) {
		b.Width = width
		b.Height = height
	}
}

// CreateTestBillboard creates a billboard owned by the employee with sane
// defaults, then applies the options.
func CreateTestBillboard(t *testing.T, db *gorm.DB, title string, employee *models.Employee, opts ...BillboardOption) *models.Billboard {
	t.Helper()
	billboard := &models.Billboard{
		Title:      title,
		EmployeeID: employee.ID,
		Width:      3,
		Height:     6,
		Address:    "Test street 1",
		Latitude:   41.31,
		Longitude:  69.24,
		StartDate:  models.NewDate(time.Now()),
		Status:     models.StatusActive,
	}
	for _, opt := range opts {
		opt(billboard)
	}
	if err := db.Create(billboard).Error; err != nil {
		t.Fatalf("Failed to create billboard: %v", err)
	}
	return billboard
}

// CreateTestImage attaches an image record to a billboard
func CreateTestImage(t *testing.T, db *gorm.DB, billboardID uint, path string, sortOrder int, primary bool) *models.BillboardImage {
	t.Helper()
	image := &models.BillboardImage{
		BillboardID: billboardID,
		Image:       path,
		SortOrder:   sortOrder,
		IsPrimary:   primary,
	}
	if err := db.Create(image).Error; err != nil {
		t.Fatalf("Failed to create image: %v", err)
	}
	return image
}
