package services

import (
	"fmt"

	"github.com/asg0d/billboards-live/internal/models"
	"github.com/asg0d/billboards-live/internal/types"
	"gorm.io/gorm"
)

// Reference entities (employees, categories, contractors) are read-only on
// the public API; mutations happen through the admin routes. Deleting any of
// them cascades to the billboards that reference it — the cascade runs as an
// application-level transaction so every dialect behaves identically.

// ListEmployees returns active employees ordered by name
func ListEmployees(db *gorm.DB) ([]models.Employee, error) {
	var employees []models.Employee
	err := db.Where("is_active = ?", true).
		Order("last_name, first_name").
		Find(&employees).Error
	return employees, err
}

// GetEmployee fetches a single employee by id
func GetEmployee(db *gorm.DB, id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := db.First(&employee, id).Error; err != nil {
		return nil, translateDBError(err, fmt.Sprintf("employee %d", id))
	}
	return &employee, nil
}

// EmployeeInput is the admin mutation payload for employees
type EmployeeInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Position  string `json:"position"`
	IsActive  *bool  `json:"is_active"`
}

// Validate checks required employee fields
func (in *EmployeeInput) Validate() error {
	violations := map[string]string{}
	if in.FirstName == "" {
		violations["first_name"] = "required"
	}
	if in.LastName == "" {
		violations["last_name"] = "required"
	}
	if in.Email == "" {
		violations["email"] = "required"
	}
	if len(violations) > 0 {
		return types.NewValidationError(violations)
	}
	return nil
}

func (in *EmployeeInput) apply(e *models.Employee) {
	e.FirstName = in.FirstName
	e.LastName = in.LastName
	e.Email = in.Email
	e.Phone = in.Phone
	e.Position = in.Position
	e.IsActive = in.IsActive == nil || *in.IsActive
}

// CreateEmployee inserts a new employee; duplicate emails surface as a
// constraint violation.
func CreateEmployee(db *gorm.DB, in *EmployeeInput) (*models.Employee, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var employee models.Employee
	in.apply(&employee)
	if err := db.Create(&employee).Error; err != nil {
		return nil, translateDBError(err, "employee")
	}
	return &employee, nil
}

// UpdateEmployee replaces the mutable fields of an employee
func UpdateEmployee(db *gorm.DB, id uint, in *EmployeeInput) (*models.Employee, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	employee, err := GetEmployee(db, id)
	if err != nil {
		return nil, err
	}
	in.apply(employee)
	if err := db.Save(employee).Error; err != nil {
		return nil, translateDBError(err, "employee")
	}
	return employee, nil
}

// DeleteEmployee removes an employee and cascades to every billboard that
// references it, images included. Returns the orphaned asset paths.
func DeleteEmployee(db *gorm.DB, id uint) ([]string, error) {
	var orphaned []string
	err := db.Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		if err := tx.First(&employee, id).Error; err != nil {
			return translateDBError(err, fmt.Sprintf("employee %d", id))
		}
		paths, err := cascadeDeleteBillboards(tx, "employee_id", id)
		if err != nil {
			return err
		}
		orphaned = paths
		return tx.Delete(&employee).Error
	})
	if err != nil {
		return nil, err
	}
	return orphaned, nil
}

// ListCategories returns active categories in display order
func ListCategories(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Where("is_active = ?", true).
		Order("sort_order, name").
		Find(&categories).Error
	return categories, err
}

// GetCategory fetches a single category by id
func GetCategory(db *gorm.DB, id uint) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		return nil, translateDBError(err, fmt.Sprintf("category %d", id))
	}
	return &category, nil
}

// CategoryInput is the admin mutation payload for categories
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"order"`
}

// Validate checks required category fields
func (in *CategoryInput) Validate() error {
	violations := map[string]string{}
	if in.Name == "" {
		violations["name"] = "required"
	}
	if in.Slug == "" {
		violations["slug"] = "required"
	}
	if len(violations) > 0 {
		return types.NewValidationError(violations)
	}
	return nil
}

func (in *CategoryInput) apply(c *models.Category) {
	c.Name = in.Name
	c.Slug = in.Slug
	c.Description = in.Description
	c.Icon = in.Icon
	if in.Color != "" {
		c.Color = in.Color
	}
	c.IsActive = in.IsActive == nil || *in.IsActive
	c.SortOrder = in.SortOrder
}

// CreateCategory inserts a new category; duplicate names or slugs surface
// as constraint violations.
func CreateCategory(db *gorm.DB, in *CategoryInput) (*models.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var category models.Category
	in.apply(&category)
	if err := db.Create(&category).Error; err != nil {
		return nil, translateDBError(err, "category")
	}
	return &category, nil
}

// UpdateCategory replaces the mutable fields of a category
func UpdateCategory(db *gorm.DB, id uint, in *CategoryInput) (*models.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	category, err := GetCategory(db, id)
	if err != nil {
		return nil, err
	}
	in.apply(category)
	if err := db.Save(category).Error; err != nil {
		return nil, translateDBError(err, "category")
	}
	return category, nil
}

// DeleteCategory removes a category and cascades to its billboards.
// Returns the orphaned asset paths.
func DeleteCategory(db *gorm.DB, id uint) ([]string, error) {
	var orphaned []string
	err := db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return translateDBError(err, fmt.Sprintf("category %d", id))
		}
		paths, err := cascadeDeleteBillboards(tx, "category_id", id)
		if err != nil {
			return err
		}
		orphaned = paths
		return tx.Delete(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return orphaned, nil
}

// ListContractors returns active contractors ordered by name
func ListContractors(db *gorm.DB) ([]models.Contractor, error) {
	var contractors []models.Contractor
	err := db.Where("is_active = ?", true).
		Order("name").
		Find(&contractors).Error
	return contractors, err
}

// GetContractor fetches a single contractor by id
func GetContractor(db *gorm.DB, id uint) (*models.Contractor, error) {
	var contractor models.Contractor
	if err := db.First(&contractor, id).Error; err != nil {
		return nil, translateDBError(err, fmt.Sprintf("contractor %d", id))
	}
	return &contractor, nil
}

// ContractorInput is the admin mutation payload for contractors
type ContractorInput struct {
	Name           string `json:"name"`
	ContactPerson  string `json:"contact_person"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	ContractNumber string `json:"contract_number"`
	INN            string `json:"inn"`
	Website        string `json:"website"`
	Notes          string `json:"notes"`
	IsActive       *bool  `json:"is_active"`
}

// Validate checks required contractor fields
func (in *ContractorInput) Validate() error {
	if in.Name == "" {
		return types.NewValidationError(map[string]string{"name": "required"})
	}
	return nil
}

func (in *ContractorInput) apply(c *models.Contractor) {
	c.Name = in.Name
	c.ContactPerson = in.ContactPerson
	c.Phone = in.Phone
	c.Email = in.Email
	c.Address = in.Address
	c.ContractNumber = in.ContractNumber
	c.INN = in.INN
	c.Website = in.Website
	c.Notes = in.Notes
	c.IsActive = in.IsActive == nil || *in.IsActive
}

// CreateContractor inserts a new contractor
func CreateContractor(db *gorm.DB, in *ContractorInput) (*models.Contractor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var contractor models.Contractor
	in.apply(&contractor)
	if err := db.Create(&contractor).Error; err != nil {
		return nil, translateDBError(err, "contractor")
	}
	return &contractor, nil
}

// UpdateContractor replaces the mutable fields of a contractor
func UpdateContractor(db *gorm.DB, id uint, in *ContractorInput) (*models.Contractor, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	contractor, err := GetContractor(db, id)
	if err != nil {
		return nil, err
	}
	in.apply(contractor)
	if err := db.Save(contractor).Error; err != nil {
		return nil, translateDBError(err, "contractor")
	}
	return contractor, nil
}

// DeleteContractor removes a contractor and cascades to its billboards.
// Returns the orphaned asset paths.
func DeleteContractor(db *gorm.DB, id uint) ([]string, error) {
	var orphaned []string
	err := db.Transaction(func(tx *gorm.DB) error {
		var contractor models.Contractor
		if err := tx.First(&contractor, id).Error; err != nil {
			return translateDBError(err, fmt.Sprintf("contractor %d", id))
		}
		paths, err := cascadeDeleteBillboards(tx, "contractor_id", id)
		if err != nil {
			return err
		}
		orphaned = paths
		return tx.Delete(&contractor).Error
	})
	if err != nil {
		return nil, err
	}
	return orphaned, nil
}

// cascadeDeleteBillboards removes every billboard matching column = id,
// deleting their images first. Returns the stored asset paths of the
// removed images so callers can clean up the media files after commit.
func cascadeDeleteBillboards(tx *gorm.DB, column string, id uint) ([]string, error) {
	var billboardIDs []uint
	if err := tx.Model(&models.Billboard{}).
		Where(column+" = ?", id).
		Pluck("id", &billboardIDs).Error; err != nil {
		return nil, err
	}
	if len(billboardIDs) == 0 {
		return nil, nil
	}
	var paths []string
	if err := tx.Model(&models.BillboardImage{}).
		Where("billboard_id IN ?", billboardIDs).
		Pluck("image", &paths).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("billboard_id IN ?", billboardIDs).
		Delete(&models.BillboardImage{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("id IN ?", billboardIDs).Delete(&models.Billboard{}).Error; err != nil {
		return nil, err
	}
	return paths, nil
}
