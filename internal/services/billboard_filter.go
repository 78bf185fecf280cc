package services

import (
	"strconv"
	"strings"

	"github.com/asg0d/billboards-live/internal/models"
	"gorm.io/gorm"
)

// BillboardFilter holds the optional query parameters used to select a
// subset of billboards. Empty fields are no-ops; populated fields are
// AND-combined.
type BillboardFilter struct {
	Status     string
	Employee   string
	Category   string // numeric id or slug
	Contractor string // numeric id or name
	Search     string
}

// Apply translates the filter into a billboard query. Reference tables are
// LEFT JOINed only when a condition needs them, and the free-text search is
// a single OR group so it composes with the exact-match filters.
func (f BillboardFilter) Apply(db *gorm.DB) *gorm.DB {
	q := db.Model(&models.Billboard{})

	joined := map[string]bool{}
	join := func(name, clause string) {
		if !joined[name] {
			q = q.Joins(clause)
			joined[name] = true
		}
	}

	if f.Status != "" {
		q = q.Where("billboards.status = ?", f.Status)
	}

	if f.Employee != "" {
		// Employees are matched by identity only; a non-numeric value
		// matches nothing.
		id, err := strconv.ParseUint(f.Employee, 10, 64)
		if err != nil {
			id = 0
		}
		q = q.Where("billboards.employee_id = ?", id)
	}

	if f.Category != "" {
		if id, err := strconv.ParseUint(f.Category, 10, 64); err == nil {
			q = q.Where("billboards.category_id = ?", id)
		} else {
			join("categories", "LEFT JOIN categories ON categories.id = billboards.category_id")
			q = q.Where("categories.slug = ?", f.Category)
		}
	}

	if f.Contractor != "" {
		if id, err := strconv.ParseUint(f.Contractor, 10, 64); err == nil {
			q = q.Where("billboards.contractor_id = ?", id)
		} else {
			join("contractors", "LEFT JOIN contractors ON contractors.id = billboards.contractor_id")
			q = q.Where("contractors.name = ?", f.Contractor)
		}
	}

	if f.Search != "" {
		join("employees", "LEFT JOIN employees ON employees.id = billboards.employee_id")
		join("categories", "LEFT JOIN categories ON categories.id = billboards.category_id")
		join("contractors", "LEFT JOIN contractors ON contractors.id = billboards.contractor_id")

		like := "%" + strings.ToLower(f.Search) + "%"
		group := db.Session(&gorm.Session{NewDB: true}).
			Where("LOWER(billboards.title) LIKE ?", like).
			Or("LOWER(billboards.address) LIKE ?", like).
			Or("LOWER(employees.first_name) LIKE ?", like).
			Or("LOWER(employees.last_name) LIKE ?", like).
			Or("LOWER(categories.name) LIKE ?", like).
			Or("LOWER(contractors.name) LIKE ?", like).
			Or("LOWER(contractors.contact_person) LIKE ?", like)
		q = q.Where(group)
	}

	return q
}
