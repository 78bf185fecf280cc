package services

import (
	"time"

	"github.com/asg0d/billboards-live/internal/models"
	"gorm.io/gorm"
)

// Statistics summarizes a filtered billboard set: total and per-status
// counts, counts per active category (zero counts included, keyed by slug),
// and counts per active contractor (nonzero only, keyed by name).
type Statistics struct {
	Total        int64            `json:"total"`
	Active       int64            `json:"active"`
	Pending      int64            `json:"pending"`
	Expired      int64            `json:"expired"`
	Maintenance  int64            `json:"maintenance"`
	ByCategory   map[string]int64 `json:"by_category"`
	ByContractor map[string]int64 `json:"by_contractor"`
}

type groupCount struct {
	ID    uint
	Count int64
}

// ComputeStatistics aggregates the billboard subset selected by filter
func ComputeStatistics(db *gorm.DB, filter BillboardFilter) (*Statistics, error) {
	stats := &Statistics{
		ByCategory:   map[string]int64{},
		ByContractor: map[string]int64{},
	}

	if err := filter.Apply(db).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	statusCounts := map[string]*int64{
		models.StatusActive:      &stats.Active,
		models.StatusPending:     &stats.Pending,
		models.StatusExpired:     &stats.Expired,
		models.StatusMaintenance: &stats.Maintenance,
	}
	for status, target := range statusCounts {
		if err := filter.Apply(db).Where("billboards.status = ?", status).Count(target).Error; err != nil {
			return nil, err
		}
	}

	// Per-category counts; every active category keeps its slug as a key
	// even when no billboard matched.
	var categories []models.Category
	if err := db.Where("is_active = ?", true).Find(&categories).Error; err != nil {
		return nil, err
	}
	var catCounts []groupCount
	err := filter.Apply(db).
		Where("billboards.category_id IS NOT NULL").
		Select("billboards.category_id AS id, COUNT(*) AS count").
		Group("billboards.category_id").
		Scan(&catCounts).Error
	if err != nil {
		return nil, err
	}
	countByCategory := map[uint]int64{}
	for _, gc := range catCounts {
		countByCategory[gc.ID] = gc.Count
	}
	for _, cat := range categories {
		stats.ByCategory[cat.Slug] = countByCategory[cat.ID]
	}

	// Per-contractor counts; only active contractors with a nonzero count.
	var contractors []models.Contractor
	if err := db.Where("is_active = ?", true).Find(&contractors).Error; err != nil {
		return nil, err
	}
	var conCounts []groupCount
	err = filter.Apply(db).
		Where("billboards.contractor_id IS NOT NULL").
		Select("billboards.contractor_id AS id, COUNT(*) AS count").
		Group("billboards.contractor_id").
		Scan(&conCounts).Error
	if err != nil {
		return nil, err
	}
	countByContractor := map[uint]int64{}
	for _, gc := range conCounts {
		countByContractor[gc.ID] = gc.Count
	}
	for _, con := range contractors {
		if n := countByContractor[con.ID]; n > 0 {
			stats.ByContractor[con.Name] = n
		}
	}

	return stats, nil
}

// ExpiringSoon returns active billboards whose rental ends within the next
// 30 days. Both interval bounds are inclusive: an end date equal to today
// has not expired yet and is included.
func ExpiringSoon(db *gorm.DB, filter BillboardFilter, today time.Time) ([]models.Billboard, error) {
	from := models.NewDate(today).Time()
	to := from.AddDate(0, 0, 30)

	var billboards []models.Billboard
	err := filter.Apply(db).
		Where("billboards.status = ?", models.StatusActive).
		Where("billboards.end_date >= ? AND billboards.end_date <= ?", from, to).
		Preload("Employee").
		Preload("Category").
		Preload("Contractor").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order(models.ImageOrder)
		}).
		Order("billboards.end_date ASC").
		Find(&billboards).Error
	if err != nil {
		return nil, err
	}
	return billboards, nil
}

// CategoryBillboardCounts returns the number of billboards per category id
func CategoryBillboardCounts(db *gorm.DB) (map[uint]int64, error) {
	var counts []groupCount
	err := db.Model(&models.Billboard{}).
		Where("category_id IS NOT NULL").
		Select("category_id AS id, COUNT(*) AS count").
		Group("category_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	result := make(map[uint]int64, len(counts))
	for _, gc := range counts {
		result[gc.ID] = gc.Count
	}
	return result, nil
}

// ContractorBillboardCounts returns the number of billboards per contractor id
func ContractorBillboardCounts(db *gorm.DB) (map[uint]int64, error) {
	var counts []groupCount
	err := db.Model(&models.Billboard{}).
		Where("contractor_id IS NOT NULL").
		Select("contractor_id AS id, COUNT(*) AS count").
		Group("contractor_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	result := make(map[uint]int64, len(counts))
	for _, gc := range counts {
		result[gc.ID] = gc.Count
	}
	return result, nil
}
