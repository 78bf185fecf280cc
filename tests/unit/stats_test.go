package unit_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/asg0d/billboards-live/internal/models"
	"github.com/asg0d/billboards-live/internal/services"
	"github.com/asg0d/billboards-live/tests/helpers"
)

func TestStatisticsCounts(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Ivan", "Petrov", "ivan@example.com")
	center := helpers.CreateTestCategory(t, db, "City Center", "city-center")
	empty := helpers.CreateTestCategory(t, db, "Unused", "unused")
	_ = empty
	contractor := helpers.CreateTestContractor(t, db, "AdPartner")
	idle := helpers.CreateTestContractor(t, db, "Idle Media")
	_ = idle

	helpers.CreateTestBillboard(t, db, "A", employee,
		helpers.WithCategory(center), helpers.WithContractor(contractor))
	helpers.CreateTestBillboard(t, db, "B", employee,
		helpers.WithCategory(center), helpers.WithStatus(models.StatusPending))
	helpers.CreateTestBillboard(t, db, "C", employee,
		helpers.WithStatus(models.StatusExpired))
	helpers.CreateTestBillboard(t, db, "D", employee,
		helpers.WithStatus(models.StatusMaintenance))

	stats, err := services.ComputeStatistics(db, services.BillboardFilter{})
	if err != nil {
		t.Fatalf("ComputeStatistics failed: %v", err)
	}

	if stats.Total != 4 {
		t.Errorf("Expected total 4, got %d", stats.Total)
	}
	if stats.Active != 1 || stats.Pending != 1 || stats.Expired != 1 || stats.Maintenance != 1 {
		t.Errorf("Unexpected status counts: %+v", stats)
	}
	if sum := stats.Active + stats.Pending + stats.Expired + stats.Maintenance; sum != stats.Total {
		t.Errorf("Status counts sum %d != total %d", sum, stats.Total)
	}

	// Every active category appears, zero counts included
	if stats.ByCategory["city-center"] != 2 {
		t.Errorf("Expected 2 for city-center, got %d", stats.ByCategory["city-center"])
	}
	if n, ok := stats.ByCategory["unused"]; !ok || n != 0 {
		t.Errorf("Expected zero-filled entry for unused category, got %v (present=%v)", n, ok)
	}

	// Contractors appear only with nonzero counts
	if stats.ByContractor["AdPartner"] != 1 {
		t.Errorf("Expected 1 for AdPartner, got %d", stats.ByContractor["AdPartner"])
	}
	if _, ok := stats.ByContractor["Idle Media"]; ok {
		t.Error("Idle contractor should not appear in by_contractor")
	}
}

func TestStatisticsRespectsFilter(t *testing.T) {
	db := setupTestDB(t)
	ivan := helpers.CreateTestEmployee(t, db, "Ivan", "Petrov", "ivan@example.com")
	anna := helpers.CreateTestEmployee(t, db, "Anna", "Smirnova", "anna@example.com")
	helpers.CreateTestBillboard(t, db, "Ivan Board", ivan)
	helpers.CreateTestBillboard(t, db, "Anna Board 1", anna)
	helpers.CreateTestBillboard(t, db, "Anna Board 2", anna, helpers.WithStatus(models.StatusPending))

	stats, err := services.ComputeStatistics(db, services.BillboardFilter{Employee: itoa(anna.ID)})
	if err != nil {
		t.Fatalf("ComputeStatistics failed: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("Expected filtered total 2, got %d", stats.Total)
	}
	if stats.Active != 1 || stats.Pending != 1 {
		t.Errorf("Unexpected filtered status counts: %+v", stats)
	}
}

func TestExpiringSoonBoundaries(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Ivan", "Petrov", "ivan@example.com")

	// today = 2024-01-01; window is [2024-01-01, 2024-01-31]
	today := time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)

	helpers.CreateTestBillboard(t, db, "Ends Today", employee,
		helpers.WithPeriod("2023-12-01", "2024-01-01"))
	helpers.CreateTestBillboard(t, db, "Ends Last Day", employee,
		helpers.WithPeriod("2023-12-01", "2024-01-31"))
	helpers.CreateTestBillboard(t, db, "Ends After Window", employee,
		helpers.WithPeriod("2023-12-01", "2024-02-01"))
	helpers.CreateTestBillboard(t, db, "Already Over", employee,
		helpers.WithPeriod("2023-11-01", "2023-12-31"))
	helpers.CreateTestBillboard(t, db, "Open Ended", employee,
		helpers.WithPeriod("2023-12-01", ""))
	helpers.CreateTestBillboard(t, db, "Not Active", employee,
		helpers.WithPeriod("2023-12-01", "2024-01-15"),
		helpers.WithStatus(models.StatusPending))

	billboards, err := services.ExpiringSoon(db, services.BillboardFilter{}, today)
	if err != nil {
		t.Fatalf("ExpiringSoon failed: %v", err)
	}

	if len(billboards) != 2 {
		titles := make([]string, 0, len(billboards))
		for _, b := range billboards {
			titles = append(titles, b.Title)
		}
		t.Fatalf("Expected 2 expiring billboards, got %v", titles)
	}
	// Ordered by end date ascending
	if billboards[0].Title != "Ends Today" || billboards[1].Title != "Ends Last Day" {
		t.Errorf("Unexpected order: %s, %s", billboards[0].Title, billboards[1].Title)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
