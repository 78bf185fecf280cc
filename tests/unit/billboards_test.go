package unit_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/asg0d/billboards-live/internal/config"
	"github.com/asg0d/billboards-live/internal/handlers"
	"github.com/asg0d/billboards-live/internal/models"
	"github.com/asg0d/billboards-live/tests/helpers"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Employee{},
		&models.Category{},
		&models.Contractor{},
		&models.Billboard{},
		&models.BillboardImage{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		MediaRoot:     t.TempDir(),
		MediaURL:      "/media",
		PublicBaseURL: "http://test.local",
	}
}

// setupBillboardApp mounts the billboard routes without auth middleware
func setupBillboardApp(t *testing.T, db *gorm.DB) *fiber.App {
	app := fiber.New()
	handler := &handlers.BillboardHandler{DB: db, Cfg: testConfig(t)}
	app.Get("/api/billboards/statistics", handler.Statistics)
	app.Get("/api/billboards/expiring_soon", handler.ExpiringSoon)
	app.Get("/api/billboards/by_category", handler.ByCategory)
	app.Get("/api/billboards/by_contractor", handler.ByContractor)
	app.Get("/api/billboards", handler.List)
	app.Get("/api/billboards/:id", handler.Get)
	app.Post("/api/billboards", handler.Create)
	app.Put("/api/billboards/:id", handler.Update)
	app.Delete("/api/billboards/:id", handler.Delete)
	return app
}

func TestListBillboardsProjection(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Ivan", "Petrov", "ivan@example.com")
	category := helpers.CreateTestCategory(t, db, "City Center", "city-center")
	billboard := helpers.CreateTestBillboard(t, db, "Main Square", employee,
		helpers.WithCategory(category),
		helpers.WithSize(3, 6),
		helpers.WithPeriod("2024-01-01", "2024-12-31"))
	helpers.CreateTestImage(t, db, billboard.ID, "billboards/1/a.jpg", 0, true)
	helpers.CreateTestImage(t, db, billboard.ID, "billboards/1/b.jpg", 1, false)
	helpers.CreateTestImage(t, db, billboard.ID, "billboards/1/c.jpg", 2, false)

	app := setupBillboardApp(t, db)
	req := httptest.NewRequest("GET", "/api/billboards", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var result []map[string]interface{}
	helpers.ParseJSON(t, resp, &result)

	if len(result) != 1 {
		t.Fatalf("Expected 1 billboard, got %d", len(result))
	}
	item := result[0]
	if item["title"] != "Main Square" {
		t.Errorf("Expected title 'Main Square', got %v", item["title"])
	}
	if item["employee"] != "Ivan Petrov" {
		t.Errorf("Expected employee full name, got %v", item["employee"])
	}
	if item["category"] != float64(category.ID) {
		t.Errorf("Expected numeric category id, got %v", item["category"])
	}
	categoryData, ok := item["category_data"].(map[string]interface{})
	if !ok || categoryData["name"] != "City Center" || categoryData["slug"] != "city-center" {
		t.Errorf("Expected nested category summary, got %v", item["category_data"])
	}
	if item["size"] != "6x3 м" {
		t.Errorf("Expected size '6x3 м', got %v", item["size"])
	}
	if item["period"] != "01.01.2024 – 31.12.2024" {
		t.Errorf("Unexpected period: %v", item["period"])
	}
	images, ok := item["images"].([]interface{})
	if !ok || len(images) != 2 {
		t.Fatalf("Expected 2 image URLs in the list projection, got %v", item["images"])
	}
	if images[0] != "http://test.local/media/billboards/1/a.jpg" {
		t.Errorf("Expected absolute image URL, got %v", images[0])
	}
	location, ok := item["location"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected location object, got %v", item["location"])
	}
	if location["lat"] != 41.31 || location["lng"] != 69.24 {
		t.Errorf("Unexpected location: %v", location)
	}
}

func TestGetBillboardDetail(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Anna", "Smirnova", "anna@example.com")
	contractor := helpers.CreateTestContractor(t, db, "AdPartner LLC")
	end := models.NewDate(time.Now().AddDate(0, 0, 10))
	billboard := helpers.CreateTestBillboard(t, db, "River Bridge", employee,
		helpers.WithContractor(contractor))
	db.Model(billboard).Update("end_date", end.Time())

	app := setupBillboardApp(t, db)
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/billboards/%d", billboard.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var detail map[string]interface{}
	helpers.ParseJSON(t, resp, &detail)

	if detail["employee_name"] != "Anna Smirnova" {
		t.Errorf("Expected employee_name, got %v", detail["employee_name"])
	}
	if detail["contractor"] != "AdPartner LLC" {
		t.Errorf("Expected contractor name, got %v", detail["contractor"])
	}
	days, ok := detail["days_until_expiry"].(float64)
	if !ok {
		t.Fatalf("Expected days_until_expiry, got %v", detail["days_until_expiry"])
	}
	if days < 9 || days > 10 {
		t.Errorf("Expected ~10 days until expiry, got %v", days)
	}
	if detail["is_expired"] != false {
		t.Errorf("Expected is_expired false for a future end date, got %v", detail["is_expired"])
	}
}

func TestGetBillboardDetailExpired(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Anna", "Smirnova", "anna@example.com")
	billboard := helpers.CreateTestBillboard(t, db, "Over", employee,
		helpers.WithPeriod("2023-01-01", "2023-06-30"))

	app := setupBillboardApp(t, db)
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/billboards/%d", billboard.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var detail map[string]interface{}
	helpers.ParseJSON(t, resp, &detail)
	if detail["is_expired"] != true {
		t.Errorf("Expected is_expired true for a past end date, got %v", detail["is_expired"])
	}
	if detail["days_until_expiry"] != float64(0) {
		t.Errorf("Expected zero days until expiry, got %v", detail["days_until_expiry"])
	}
}

func TestGetBillboardNotFound(t *testing.T) {
	db := setupTestDB(t)
	app := setupBillboardApp(t, db)

	req := httptest.NewRequest("GET", "/api/billboards/9999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)

	var result map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	if result["error"] == nil {
		t.Error("Expected 'error' field in 404 response")
	}
	if result["ok"] != false {
		t.Error("Expected ok=false in 404 response")
	}
}

func TestCreateBillboard(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Oleg", "Ivanov", "oleg@example.com")
	app := setupBillboardApp(t, db)

	// FK ids may arrive as strings
	reqBody := map[string]interface{}{
		"title":      "New Board",
		"employee":   fmt.Sprintf("%d", employee.ID),
		"width":      3.0,
		"height":     6.0,
		"address":    "Central Avenue 5",
		"latitude":   41.0,
		"longitude":  69.0,
		"start_date": "2024-06-01",
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/api/billboards", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 201)

	var detail map[string]interface{}
	helpers.ParseJSON(t, resp, &detail)
	if detail["status"] != models.StatusActive {
		t.Errorf("Expected default status active, got %v", detail["status"])
	}
	if detail["start_date"] != "2024-06-01" {
		t.Errorf("Expected plain date serialization, got %v", detail["start_date"])
	}
	if detail["end_date"] != nil {
		t.Errorf("Expected nil end_date, got %v", detail["end_date"])
	}
}

func TestCreateBillboardValidation(t *testing.T) {
	db := setupTestDB(t)
	app := setupBillboardApp(t, db)

	reqBody := map[string]interface{}{
		"title":      "",
		"width":      -1.0,
		"height":     0.0,
		"latitude":   95.0,
		"longitude":  500.0,
		"start_date": "junk",
		"status":     "bogus",
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/api/billboards", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)

	var result map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	violations, ok := result["violations"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected violations map, got %v", result["violations"])
	}
	for _, field := range []string{"title", "address", "employee", "width", "height", "latitude", "longitude", "start_date", "status"} {
		if violations[field] == nil {
			t.Errorf("Expected violation for field %q", field)
		}
	}
}

func TestCreateBillboardUnknownEmployee(t *testing.T) {
	db := setupTestDB(t)
	app := setupBillboardApp(t, db)

	reqBody := map[string]interface{}{
		"title":      "Orphan Board",
		"employee":   12345,
		"width":      3.0,
		"height":     6.0,
		"address":    "Nowhere 1",
		"start_date": "2024-06-01",
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/api/billboards", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}

func TestUpdateBillboard(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Olga", "Popova", "olga@example.com")
	billboard := helpers.CreateTestBillboard(t, db, "Old Title", employee)
	app := setupBillboardApp(t, db)

	reqBody := map[string]interface{}{
		"title":      "Renamed",
		"employee":   employee.ID,
		"width":      4.0,
		"height":     8.0,
		"address":    billboard.Address,
		"start_date": "2024-02-01",
		"status":     models.StatusMaintenance,
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/billboards/%d", billboard.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var detail map[string]interface{}
	helpers.ParseJSON(t, resp, &detail)
	if detail["title"] != "Renamed" {
		t.Errorf("Expected renamed title, got %v", detail["title"])
	}
	if detail["status"] != models.StatusMaintenance {
		t.Errorf("Expected maintenance status, got %v", detail["status"])
	}
	if detail["size"] != "8x4 м" {
		t.Errorf("Expected size '8x4 м', got %v", detail["size"])
	}
}

func TestDeleteBillboardCascadesImages(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Mark", "Lebedev", "mark@example.com")
	billboard := helpers.CreateTestBillboard(t, db, "Doomed", employee)
	helpers.CreateTestImage(t, db, billboard.ID, "billboards/x/1.jpg", 0, true)
	helpers.CreateTestImage(t, db, billboard.ID, "billboards/x/2.jpg", 1, false)
	app := setupBillboardApp(t, db)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/billboards/%d", billboard.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 204)

	var imageCount int64
	db.Model(&models.BillboardImage{}).Where("billboard_id = ?", billboard.ID).Count(&imageCount)
	if imageCount != 0 {
		t.Errorf("Expected images removed with billboard, found %d", imageCount)
	}

	var billboardCount int64
	db.Model(&models.Billboard{}).Count(&billboardCount)
	if billboardCount != 0 {
		t.Errorf("Expected billboard removed, found %d", billboardCount)
	}
}

func TestDeleteBillboardRemovesAssets(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig(t)
	employee := helpers.CreateTestEmployee(t, db, "Mark", "Lebedev", "mark@example.com")
	billboard := helpers.CreateTestBillboard(t, db, "Doomed", employee)

	rel := "billboards/9/asset.jpg"
	helpers.CreateTestImage(t, db, billboard.ID, rel, 0, true)
	asset := filepath.Join(cfg.MediaRoot, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(asset), 0o755); err != nil {
		t.Fatalf("Failed to create media dir: %v", err)
	}
	if err := os.WriteFile(asset, []byte("jpeg"), 0o644); err != nil {
		t.Fatalf("Failed to write asset: %v", err)
	}

	app := fiber.New()
	handler := &handlers.BillboardHandler{DB: db, Cfg: cfg}
	app.Delete("/api/billboards/:id", handler.Delete)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/billboards/%d", billboard.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 204)

	if _, err := os.Stat(asset); !os.IsNotExist(err) {
		t.Error("Expected stored asset removed with the billboard")
	}
}

func TestByCategoryMissingParameter(t *testing.T) {
	db := setupTestDB(t)
	app := setupBillboardApp(t, db)

	req := httptest.NewRequest("GET", "/api/billboards/by_category", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)

	var result map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	if result["error"] == nil {
		t.Error("Expected 'error' field when the category parameter is absent")
	}

	req = httptest.NewRequest("GET", "/api/billboards/by_contractor", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)
}
