package unit_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/asg0d/billboards-live/internal/handlers"
	"github.com/asg0d/billboards-live/internal/models"
	"github.com/asg0d/billboards-live/internal/services"
	"github.com/asg0d/billboards-live/tests/helpers"
)

func setupImageApp(t *testing.T, db *gorm.DB) *fiber.App {
	app := fiber.New()
	handler := &handlers.ImageHandler{DB: db, Cfg: testConfig(t)}
	app.Post("/api/billboards/:id/images", handler.Upload)
	app.Patch("/api/billboards/:id/images", handler.BatchUpdate)
	app.Patch("/api/billboards/:id/images/:imageID", handler.Update)
	app.Delete("/api/billboards/:id/images/:imageID", handler.Delete)
	return app
}

func boolPtr(b bool) *bool { return &b }

func countPrimary(t *testing.T, db *gorm.DB, billboardID uint) int64 {
	t.Helper()
	var n int64
	db.Model(&models.BillboardImage{}).
		Where("billboard_id = ? AND is_primary = ?", billboardID, true).
		Count(&n)
	return n
}

func TestAddPrimaryImageDemotesSiblings(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Ivan", "Petrov", "ivan@example.com")
	billboard := helpers.CreateTestBillboard(t, db, "Board", employee)
	helpers.CreateTestImage(t, db, billboard.ID, "billboards/1/first.jpg", 0, true)

	_, err := services.AddImage(db, billboard.ID, "billboards/1/second.jpg", services.ImageInput{
		IsPrimary: true,
	})
	if err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}

	if n := countPrimary(t, db, billboard.ID); n != 1 {
		t.Errorf("Expected exactly one primary image, got %d", n)
	}
	var primary models.BillboardImage
	db.Where("billboard_id = ? AND is_primary = ?", billboard.ID, true).First(&primary)
	if primary.Image != "billboards/1/second.jpg" {
		t.Errorf("Expected the new image to be primary, got %s", primary.Image)
	}
}

func TestPromoteImageViaPatch(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Ivan", "Petrov", "ivan@example.com")
	billboard := helpers.CreateTestBillboard(t, db, "Board", employee)
	helpers.CreateTestImage(t, db, billboard.ID, "billboards/1/a.jpg", 0, true)
	second := helpers.CreateTestImage(t, db, billboard.ID, "billboards/1/b.jpg", 1, false)

	app := setupImageApp(t, db)
	body, _ := json.Marshal(map[string]interface{}{
		"alt_text":   "promoted",
		"order":      1,
		"is_primary": true,
	})
	req := httptest.NewRequest("PATCH",
		fmt.Sprintf("/api/billboards/%d/images/%d", billboard.ID, second.ID),
		bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	if n := countPrimary(t, db, billboard.ID); n != 1 {
		t.Errorf("Expected exactly one primary image after promotion, got %d", n)
	}
	var reloaded models.BillboardImage
	db.First(&reloaded, second.ID)
	if !reloaded.IsPrimary || reloaded.AltText != "promoted" {
		t.Errorf("Patch did not apply: %+v", reloaded)
	}
}

func TestPatchKeepsOmittedFields(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Ivan", "Petrov", "ivan@example.com")
	billboard := helpers.CreateTestBillboard(t, db, "Board", employee)
	image := helpers.CreateTestImage(t, db, billboard.ID, "billboards/1/a.jpg", 3, false)
	db.Model(image).Update("alt_text", "evening view")

	app := setupImageApp(t, db)
	req := httptest.NewRequest("PATCH",
		fmt.Sprintf("/api/billboards/%d/images/%d", billboard.ID, image.ID),
		bytes.NewReader([]byte(`{"is_primary": true}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var reloaded models.BillboardImage
	db.First(&reloaded, image.ID)
	if !reloaded.IsPrimary {
		t.Error("Expected image promoted to primary")
	}
	if reloaded.AltText != "evening view" || reloaded.SortOrder != 3 {
		t.Errorf("Omitted fields were overwritten: %+v", reloaded)
	}
}

// setupFileDB creates a file-backed SQLite database so pooled connections
// share state, which the concurrency test needs.
func setupFileDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
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

func TestPrimaryInvariantUnderConcurrentWrites(t *testing.T) {
	db := setupFileDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Ivan", "Petrov", "ivan@example.com")
	billboard := helpers.CreateTestBillboard(t, db, "Board", employee)

	images := make([]*models.BillboardImage, 5)
	for i := range images {
		images[i] = helpers.CreateTestImage(t, db,
			billboard.ID, fmt.Sprintf("billboards/1/%d.jpg", i), i, false)
	}

	var wg sync.WaitGroup
	for _, img := range images {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			// SQLite serializes writers, so some promotions may retry or
			// fail with a busy error; the invariant must hold regardless.
			_, _ = services.UpdateImage(db, billboard.ID, id, services.ImagePatch{IsPrimary: boolPtr(true)})
		}(img.ID)
	}
	wg.Wait()

	if n := countPrimary(t, db, billboard.ID); n > 1 {
		t.Errorf("Primary invariant violated: %d primary images", n)
	}
}

func TestBatchUpdateImages(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Ivan", "Petrov", "ivan@example.com")
	billboard := helpers.CreateTestBillboard(t, db, "Board", employee)
	first := helpers.CreateTestImage(t, db, billboard.ID, "billboards/1/a.jpg", 0, true)
	second := helpers.CreateTestImage(t, db, billboard.ID, "billboards/1/b.jpg", 1, false)

	app := setupImageApp(t, db)

	// Array payload: reorder and move the primary flag
	body, _ := json.Marshal([]map[string]interface{}{
		{"id": first.ID, "order": 1, "is_primary": false},
		{"id": second.ID, "order": 0, "is_primary": true},
	})
	req := httptest.NewRequest("PATCH",
		fmt.Sprintf("/api/billboards/%d/images", billboard.ID),
		bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var result []map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	if len(result) != 2 {
		t.Fatalf("Expected 2 images, got %d", len(result))
	}
	// Display order puts the new primary first
	if result[0]["is_primary"] != true {
		t.Errorf("Expected reordered primary first, got %v", result[0])
	}
	if n := countPrimary(t, db, billboard.ID); n != 1 {
		t.Errorf("Expected exactly one primary image, got %d", n)
	}
}

func TestBatchUpdateAcceptsSingleObject(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Ivan", "Petrov", "ivan@example.com")
	billboard := helpers.CreateTestBillboard(t, db, "Board", employee)
	image := helpers.CreateTestImage(t, db, billboard.ID, "billboards/1/a.jpg", 0, false)

	app := setupImageApp(t, db)
	body, _ := json.Marshal(map[string]interface{}{
		"id":       image.ID,
		"alt_text": "single",
	})
	req := httptest.NewRequest("PATCH",
		fmt.Sprintf("/api/billboards/%d/images", billboard.ID),
		bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var reloaded models.BillboardImage
	db.First(&reloaded, image.ID)
	if reloaded.AltText != "single" {
		t.Errorf("Expected alt text applied, got %q", reloaded.AltText)
	}
}

func TestDeleteImage(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Ivan", "Petrov", "ivan@example.com")
	billboard := helpers.CreateTestBillboard(t, db, "Board", employee)
	image := helpers.CreateTestImage(t, db, billboard.ID, "billboards/1/gone.jpg", 0, false)

	app := setupImageApp(t, db)
	req := httptest.NewRequest("DELETE",
		fmt.Sprintf("/api/billboards/%d/images/%d", billboard.ID, image.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 204)

	var count int64
	db.Model(&models.BillboardImage{}).Where("id = ?", image.ID).Count(&count)
	if count != 0 {
		t.Error("Expected image row removed")
	}
}

func TestDeleteImageWrongBillboard(t *testing.T) {
	db := setupTestDB(t)
	employee := helpers.CreateTestEmployee(t, db, "Ivan", "Petrov", "ivan@example.com")
	billboard := helpers.CreateTestBillboard(t, db, "Board", employee)
	other := helpers.CreateTestBillboard(t, db, "Other", employee)
	image := helpers.CreateTestImage(t, db, billboard.ID, "billboards/1/kept.jpg", 0, false)

	app := setupImageApp(t, db)
	req := httptest.NewRequest("DELETE",
		fmt.Sprintf("/api/billboards/%d/images/%d", other.ID, image.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}
