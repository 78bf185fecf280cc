package handlers

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/asg0d/billboards-live/internal/config"
	"github.com/asg0d/billboards-live/internal/services"
	"github.com/asg0d/billboards-live/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageHandler handles billboard image routes
type ImageHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Upload handles POST /api/billboards/:id/images
// @Summary Upload a billboard image
// @Description Multipart upload; stores the file under the media root and records alt_text/order/is_primary
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Billboard id"
// @Param image formData file true "Image file"
// @Param alt_text formData string false "Alt text"
// @Param order formData int false "Sort order"
// @Param is_primary formData bool false "Primary flag"
// @Success 201 {object} services.ImageDetail
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /billboards/{id}/images [post]
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "images.upload")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return handleServiceError(c, types.NewValidationError(map[string]string{"image": "file is required"}), "images.upload")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return handleServiceError(c, types.NewValidationError(map[string]string{"image": "unsupported file type " + ext}), "images.upload")
	}

	in := services.ImageInput{
		AltText:   c.FormValue("alt_text"),
		IsPrimary: parseBool(c.FormValue("is_primary")),
	}
	if order, err := strconv.Atoi(c.FormValue("order", "0")); err == nil {
		in.SortOrder = order
	}

	relPath := filepath.Join("billboards", strconv.FormatUint(uint64(id), 10), uuid.NewString()+ext)
	dest := filepath.Join(h.Cfg.MediaRoot, relPath)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return handleServiceError(c, err, "images.upload")
	}
	if err := c.SaveFile(file, dest); err != nil {
		return handleServiceError(c, err, "images.upload")
	}

	image, err := services.AddImage(h.DB, id, filepath.ToSlash(relPath), in)
	if err != nil {
		// The database rejected the record; do not leave the asset behind.
		if rmErr := os.Remove(dest); rmErr != nil {
			log.Printf("orphaned upload cleanup failed: %v", rmErr)
		}
		return handleServiceError(c, err, "images.upload")
	}

	resolve := mediaResolver(c, h.Cfg)
	return c.Status(fiber.StatusCreated).JSON(services.ImageDetail{
		ID:        image.ID,
		Image:     resolve(image.Image),
		AltText:   image.AltText,
		SortOrder: image.SortOrder,
		IsPrimary: image.IsPrimary,
	})
}

// Update handles PATCH /api/billboards/:id/images/:imageID
// @Summary Update image metadata
// @Description Update alt text, ordering, or the primary flag; at most one image per billboard stays primary
// @Tags Images
// @Accept json
// @Produce json
// @Param id path int true "Billboard id"
// @Param imageID path int true "Image id"
// @Param image body services.ImagePatch true "Image metadata"
// @Success 200 {object} services.ImageDetail
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /billboards/{id}/images/{imageID} [patch]
func (h *ImageHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "images.update")
	}
	imageID, err := parseID(c, "imageID")
	if err != nil {
		return handleServiceError(c, err, "images.update")
	}

	var in services.ImagePatch
	if err := c.BodyParser(&in); err != nil {
		return handleServiceError(c, types.NewValidationError(map[string]string{"body": err.Error()}), "images.update")
	}

	image, err := services.UpdateImage(h.DB, id, imageID, in)
	if err != nil {
		return handleServiceError(c, err, "images.update")
	}

	resolve := mediaResolver(c, h.Cfg)
	return c.Status(fiber.StatusOK).JSON(services.ImageDetail{
		ID:        image.ID,
		Image:     resolve(image.Image),
		AltText:   image.AltText,
		SortOrder: image.SortOrder,
		IsPrimary: image.IsPrimary,
	})
}

// BatchUpdate handles PATCH /api/billboards/:id/images
// @Summary Bulk-update image metadata
// @Description Apply metadata changes to several images at once; accepts a single object or an array
// @Tags Images
// @Accept json
// @Produce json
// @Param id path int true "Billboard id"
// @Param images body services.ImageBatchItem true "Image metadata items"
// @Success 200 {array} services.ImageDetail
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /billboards/{id}/images [patch]
func (h *ImageHandler) BatchUpdate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "images.batch_update")
	}

	var items types.FlexList[services.ImageBatchItem]
	if err := c.BodyParser(&items); err != nil {
		return handleServiceError(c, types.NewValidationError(map[string]string{"body": err.Error()}), "images.batch_update")
	}

	images, err := services.BatchUpdateImages(h.DB, id, items)
	if err != nil {
		return handleServiceError(c, err, "images.batch_update")
	}

	resolve := mediaResolver(c, h.Cfg)
	out := make([]services.ImageDetail, 0, len(images))
	for _, image := range images {
		out = append(out, services.ImageDetail{
			ID:        image.ID,
			Image:     resolve(image.Image),
			AltText:   image.AltText,
			SortOrder: image.SortOrder,
			IsPrimary: image.IsPrimary,
		})
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Delete handles DELETE /api/billboards/:id/images/:imageID
// @Summary Delete a billboard image
// @Description Remove the image record and its stored asset
// @Tags Images
// @Produce json
// @Param id path int true "Billboard id"
// @Param imageID path int true "Image id"
// @Success 204 ""
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /billboards/{id}/images/{imageID} [delete]
func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "images.delete")
	}
	imageID, err := parseID(c, "imageID")
	if err != nil {
		return handleServiceError(c, err, "images.delete")
	}

	storedPath, err := services.DeleteImage(h.DB, id, imageID)
	if err != nil {
		return handleServiceError(c, err, "images.delete")
	}

	removeMediaAssets(h.Cfg, []string{storedPath})
	return c.SendStatus(fiber.StatusNoContent)
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
