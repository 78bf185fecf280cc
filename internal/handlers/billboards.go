package handlers

import (
	"time"

	"github.com/asg0d/billboards-live/internal/config"
	"github.com/asg0d/billboards-live/internal/services"
	"github.com/asg0d/billboards-live/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BillboardHandler handles billboard routes
type BillboardHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// filterFromQuery extracts the shared filter parameters from the request
func filterFromQuery(c *fiber.Ctx) services.BillboardFilter {
	return services.BillboardFilter{
		Status:     c.Query("status"),
		Employee:   c.Query("employee"),
		Category:   c.Query("category"),
		Contractor: c.Query("contractor"),
		Search:     c.Query("search"),
	}
}

// List handles GET /api/billboards
// @Summary List billboards
// @Description List billboards with optional status/employee/category/contractor/search filters
// @Tags Billboards
// @Produce json
// @Param status query string false "Status filter (active, pending, expired, maintenance)"
// @Param employee query string false "Employee id"
// @Param category query string false "Category id or slug"
// @Param contractor query string false "Contractor id or name fragment"
// @Param search query string false "Free-text search"
// @Success 200 {array} services.BillboardListItem
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /billboards [get]
func (h *BillboardHandler) List(c *fiber.Ctx) error {
	billboards, err := services.ListBillboards(h.DB, filterFromQuery(c))
	if err != nil {
		return handleServiceError(c, err, "billboards.list")
	}
	return c.Status(fiber.StatusOK).JSON(services.ProjectList(billboards, mediaResolver(c, h.Cfg)))
}

// Get handles GET /api/billboards/:id
// @Summary Get a billboard
// @Description Get the detail projection of a single billboard
// @Tags Billboards
// @Produce json
// @Param id path int true "Billboard id"
// @Success 200 {object} services.BillboardDetail
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /billboards/{id} [get]
func (h *BillboardHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "billboards.get")
	}
	billboard, err := services.GetBillboard(h.DB, id)
	if err != nil {
		return handleServiceError(c, err, "billboards.get")
	}
	return c.Status(fiber.StatusOK).JSON(services.ProjectDetail(billboard, mediaResolver(c, h.Cfg), time.Now()))
}

// Create handles POST /api/billboards
// @Summary Create a billboard
// @Description Create a billboard; field-level validation errors return 400
// @Tags Billboards
// @Accept json
// @Produce json
// @Param billboard body services.BillboardInput true "Billboard payload"
// @Success 201 {object} services.BillboardDetail
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /billboards [post]
func (h *BillboardHandler) Create(c *fiber.Ctx) error {
	var in services.BillboardInput
	if err := c.BodyParser(&in); err != nil {
		return handleServiceError(c, types.NewValidationError(map[string]string{"body": err.Error()}), "billboards.create")
	}
	billboard, err := services.CreateBillboard(h.DB, &in)
	if err != nil {
		return handleServiceError(c, err, "billboards.create")
	}
	return c.Status(fiber.StatusCreated).JSON(services.ProjectDetail(billboard, mediaResolver(c, h.Cfg), time.Now()))
}

// Update handles PUT /api/billboards/:id
// @Summary Update a billboard
// @Description Full update of a billboard with the same validation as create
// @Tags Billboards
// @Accept json
// @Produce json
// @Param id path int true "Billboard id"
// @Param billboard body services.BillboardInput true "Billboard payload"
// @Success 200 {object} services.BillboardDetail
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /billboards/{id} [put]
func (h *BillboardHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "billboards.update")
	}
	var in services.BillboardInput
	if err := c.BodyParser(&in); err != nil {
		return handleServiceError(c, types.NewValidationError(map[string]string{"body": err.Error()}), "billboards.update")
	}
	billboard, err := services.UpdateBillboard(h.DB, id, &in)
	if err != nil {
		return handleServiceError(c, err, "billboards.update")
	}
	return c.Status(fiber.StatusOK).JSON(services.ProjectDetail(billboard, mediaResolver(c, h.Cfg), time.Now()))
}

// Delete handles DELETE /api/billboards/:id
// @Summary Delete a billboard
// @Description Delete a billboard, its images, and their stored assets
// @Tags Billboards
// @Produce json
// @Param id path int true "Billboard id"
// @Success 204 ""
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /billboards/{id} [delete]
func (h *BillboardHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "billboards.delete")
	}
	orphaned, err := services.DeleteBillboard(h.DB, id)
	if err != nil {
		return handleServiceError(c, err, "billboards.delete")
	}
	removeMediaAssets(h.Cfg, orphaned)
	return c.SendStatus(fiber.StatusNoContent)
}

// Statistics handles GET /api/billboards/statistics
// @Summary Billboard statistics
// @Description Status counts plus per-category and per-contractor breakdowns, filter-aware
// @Tags Billboards
// @Produce json
// @Success 200 {object} services.Statistics
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /billboards/statistics [get]
func (h *BillboardHandler) Statistics(c *fiber.Ctx) error {
	stats, err := services.ComputeStatistics(h.DB, filterFromQuery(c))
	if err != nil {
		return handleServiceError(c, err, "billboards.statistics")
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

// ExpiringSoon handles GET /api/billboards/expiring_soon
// @Summary Billboards expiring within 30 days
// @Description Active billboards whose end date falls within the next 30 days, current day included
// @Tags Billboards
// @Produce json
// @Success 200 {array} services.BillboardListItem
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /billboards/expiring_soon [get]
func (h *BillboardHandler) ExpiringSoon(c *fiber.Ctx) error {
	billboards, err := services.ExpiringSoon(h.DB, filterFromQuery(c), time.Now())
	if err != nil {
		return handleServiceError(c, err, "billboards.expiring_soon")
	}
	return c.Status(fiber.StatusOK).JSON(services.ProjectList(billboards, mediaResolver(c, h.Cfg)))
}

// ByCategory handles GET /api/billboards/by_category?category=...
// @Summary Billboards of one category
// @Description List billboards restricted to a category given by id or slug; the parameter is required
// @Tags Billboards
// @Produce json
// @Param category query string true "Category id or slug"
// @Success 200 {array} services.BillboardListItem
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /billboards/by_category [get]
func (h *BillboardHandler) ByCategory(c *fiber.Ctx) error {
	category := c.Query("category")
	if category == "" {
		return handleServiceError(c, types.NewMissingParameterError("category"), "billboards.by_category")
	}
	filter := filterFromQuery(c)
	filter.Category = category
	billboards, err := services.ListBillboards(h.DB, filter)
	if err != nil {
		return handleServiceError(c, err, "billboards.by_category")
	}
	return c.Status(fiber.StatusOK).JSON(services.ProjectList(billboards, mediaResolver(c, h.Cfg)))
}

// ByContractor handles GET /api/billboards/by_contractor?contractor=...
// @Summary Billboards of one contractor
// @Description List billboards restricted to a contractor given by id or name fragment; the parameter is required
// @Tags Billboards
// @Produce json
// @Param contractor query string true "Contractor id or name fragment"
// @Success 200 {array} services.BillboardListItem
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /billboards/by_contractor [get]
func (h *BillboardHandler) ByContractor(c *fiber.Ctx) error {
	contractor := c.Query("contractor")
	if contractor == "" {
		return handleServiceError(c, types.NewMissingParameterError("contractor"), "billboards.by_contractor")
	}
	filter := filterFromQuery(c)
	filter.Contractor = contractor
	billboards, err := services.ListBillboards(h.DB, filter)
	if err != nil {
		return handleServiceError(c, err, "billboards.by_contractor")
	}
	return c.Status(fiber.StatusOK).JSON(services.ProjectList(billboards, mediaResolver(c, h.Cfg)))
}
