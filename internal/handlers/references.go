package handlers

import (
	"github.com/asg0d/billboards-live/internal/config"
	"github.com/asg0d/billboards-live/internal/models"
	"github.com/asg0d/billboards-live/internal/services"
	"github.com/asg0d/billboards-live/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReferenceHandler handles employee, category, and contractor routes.
// Reads are public; mutations are mounted behind the admin middleware.
type ReferenceHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func parseBody[T any](c *fiber.Ctx, errorType string) (*T, error) {
	var in T
	if err := c.BodyParser(&in); err != nil {
		return nil, handleServiceError(c, types.NewValidationError(map[string]string{"body": err.Error()}), errorType)
	}
	return &in, nil
}

// ListEmployees handles GET /api/employees
// @Summary List employees
// @Description Active employees ordered by name
// @Tags References
// @Produce json
// @Success 200 {array} services.EmployeeSummary
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /employees [get]
func (h *ReferenceHandler) ListEmployees(c *fiber.Ctx) error {
	employees, err := services.ListEmployees(h.DB)
	if err != nil {
		return handleServiceError(c, err, "employees.list")
	}
	return c.Status(fiber.StatusOK).JSON(services.ProjectEmployees(employees))
}

// GetEmployee handles GET /api/employees/:id
// @Summary Get an employee
// @Tags References
// @Produce json
// @Param id path int true "Employee id"
// @Success 200 {object} services.EmployeeSummary
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /employees/{id} [get]
func (h *ReferenceHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "employees.get")
	}
	employee, err := services.GetEmployee(h.DB, id)
	if err != nil {
		return handleServiceError(c, err, "employees.get")
	}
	return c.Status(fiber.StatusOK).JSON(services.ProjectEmployees([]models.Employee{*employee})[0])
}

// CreateEmployee handles POST /api/employees
// @Summary Create an employee
// @Tags References
// @Accept json
// @Produce json
// @Param employee body services.EmployeeInput true "Employee payload"
// @Success 201 {object} models.Employee
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /employees [post]
func (h *ReferenceHandler) CreateEmployee(c *fiber.Ctx) error {
	in, err := parseBody[services.EmployeeInput](c, "employees.create")
	if in == nil {
		return err
	}
	employee, err := services.CreateEmployee(h.DB, in)
	if err != nil {
		return handleServiceError(c, err, "employees.create")
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

// UpdateEmployee handles PUT /api/employees/:id
// @Summary Update an employee
// @Tags References
// @Accept json
// @Produce json
// @Param id path int true "Employee id"
// @Param employee body services.EmployeeInput true "Employee payload"
// @Success 200 {object} models.Employee
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /employees/{id} [put]
func (h *ReferenceHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "employees.update")
	}
	in, err := parseBody[services.EmployeeInput](c, "employees.update")
	if in == nil {
		return err
	}
	employee, err := services.UpdateEmployee(h.DB, id, in)
	if err != nil {
		return handleServiceError(c, err, "employees.update")
	}
	return c.Status(fiber.StatusOK).JSON(employee)
}

// DeleteEmployee handles DELETE /api/employees/:id
// @Summary Delete an employee
// @Description Delete an employee and cascade to its billboards and their images
// @Tags References
// @Produce json
// @Param id path int true "Employee id"
// @Success 204 ""
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /employees/{id} [delete]
func (h *ReferenceHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "employees.delete")
	}
	orphaned, err := services.DeleteEmployee(h.DB, id)
	if err != nil {
		return handleServiceError(c, err, "employees.delete")
	}
	removeMediaAssets(h.Cfg, orphaned)
	return c.SendStatus(fiber.StatusNoContent)
}

// ListCategories handles GET /api/categories
// @Summary List categories
// @Description Active categories in display order, with live billboard counts
// @Tags References
// @Produce json
// @Success 200 {array} services.CategorySummary
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /categories [get]
func (h *ReferenceHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := services.ListCategories(h.DB)
	if err != nil {
		return handleServiceError(c, err, "categories.list")
	}
	counts, err := services.CategoryBillboardCounts(h.DB)
	if err != nil {
		return handleServiceError(c, err, "categories.list")
	}
	return c.Status(fiber.StatusOK).JSON(services.ProjectCategories(categories, counts))
}

// GetCategory handles GET /api/categories/:id
// @Summary Get a category
// @Tags References
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} services.CategorySummary
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /categories/{id} [get]
func (h *ReferenceHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "categories.get")
	}
	category, err := services.GetCategory(h.DB, id)
	if err != nil {
		return handleServiceError(c, err, "categories.get")
	}
	counts, err := services.CategoryBillboardCounts(h.DB)
	if err != nil {
		return handleServiceError(c, err, "categories.get")
	}
	return c.Status(fiber.StatusOK).JSON(services.ProjectCategories([]models.Category{*category}, counts)[0])
}

// CreateCategory handles POST /api/categories
// @Summary Create a category
// @Tags References
// @Accept json
// @Produce json
// @Param category body services.CategoryInput true "Category payload"
// @Success 201 {object} models.Category
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /categories [post]
func (h *ReferenceHandler) CreateCategory(c *fiber.Ctx) error {
	in, err := parseBody[services.CategoryInput](c, "categories.create")
	if in == nil {
		return err
	}
	category, err := services.CreateCategory(h.DB, in)
	if err != nil {
		return handleServiceError(c, err, "categories.create")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory handles PUT /api/categories/:id
// @Summary Update a category
// @Tags References
// @Accept json
// @Produce json
// @Param id path int true "Category id"
// @Param category body services.CategoryInput true "Category payload"
// @Success 200 {object} models.Category
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /categories/{id} [put]
func (h *ReferenceHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "categories.update")
	}
	in, err := parseBody[services.CategoryInput](c, "categories.update")
	if in == nil {
		return err
	}
	category, err := services.UpdateCategory(h.DB, id, in)
	if err != nil {
		return handleServiceError(c, err, "categories.update")
	}
	return c.Status(fiber.StatusOK).JSON(category)
}

// DeleteCategory handles DELETE /api/categories/:id
// @Summary Delete a category
// @Description Delete a category and cascade to its billboards and their images
// @Tags References
// @Produce json
// @Param id path int true "Category id"
// @Success 204 ""
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /categories/{id} [delete]
func (h *ReferenceHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "categories.delete")
	}
	orphaned, err := services.DeleteCategory(h.DB, id)
	if err != nil {
		return handleServiceError(c, err, "categories.delete")
	}
	removeMediaAssets(h.Cfg, orphaned)
	return c.SendStatus(fiber.StatusNoContent)
}

// ListContractors handles GET /api/contractors
// @Summary List contractors
// @Description Active contractors ordered by name, with billboard counts and display contacts
// @Tags References
// @Produce json
// @Success 200 {array} services.ContractorSummary
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /contractors [get]
func (h *ReferenceHandler) ListContractors(c *fiber.Ctx) error {
	contractors, err := services.ListContractors(h.DB)
	if err != nil {
		return handleServiceError(c, err, "contractors.list")
	}
	counts, err := services.ContractorBillboardCounts(h.DB)
	if err != nil {
		return handleServiceError(c, err, "contractors.list")
	}
	return c.Status(fiber.StatusOK).JSON(services.ProjectContractors(contractors, counts))
}

// GetContractor handles GET /api/contractors/:id
// @Summary Get a contractor
// @Tags References
// @Produce json
// @Param id path int true "Contractor id"
// @Success 200 {object} services.ContractorSummary
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contractors/{id} [get]
func (h *ReferenceHandler) GetContractor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "contractors.get")
	}
	contractor, err := services.GetContractor(h.DB, id)
	if err != nil {
		return handleServiceError(c, err, "contractors.get")
	}
	counts, err := services.ContractorBillboardCounts(h.DB)
	if err != nil {
		return handleServiceError(c, err, "contractors.get")
	}
	return c.Status(fiber.StatusOK).JSON(services.ProjectContractors([]models.Contractor{*contractor}, counts)[0])
}

// CreateContractor handles POST /api/contractors
// @Summary Create a contractor
// @Tags References
// @Accept json
// @Produce json
// @Param contractor body services.ContractorInput true "Contractor payload"
// @Success 201 {object} models.Contractor
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /contractors [post]
func (h *ReferenceHandler) CreateContractor(c *fiber.Ctx) error {
	in, err := parseBody[services.ContractorInput](c, "contractors.create")
	if in == nil {
		return err
	}
	contractor, err := services.CreateContractor(h.DB, in)
	if err != nil {
		return handleServiceError(c, err, "contractors.create")
	}
	return c.Status(fiber.StatusCreated).JSON(contractor)
}

// UpdateContractor handles PUT /api/contractors/:id
// @Summary Update a contractor
// @Tags References
// @Accept json
// @Produce json
// @Param id path int true "Contractor id"
// @Param contractor body services.ContractorInput true "Contractor payload"
// @Success 200 {object} models.Contractor
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contractors/{id} [put]
func (h *ReferenceHandler) UpdateContractor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "contractors.update")
	}
	in, err := parseBody[services.ContractorInput](c, "contractors.update")
	if in == nil {
		return err
	}
	contractor, err := services.UpdateContractor(h.DB, id, in)
	if err != nil {
		return handleServiceError(c, err, "contractors.update")
	}
	return c.Status(fiber.StatusOK).JSON(contractor)
}

// DeleteContractor handles DELETE /api/contractors/:id
// @Summary Delete a contractor
// @Description Delete a contractor and cascade to its billboards and their images
// @Tags References
// @Produce json
// @Param id path int true "Contractor id"
// @Success 204 ""
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contractors/{id} [delete]
func (h *ReferenceHandler) DeleteContractor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return handleServiceError(c, err, "contractors.delete")
	}
	orphaned, err := services.DeleteContractor(h.DB, id)
	if err != nil {
		return handleServiceError(c, err, "contractors.delete")
	}
	removeMediaAssets(h.Cfg, orphaned)
	return c.SendStatus(fiber.StatusNoContent)
}
