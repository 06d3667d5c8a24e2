package handlers

import (
	"pharmahub/internal/dto"
	"pharmahub/internal/middleware"
	"pharmahub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for product categories.
type CategoryHandler struct {
	categoryService *services.CategoryService
	validate        *validator.Validate
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validate:        newValidator(),
	}
}

func (h *CategoryHandler) RegisterRoutes(router fiber.Router, guards middleware.Guards) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:ref", h.HandleGetCategory)
	categoryRoutes.Post("/", guards.Auth, guards.Admin, h.HandleCreateCategory)
	categoryRoutes.Put("/:id", guards.Auth, guards.Admin, h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", guards.Auth, guards.Admin, h.HandleDeleteCategory)
}

func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.GetAllCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.FromCategories(categories)))
}

// HandleGetCategory accepts either a numeric id or a slug.
func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	category, err := h.categoryService.GetCategory(c.UserContext(), c.Params("ref"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.FromCategory(*category)))
}

func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	category := req.ToModel(0)
	if err := h.categoryService.CreateCategory(c.UserContext(), category); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Message("Category created", dto.FromCategory(*category)))
}

func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CategoryRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}
	category := req.ToModel(id)
	if err := h.categoryService.UpdateCategory(c.UserContext(), category); err != nil {
		return err
	}
	return c.JSON(dto.Message("Category updated", dto.FromCategory(*category)))
}

func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.categoryService.DeleteCategory(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.Message("Category deleted", nil))
}
