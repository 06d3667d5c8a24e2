package handlers

import (
	"pharmahub/internal/apperrors"
	"pharmahub/internal/dto"
	"pharmahub/internal/middleware"
	"pharmahub/internal/models"
	"pharmahub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	productService *services.ProductService
	imageService   *services.ImageService
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, imageService *services.ImageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		imageService:   imageService,
		validate:       newValidator(),
	}
}

// RegisterRoutes registers the product routes. Writes are admin only.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guards middleware.Guards) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", guards.Auth, guards.Admin, h.HandleCreateProduct)
	productRoutes.Put("/:id", guards.Auth, guards.Admin, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", guards.Auth, guards.Admin, h.HandleDeleteProduct)
	productRoutes.Put("/:id/detail", guards.Auth, guards.Admin, h.HandleUpsertDetail)
	productRoutes.Post("/:id/image", guards.Auth, guards.Admin, h.HandleUploadImage)
}

// HandleGetProducts lists active products, optionally filtered by ?category=<slug> and ?q=<text>.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	filter := models.ProductFilter{
		CategorySlug: c.Query("category"),
		Search:       c.Query("q"),
		ActiveOnly:   true,
	}
	products, err := h.productService.GetAllProducts(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.FromProducts(products)))
}

// HandleGetProductByID retrieves a single product with its detail.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.productService.GetProductByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.FromProduct(*product)))
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	product := req.ToModel(0)
	if err := h.productService.CreateProduct(c.UserContext(), product); err != nil {
		return err
	}

	log.WithField("product_id", product.ID).Info("Product created")
	return c.Status(fiber.StatusCreated).JSON(dto.Message("Product created", dto.FromProduct(*product)))
}

// HandleUpdateProduct replaces an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ProductRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	product := req.ToModel(id)
	if err := h.productService.UpdateProduct(c.UserContext(), product); err != nil {
		return err
	}
	return c.JSON(dto.Message("Product updated", dto.FromProduct(*product)))
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.productService.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.Message("Product deleted", nil))
}

// HandleUpsertDetail sets the pharmaceutical detail of a product.
func (h *ProductHandler) HandleUpsertDetail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ProductDetailRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	detail := req.ToModel()
	if err := h.productService.UpsertDetail(c.UserContext(), id, detail); err != nil {
		return err
	}
	product, err := h.productService.GetProductByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.Message("Product detail saved", dto.FromProduct(*product)))
}

// HandleUploadImage accepts a multipart "image" field, resizes it and attaches it to the product.
func (h *ProductHandler) HandleUploadImage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.productService.GetProductByID(c.UserContext(), id); err != nil {
		return err
	}

	header, err := c.FormFile("image")
	if err != nil {
		return apperrors.ValidationFields("Image is required", map[string]string{"image": "multipart field 'image' is required"})
	}
	file, err := header.Open()
	if err != nil {
		return apperrors.Validation("could not read uploaded image: %v", err)
	}
	defer file.Close()

	url, err := h.imageService.Store(file)
	if err != nil {
		return err
	}
	if err := h.productService.SetImage(c.UserContext(), id, url); err != nil {
		return err
	}

	product, err := h.productService.GetProductByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.Message("Product image uploaded", dto.FromProduct(*product)))
}
