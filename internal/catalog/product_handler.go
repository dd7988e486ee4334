package catalog

import (
	"strings"

	"mesa-backend/internal/auth"
	"mesa-backend/internal/database"
	"mesa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	CategoryID  *uint   `json:"category_id"`
	ImageURL    string  `json:"image_url"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	CategoryID  *uint    `json:"category_id"`
	ImageURL    *string  `json:"image_url"`
}

// GET /api/products?establishment_id=1
//
// Public: the table-scoped menu view loads this without a token.
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			estabID = uint(c.QueryInt("establishment_id"))
		}
		if estabID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "establishment_id is required")
		}

		var products []models.Product
		err := database.DB.Where("establishment_id = ?", estabID).
			Preload("Category").Order("name asc").Find(&products).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list products")
		}
		return c.JSON(products)
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no establishment")
		}

		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "name and a non-negative price are required")
		}
		if body.CategoryID != nil {
			var category models.Category
			if err := database.DB.First(&category, *body.CategoryID).Error; err != nil || category.EstablishmentID != estabID {
				return fiber.NewError(fiber.StatusBadRequest, "category does not belong to this establishment")
			}
		}

		product := models.Product{
			EstablishmentID: estabID,
			CategoryID:      body.CategoryID,
			Name:            body.Name,
			Price:           body.Price,
			Description:     body.Description,
			ImageURL:        body.ImageURL,
		}
		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create product")
		}
		return c.Status(fiber.StatusCreated).JSON(product)
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no establishment")
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		var product models.Product
		if err := database.DB.First(&product, id).Error; err != nil || product.EstablishmentID != estabID {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			product.Name = name
		}
		if body.Price != nil {
			if *body.Price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "price cannot be negative")
			}
			product.Price = *body.Price
		}
		if body.Description != nil {
			product.Description = *body.Description
		}
		if body.ImageURL != nil {
			product.ImageURL = *body.ImageURL
		}
		if body.CategoryID != nil {
			var category models.Category
			if err := database.DB.First(&category, *body.CategoryID).Error; err != nil || category.EstablishmentID != estabID {
				return fiber.NewError(fiber.StatusBadRequest, "category does not belong to this establishment")
			}
			product.CategoryID = body.CategoryID
		}

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update product")
		}
		return c.JSON(product)
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no establishment")
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
		}

		var product models.Product
		if err := database.DB.First(&product, id).Error; err != nil || product.EstablishmentID != estabID {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}

		if err := database.DB.Delete(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete product")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}
