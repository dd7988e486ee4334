package catalog

import (
	"strings"

	"mesa-backend/internal/auth"
	"mesa-backend/internal/database"
	"mesa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CategoryRequest struct {
	Name string `json:"name"`
}

// GET /api/categories?establishment_id=1
//
// Public: the customer menu view loads categories without a token.
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			estabID = uint(c.QueryInt("establishment_id"))
		}
		if estabID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "establishment_id is required")
		}

		var categories []models.Category
		if err := database.DB.Where("establishment_id = ?", estabID).Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list categories")
		}
		return c.JSON(categories)
	}
}

// POST /api/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no establishment")
		}

		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		category := models.Category{EstablishmentID: estabID, Name: body.Name}
		if err := database.DB.Create(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create category")
		}
		return c.Status(fiber.StatusCreated).JSON(category)
	}
}

// PUT /api/categories/:id
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no establishment")
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid category id")
		}

		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		var category models.Category
		if err := database.DB.First(&category, id).Error; err != nil || category.EstablishmentID != estabID {
			return fiber.NewError(fiber.StatusNotFound, "category not found")
		}

		category.Name = strings.TrimSpace(body.Name)
		if err := database.DB.Save(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update category")
		}
		return c.JSON(category)
	}
}

// DELETE /api/categories/:id
//
// Products keep working without a category; the reference is just cleared.
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no establishment")
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid category id")
		}

		var category models.Category
		if err := database.DB.First(&category, id).Error; err != nil || category.EstablishmentID != estabID {
			return fiber.NewError(fiber.StatusNotFound, "category not found")
		}

		err = database.DB.Model(&models.Product{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not detach products")
		}
		if err := database.DB.Delete(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete category")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}
