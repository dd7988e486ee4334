package staff

import (
	"strings"

	"mesa-backend/internal/auth"
	"mesa-backend/internal/database"
	"mesa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type WaiterResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

type CreateWaiterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type UpdateWaiterRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Active   *bool   `json:"active"`
}

func toResponse(w models.Waiter) WaiterResponse {
	return WaiterResponse{
		ID:        w.ID,
		Name:      w.Name,
		Active:    w.Active,
		CreatedAt: w.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GET /api/waiters?establishment_id=1
//
// Public: the waiter login screen lists names before any token exists.
func ListWaitersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			estabID = uint(c.QueryInt("establishment_id"))
		}
		if estabID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "establishment_id is required")
		}

		var waiters []models.Waiter
		if err := database.DB.Where("establishment_id = ?", estabID).Order("name asc").Find(&waiters).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list waiters")
		}

		res := make([]WaiterResponse, 0, len(waiters))
		for _, w := range waiters {
			res = append(res, toResponse(w))
		}
		return c.JSON(res)
	}
}

// POST /api/waiters
func CreateWaiterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no establishment")
		}

		var body CreateWaiterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and password are required")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not hash password")
		}

		waiter := models.Waiter{
			EstablishmentID: estabID,
			Name:            body.Name,
			PasswordHash:    string(hash),
			Active:          true,
		}
		if err := database.DB.Create(&waiter).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create waiter")
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(waiter))
	}
}

// PUT /api/waiters/:id
func UpdateWaiterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no establishment")
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid waiter id")
		}

		var body UpdateWaiterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		var waiter models.Waiter
		if err := database.DB.First(&waiter, id).Error; err != nil || waiter.EstablishmentID != estabID {
			return fiber.NewError(fiber.StatusNotFound, "waiter not found")
		}

		if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
			waiter.Name = strings.TrimSpace(*body.Name)
		}
		if body.Active != nil {
			waiter.Active = *body.Active
		}
		if body.Password != nil && *body.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not hash password")
			}
			waiter.PasswordHash = string(hash)
		}

		if err := database.DB.Save(&waiter).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update waiter")
		}
		return c.JSON(toResponse(waiter))
	}
}

// DELETE /api/waiters/:id
func DeleteWaiterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no establishment")
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid waiter id")
		}

		var waiter models.Waiter
		if err := database.DB.First(&waiter, id).Error; err != nil || waiter.EstablishmentID != estabID {
			return fiber.NewError(fiber.StatusNotFound, "waiter not found")
		}

		if err := database.DB.Delete(&waiter).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete waiter")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}
