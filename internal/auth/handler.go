package auth

import (
	"mesa-backend/internal/config"
	"mesa-backend/internal/database"
	"mesa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type WaiterLoginRequest struct {
	Name            string `json:"name"`
	Password        string `json:"password"`
	EstablishmentID uint   `json:"establishment_id"`
}

// POST /api/auth/admin
func AdminLoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AdminLoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		var admin models.Admin
		if err := database.DB.Where("username = ?", body.Username).First(&admin).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}

		token, err := GenerateAdminToken(cfg.JWTSecret, admin.ID, admin.EstablishmentID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not generate token")
		}

		return c.JSON(fiber.Map{
			"token":            token,
			"establishment_id": admin.EstablishmentID,
		})
	}
}

// POST /api/auth/waiter
func WaiterLoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body WaiterLoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		var waiter models.Waiter
		err := database.DB.
			Where("name = ? AND establishment_id = ?", body.Name, body.EstablishmentID).
			First(&waiter).Error
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		if !waiter.Active {
			return fiber.NewError(fiber.StatusUnauthorized, "waiter is disabled")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(waiter.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}

		token, err := GenerateWaiterToken(cfg.JWTSecret, waiter.ID, waiter.EstablishmentID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not generate token")
		}

		return c.JSON(fiber.Map{
			"token":            token,
			"establishment_id": waiter.EstablishmentID,
			"waiter_id":        waiter.ID,
		})
	}
}
