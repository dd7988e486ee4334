package establishment

import (
	"strings"

	"mesa-backend/internal/auth"
	"mesa-backend/internal/config"
	"mesa-backend/internal/database"
	"mesa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Establishment struct {
		Name       string  `json:"name"`
		Document   string  `json:"document"`
		CEP        string  `json:"cep"`
		Address    string  `json:"address"`
		ServiceTax float64 `json:"service_tax"`
		LogoURL    string  `json:"logo_url"`
	} `json:"establishment"`
	Admin struct {
		Username string `json:"username"`
		Password string `json:"password"`
	} `json:"admin"`
}

type UpdateRequest struct {
	ServiceTax          *float64 `json:"service_tax"`
	ThemeBackground     *string  `json:"theme_background"`
	ThemeCardBackground *string  `json:"theme_card_background"`
	ThemeTextColor      *string  `json:"theme_text_color"`
	ThemePrimaryColor   *string  `json:"theme_primary_color"`
	ThemeAccentColor    *string  `json:"theme_accent_color"`
}

// POST /api/establishments
//
// Registers the establishment together with its first admin and returns a
// ready-to-use token, so the registration screen lands straight in the
// dashboard.
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Establishment.Name = strings.TrimSpace(body.Establishment.Name)
		body.Admin.Username = strings.TrimSpace(body.Admin.Username)
		if body.Establishment.Name == "" || body.Admin.Username == "" || body.Admin.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "establishment name, admin username and password are required")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not hash password")
		}

		estab := models.Establishment{
			Name:       body.Establishment.Name,
			Document:   body.Establishment.Document,
			CEP:        body.Establishment.CEP,
			Address:    body.Establishment.Address,
			ServiceTax: body.Establishment.ServiceTax,
			LogoURL:    body.Establishment.LogoURL,
		}
		var admin models.Admin

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&estab).Error; err != nil {
				return err
			}
			admin = models.Admin{
				EstablishmentID: estab.ID,
				Username:        body.Admin.Username,
				PasswordHash:    string(hash),
			}
			return tx.Create(&admin).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not register establishment")
		}

		token, err := auth.GenerateAdminToken(cfg.JWTSecret, admin.ID, estab.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not generate token")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"token":            token,
			"establishment_id": estab.ID,
			"establishment":    estab,
		})
	}
}

// GET /api/establishments/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no establishment")
		}

		var estab models.Establishment
		if err := database.DB.First(&estab, estabID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "establishment not found")
		}
		return c.JSON(estab)
	}
}

// PUT /api/establishments/me
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no establishment")
		}

		var body UpdateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		updates := map[string]any{}
		if body.ServiceTax != nil {
			updates["service_tax"] = *body.ServiceTax
		}
		if body.ThemeBackground != nil {
			updates["theme_background"] = *body.ThemeBackground
		}
		if body.ThemeCardBackground != nil {
			updates["theme_card_background"] = *body.ThemeCardBackground
		}
		if body.ThemeTextColor != nil {
			updates["theme_text_color"] = *body.ThemeTextColor
		}
		if body.ThemePrimaryColor != nil {
			updates["theme_primary_color"] = *body.ThemePrimaryColor
		}
		if body.ThemeAccentColor != nil {
			updates["theme_accent_color"] = *body.ThemeAccentColor
		}
		if len(updates) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
		}

		var estab models.Establishment
		if err := database.DB.First(&estab, estabID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "establishment not found")
		}
		if err := database.DB.Model(&estab).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update establishment")
		}
		return c.JSON(estab)
	}
}

// DELETE /api/establishments/:id
//
// Removes the establishment and everything it owns. Outside production the
// ownership check is skipped so local setups can be wiped with any token.
func DeleteHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid establishment id")
		}

		if cfg.IsProduction() {
			tokenEstab, ok := auth.EstablishmentFromContext(c)
			if !ok || tokenEstab != uint(id) {
				return fiber.NewError(fiber.StatusForbidden, "token does not own this establishment")
			}
		}

		var estab models.Establishment
		if err := database.DB.First(&estab, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "establishment not found")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			// Items first (owned through orders), then everything keyed by
			// establishment, children before parents.
			err := tx.Where("order_id IN (?)",
				tx.Model(&models.Order{}).Select("id").Where("establishment_id = ?", estab.ID),
			).Delete(&models.OrderItem{}).Error
			if err != nil {
				return err
			}
			for _, m := range []any{
				&models.Notification{}, &models.Review{}, &models.Closure{},
				&models.Order{}, &models.Table{}, &models.Product{},
				&models.Category{}, &models.Waiter{}, &models.Admin{},
			} {
				if err := tx.Where("establishment_id = ?", estab.ID).Delete(m).Error; err != nil {
					return err
				}
			}
			return tx.Delete(&estab).Error
		})
		if err != nil {
			log.Error().Err(err).Uint("establishment_id", estab.ID).Msg("cascade delete failed")
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete establishment")
		}

		return c.JSON(fiber.Map{"ok": true})
	}
}
