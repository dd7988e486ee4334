package reviews

import (
	"mesa-backend/internal/auth"
	"mesa-backend/internal/database"
	"mesa-backend/internal/models"
	"mesa-backend/internal/notify"

	"github.com/gofiber/fiber/v2"
)

type CreateReviewRequest struct {
	Stars           *int   `json:"stars"`
	Comment         string `json:"comment"`
	TableID         *uint  `json:"table_id"`
	OrderID         *uint  `json:"order_id"`
	EstablishmentID *uint  `json:"establishment_id"`
}

// POST /api/reviews
//
// Customer-facing, no token needed. Reviews are append-only.
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateReviewRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.Stars == nil || *body.Stars < 0 || *body.Stars > 5 {
			return fiber.NewError(fiber.StatusBadRequest, "stars must be between 0 and 5")
		}

		estabID := body.EstablishmentID
		if tokenEstab, ok := auth.EstablishmentFromContext(c); ok {
			estabID = &tokenEstab
		}

		review := models.Review{
			EstablishmentID: estabID,
			TableID:         body.TableID,
			OrderID:         body.OrderID,
			Stars:           *body.Stars,
			Comment:         body.Comment,
		}
		if err := database.DB.Create(&review).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create review")
		}

		if estabID != nil {
			notify.Emit(models.NotificationReviewCreated, models.Notification{
				EstablishmentID: *estabID,
				Type:            models.NotificationReviewCreated,
				TableID:         body.TableID,
				OrderID:         body.OrderID,
				Title:           "New review",
				Body:            review.Comment,
			}, review)
		}

		return c.Status(fiber.StatusCreated).JSON(review)
	}
}

// GET /api/reviews?establishment_id=1
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Review{})
		if estabID, ok := auth.EstablishmentFromContext(c); ok {
			q = q.Where("establishment_id = ?", estabID)
		} else if id := c.QueryInt("establishment_id"); id > 0 {
			q = q.Where("establishment_id = ?", id)
		}

		var list []models.Review
		if err := q.Order("created_at desc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list reviews")
		}
		return c.JSON(list)
	}
}
