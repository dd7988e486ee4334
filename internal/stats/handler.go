package stats

import (
	"encoding/json"
	"time"

	"mesa-backend/internal/auth"
	"mesa-backend/internal/database"
	"mesa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func estabFromRequest(c *fiber.Ctx) (uint, error) {
	if id, ok := auth.EstablishmentFromContext(c); ok {
		return id, nil
	}
	if id := c.QueryInt("establishment_id"); id > 0 {
		return uint(id), nil
	}
	return 0, fiber.NewError(fiber.StatusBadRequest, "establishment_id is required")
}

// GET /api/stats/daily
func DailyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, err := estabFromRequest(c)
		if err != nil {
			return err
		}

		var estab models.Establishment
		if err := database.DB.First(&estab, estabID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "establishment not found")
		}

		w := DailyWindow(&estab)
		report, err := Compute(estabID, w.Start, w.End)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not compute stats")
		}
		return c.JSON(report)
	}
}

// GET /api/stats/period?start=ISO&end=ISO
func PeriodHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, err := estabFromRequest(c)
		if err != nil {
			return err
		}

		start, err1 := time.Parse(time.RFC3339, c.Query("start"))
		end, err2 := time.Parse(time.RFC3339, c.Query("end"))
		if err1 != nil || err2 != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start and end must be RFC3339 timestamps")
		}

		report, err := Compute(estabID, start, end)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not compute stats")
		}
		return c.JSON(report)
	}
}

type CloseDayRequest struct {
	Tables json.RawMessage `json:"tables"`
}

// POST /api/stats/close
//
// Seals the current period: stores a closure snapshot and moves the daily
// window forward by stamping LastClosureAt.
func CloseDayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no establishment")
		}

		var body CloseDayRequest
		_ = c.BodyParser(&body) // snapshot is optional

		now := time.Now()
		closure := models.Closure{
			EstablishmentID: estabID,
			ClosedAt:        now,
			Tables:          "null",
		}
		if len(body.Tables) > 0 {
			closure.Tables = string(body.Tables)
		}

		if err := database.DB.Create(&closure).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not record closure")
		}
		err := database.DB.Model(&models.Establishment{}).
			Where("id = ?", estabID).
			Update("last_closure_at", now).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update establishment")
		}

		return c.JSON(fiber.Map{"ok": true, "closure": closure})
	}
}

// GET /api/stats/closures
func ListClosuresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no establishment")
		}

		var closures []models.Closure
		err := database.DB.Where("establishment_id = ?", estabID).
			Order("closed_at desc").Find(&closures).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list closures")
		}
		return c.JSON(closures)
	}
}
