package orders

import (
	"mesa-backend/internal/auth"
	"mesa-backend/internal/database"
	"mesa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type OpenTableRequest struct {
	EstablishmentID uint   `json:"establishment_id"`
	Number          string `json:"number"`
}

type CloseTableRequest struct {
	EstablishmentID uint `json:"establishment_id"`
	ServiceFeePaid  bool `json:"service_fee_paid"`
}

type CallWaiterRequest struct {
	EstablishmentID uint `json:"establishment_id"`
}

type CloseTableResponse struct {
	Total          float64 `json:"total"`
	ServiceFeePaid bool    `json:"service_fee_paid"`
}

func estabFromRequest(c *fiber.Ctx, bodyID uint) uint {
	if id, ok := auth.EstablishmentFromContext(c); ok {
		return id
	}
	if bodyID != 0 {
		return bodyID
	}
	return uint(c.QueryInt("establishment_id"))
}

// GET /api/tables?establishment_id=1&open=true
func ListTablesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		estabID := estabFromRequest(c, 0)
		if estabID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "establishment_id is required")
		}

		q := database.DB.Where("establishment_id = ?", estabID)
		if openStr := c.Query("open"); openStr != "" {
			q = q.Where("open = ?", openStr == "true")
		}

		var tables []models.Table
		if err := q.Preload("Orders.Items").Order("id asc").Find(&tables).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list tables")
		}
		return c.JSON(tables)
	}
}

// POST /api/tables
func OpenTableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OpenTableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		estabID := estabFromRequest(c, body.EstablishmentID)
		if estabID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "establishment_id is required")
		}

		table, err := OpenTable(estabID, body.Number)
		if err != nil {
			return err
		}
		return c.JSON(table)
	}
}

// POST /api/tables/:idOrNumber/close
func CloseTableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CloseTableRequest
		_ = c.BodyParser(&body) // body may be empty: fee unpaid, estab from token

		table, err := ResolveTable(c.Params("idOrNumber"), estabFromRequest(c, body.EstablishmentID))
		if err != nil {
			return err
		}

		// A session scoped to another establishment may not close this table.
		if tokenEstab, ok := auth.EstablishmentFromContext(c); ok && tokenEstab != table.EstablishmentID {
			return fiber.NewError(fiber.StatusForbidden, "table belongs to another establishment")
		}

		total, err := CloseTable(table, body.ServiceFeePaid)
		if err != nil {
			return err
		}
		return c.JSON(CloseTableResponse{Total: total, ServiceFeePaid: body.ServiceFeePaid})
	}
}

// POST /api/tables/:idOrNumber/call-waiter
func CallWaiterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CallWaiterRequest
		_ = c.BodyParser(&body)

		table, err := ResolveTable(c.Params("idOrNumber"), estabFromRequest(c, body.EstablishmentID))
		if err != nil {
			return err
		}

		CallWaiter(table)
		return c.JSON(fiber.Map{"ok": true})
	}
}
