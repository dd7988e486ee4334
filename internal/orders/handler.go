package orders

import (
	"mesa-backend/internal/auth"
	"mesa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SubmitOrderRequest struct {
	EstablishmentID uint        `json:"establishment_id"`
	TableNumber     string      `json:"table_number"`
	Items           []ItemInput `json:"items"`
	WaiterID        *uint       `json:"waiter_id"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type SetStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// POST /api/orders
//
// Customer-facing: the establishment comes from the token when staff submit,
// otherwise from the body.
func SubmitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SubmitOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		estabID, ok := auth.EstablishmentFromContext(c)
		if !ok {
			estabID = body.EstablishmentID
		}
		if estabID == 0 || body.TableNumber == "" {
			return fiber.NewError(fiber.StatusBadRequest, "establishment_id and table_number are required")
		}

		waiterID := body.WaiterID
		if waiterID == nil {
			if id, isWaiter := auth.WaiterFromContext(c); isWaiter {
				waiterID = &id
			}
		}

		order, err := SubmitOrder(estabID, body.TableNumber, body.Items, waiterID)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(order)
	}
}

// PATCH /api/orders/items/:itemId
func UpdateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		itemID, err := c.ParamsInt("itemId")
		if err != nil || itemID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
		}

		var body SetQuantityRequest
		if err := c.BodyParser(&body); err != nil || body.Quantity == nil {
			return fiber.NewError(fiber.StatusBadRequest, "quantity is required")
		}

		order, err := SetItemQuantity(uint(itemID), *body.Quantity)
		if err != nil {
			return err
		}
		return c.JSON(order)
	}
}

// DELETE /api/orders/items/:itemId
func DeleteItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		itemID, err := c.ParamsInt("itemId")
		if err != nil || itemID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
		}

		order, err := SetItemQuantity(uint(itemID), 0)
		if err != nil {
			return err
		}
		return c.JSON(order)
	}
}

// PATCH /api/orders/:orderId/status
func UpdateStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID, err := c.ParamsInt("orderId")
		if err != nil || orderID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
		}

		var body SetStatusRequest
		if err := c.BodyParser(&body); err != nil || body.Status == "" {
			return fiber.NewError(fiber.StatusBadRequest, "status is required")
		}

		order, err := SetStatus(uint(orderID), body.Status)
		if err != nil {
			return err
		}
		return c.JSON(order)
	}
}
