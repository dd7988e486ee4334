package notify

import (
	"bufio"
	"fmt"
	"time"

	"mesa-backend/internal/auth"
	"mesa-backend/internal/database"
	"mesa-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// pingInterval bounds how long a dead client can hold a hub slot when no
// events are flowing: the write error surfaces on the next ping at the latest.
var pingInterval = 30 * time.Second

// GET /api/notifications/stream
//
// Long-lived SSE connection. The stream stays open until the client
// disconnects; events are whatever the hub broadcasts after the connection
// was established.
func StreamHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")

		sub := hub.Register()

		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			defer hub.Unregister(sub)

			fmt.Fprint(w, ": connected\n\n")
			if err := w.Flush(); err != nil {
				return
			}

			ticker := time.NewTicker(pingInterval)
			defer ticker.Stop()

			for {
				select {
				case msg, ok := <-sub.C:
					if !ok {
						return
					}
					if _, err := w.Write(msg); err != nil {
						return
					}
					if err := w.Flush(); err != nil {
						return
					}
				case <-ticker.C:
					fmt.Fprint(w, ": ping\n\n")
					if err := w.Flush(); err != nil {
						return
					}
				}
			}
		}))

		return nil
	}
}

// GET /api/notifications?establishment_id=1
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Notification{})

		if estabID, ok := auth.EstablishmentFromContext(c); ok {
			q = q.Where("establishment_id = ?", estabID)
		} else if id := c.QueryInt("establishment_id"); id > 0 {
			q = q.Where("establishment_id = ?", id)
		}

		var notifs []models.Notification
		if err := q.Order("created_at desc").Find(&notifs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list notifications")
		}
		return c.JSON(notifs)
	}
}

type AckRequest struct {
	WaiterID *uint `json:"waiter_id"`
}

// POST /api/notifications/:id/ack
//
// Marks a notification as attended. Idempotent: acking an already-attended
// notification keeps the first attendance.
func AckHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid notification id")
		}

		var body AckRequest
		_ = c.BodyParser(&body) // body is optional

		var notif models.Notification
		if err := database.DB.First(&notif, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "notification not found")
		}

		if !notif.Attended {
			now := time.Now()
			notif.Attended = true
			notif.AttendedAt = &now
			if body.WaiterID != nil {
				notif.AttendedByWaiterID = body.WaiterID
			} else if waiterID, ok := auth.WaiterFromContext(c); ok {
				notif.AttendedByWaiterID = &waiterID
			}
			if err := database.DB.Save(&notif).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not update notification")
			}
		}

		return c.JSON(notif)
	}
}
