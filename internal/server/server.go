package server

import (
	"strings"

	"mesa-backend/internal/auth"
	"mesa-backend/internal/catalog"
	"mesa-backend/internal/config"
	"mesa-backend/internal/establishment"
	"mesa-backend/internal/notify"
	"mesa-backend/internal/orders"
	"mesa-backend/internal/reviews"
	"mesa-backend/internal/staff"
	"mesa-backend/internal/stats"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"
)

// New builds the fiber app with every route registered. The caller owns the
// listener.
func New(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("unexpected error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Customer-facing routes work without a token; when one is present it
	// scopes the request to its establishment.
	api.Use(auth.Optional(cfg))

	// Registration and logins
	api.Post("/establishments", establishment.RegisterHandler(cfg))
	api.Post("/auth/admin", auth.AdminLoginHandler(cfg))
	api.Post("/auth/waiter", auth.WaiterLoginHandler(cfg))

	// Public menu and table surface
	api.Get("/categories", catalog.ListCategoriesHandler())
	api.Get("/products", catalog.ListProductsHandler())
	api.Get("/waiters", staff.ListWaitersHandler())
	api.Get("/tables", orders.ListTablesHandler())
	api.Post("/tables", orders.OpenTableHandler())
	api.Post("/tables/:idOrNumber/close", orders.CloseTableHandler())
	api.Post("/tables/:idOrNumber/call-waiter", orders.CallWaiterHandler())
	api.Post("/orders", orders.SubmitHandler())
	api.Patch("/orders/items/:itemId", orders.UpdateItemHandler())
	api.Delete("/orders/items/:itemId", orders.DeleteItemHandler())
	api.Patch("/orders/:orderId/status", orders.UpdateStatusHandler())
	api.Post("/reviews", reviews.CreateHandler())
	api.Get("/notifications/stream", notify.StreamHandler())
	api.Get("/notifications", notify.ListHandler())
	api.Post("/notifications/:id/ack", notify.AckHandler())

	// Staff-only routes
	protected := api.Group("", auth.Required(cfg))
	protected.Get("/establishments/me", establishment.MeHandler())
	protected.Put("/establishments/me", establishment.UpdateHandler())
	protected.Delete("/establishments/:id", establishment.DeleteHandler(cfg))
	protected.Post("/categories", catalog.CreateCategoryHandler())
	protected.Put("/categories/:id", catalog.UpdateCategoryHandler())
	protected.Delete("/categories/:id", catalog.DeleteCategoryHandler())
	protected.Post("/products", catalog.CreateProductHandler())
	protected.Put("/products/:id", catalog.UpdateProductHandler())
	protected.Delete("/products/:id", catalog.DeleteProductHandler())
	protected.Post("/products/upload", catalog.UploadImageHandler(cfg))
	protected.Post("/waiters", staff.CreateWaiterHandler())
	protected.Put("/waiters/:id", staff.UpdateWaiterHandler())
	protected.Delete("/waiters/:id", staff.DeleteWaiterHandler())
	protected.Get("/reviews", reviews.ListHandler())
	protected.Get("/stats/daily", stats.DailyHandler())
	protected.Get("/stats/period", stats.PeriodHandler())
	protected.Post("/stats/close", stats.CloseDayHandler())
	protected.Get("/stats/closures", stats.ListClosuresHandler())

	return app
}
