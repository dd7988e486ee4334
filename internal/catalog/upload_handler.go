package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mesa-backend/internal/auth"
	"mesa-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// POST /api/products/upload
//
// Stores the image under ProductImagePath with a random name and returns the
// URL to put on a product.
func UploadImageHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := auth.EstablishmentFromContext(c); !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token has no establishment")
		}

		file, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file is required")
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExt[ext] {
			return fiber.NewError(fiber.StatusBadRequest, "only jpg, jpeg, png and webp images are accepted")
		}

		if err := os.MkdirAll(cfg.ProductImagePath, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not prepare image directory")
		}

		name := uuid.NewString() + ext
		if err := c.SaveFile(file, filepath.Join(cfg.ProductImagePath, name)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not store image")
		}

		return c.JSON(fiber.Map{"image_url": fmt.Sprintf("/product-images/%s", name)})
	}
}
