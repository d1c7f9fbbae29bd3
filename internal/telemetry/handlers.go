package telemetry

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	r.Post("/analyze", authMiddleware, func(c *fiber.Ctx) error {
		data, err := trackBytes(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := Analyze(data)
		if err != nil {
			if errors.Is(err, ErrInvalidTrackFile) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(result)
	})
}

// trackBytes accepts either a multipart "track" file or a raw body upload.
func trackBytes(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("track")
	if err != nil {
		return c.Body(), nil
	}
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
