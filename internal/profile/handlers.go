package profile

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/:username", authMiddleware, func(c *fiber.Ctx) error {
		p, err := svc.GetProfile(c.Context(), c.Params("username"), viewerID(c))
		if err != nil {
			if errors.Is(err, ErrPrivate) {
				return fiber.NewError(fiber.StatusForbidden, err.Error())
			}
			return fiber.NewError(fiber.StatusNotFound, "profile not found")
		}
		return c.JSON(p)
	})

	r.Put("/", authMiddleware, func(c *fiber.Ctx) error {
		var patch Profile
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		p, err := svc.UpdateProfile(c.Context(), viewerID(c), patch)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})

	r.Put("/privacy", authMiddleware, func(c *fiber.Ctx) error {
		var settings PrivacySettings
		if err := c.BodyParser(&settings); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.UpdatePrivacy(c.Context(), viewerID(c), settings); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(settings)
	})
}

func viewerID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
