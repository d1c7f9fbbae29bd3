package social

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/follow", authMiddleware, func(c *fiber.Ctx) error {
		var req Follow
		if err := c.BodyParser(&req); err != nil || req.FollowingID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "following_id required")
		}
		if err := svc.Follow(c.Context(), followerID(c), req.FollowingID); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.SendStatus(fiber.StatusCreated)
	})

	r.Delete("/follow/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Unfollow(c.Context(), followerID(c), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/users/:id/followers", func(c *fiber.Ctx) error {
		users, err := svc.Followers(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(users)
	})

	r.Get("/users/:id/following", func(c *fiber.Ctx) error {
		users, err := svc.Following(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(users)
	})

	r.Get("/users/:id/counts", func(c *fiber.Ctx) error {
		counts, err := svc.Counts(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(counts)
	})
}

func followerID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
