package trip

import (
	"errors"
	"io"
	"strconv"

	"backend-contravento/internal/telemetry"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Trip
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		req.CreatedBy = userID(c)
		if req.Title == "" || req.CreatedBy == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title required")
		}
		trip, err := svc.CreateTrip(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(trip)
	})

	// Wizard: upload a track file, get back a trip prefilled from telemetry.
	r.Post("/wizard", authMiddleware, func(c *fiber.Ctx) error {
		data, err := trackBytes(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		trip, result, err := svc.CreateFromTrack(c.Context(), userID(c), c.FormValue("title"), c.FormValue("visibility"), data)
		if err != nil {
			if errors.Is(err, telemetry.ErrInvalidTrackFile) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"trip": trip, "telemetry": result})
	})

	r.Get("/feed", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		trips, err := svc.PublicFeed(c.Context(), limit, offset)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(trips)
	})

	r.Get("/feed/following", authMiddleware, func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		trips, err := svc.FollowingFeed(c.Context(), userID(c), limit, offset)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(trips)
	})

	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		trip, err := svc.GetTrip(c.Context(), c.Params("id"), userID(c))
		if err != nil {
			if errors.Is(err, ErrForbidden) {
				return fiber.NewError(fiber.StatusForbidden, err.Error())
			}
			return fiber.NewError(fiber.StatusNotFound, "trip not found")
		}
		return c.JSON(trip)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Trip
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		trip, err := svc.UpdateTrip(c.Context(), c.Params("id"), userID(c), req)
		if err != nil {
			if errors.Is(err, ErrForbidden) {
				return fiber.NewError(fiber.StatusForbidden, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(trip)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.DeleteTrip(c.Context(), c.Params("id"), userID(c)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/:id/photos", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			PhotoURL string `json:"photo_url"`
			Caption  string `json:"caption"`
		}
		if err := c.BodyParser(&body); err != nil || body.PhotoURL == "" {
			return fiber.NewError(fiber.StatusBadRequest, "photo_url required")
		}
		photo, err := svc.AddPhoto(c.Context(), c.Params("id"), body.PhotoURL, body.Caption)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(photo)
	})

	r.Get("/:id/photos", func(c *fiber.Ctx) error {
		photos, err := svc.Photos(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(photos)
	})

	r.Get("/:id/routes", func(c *fiber.Ctx) error {
		routes, err := svc.Routes(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(routes)
	})
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

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
