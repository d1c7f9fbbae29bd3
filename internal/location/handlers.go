package location

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Name string  `json:"name"`
			Lat  float64 `json:"lat"`
			Lng  float64 `json:"lng"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		loc, err := svc.SaveLocation(c.Context(), userID(c), body.Name, body.Lat, body.Lng)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(loc)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		locations, err := svc.Locations(c.Context(), userID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(locations)
	})

	r.Get("/nearby", authMiddleware, func(c *fiber.Ctx) error {
		lat, _ := strconv.ParseFloat(c.Query("lat"), 64)
		lng, _ := strconv.ParseFloat(c.Query("lng"), 64)
		radius, _ := strconv.ParseFloat(c.Query("radius_km"), 64)
		if radius == 0 {
			radius = 10
		}
		results, err := svc.Nearby(c.Context(), userID(c), lat, lng, radius)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(results)
	})

	r.Get("/reverse", func(c *fiber.Ctx) error {
		lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
		lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
		if latErr != nil || lngErr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng required")
		}
		place, err := svc.ReverseGeocode(c.Context(), lat, lng)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(place)
	})
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
