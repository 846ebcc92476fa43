package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/saferoute/internal/core/domain"
)

// queryPoint reads a required coordinate pair from the query string.
func queryPoint(c *fiber.Ctx, latKey, lonKey string) (domain.GeoPoint, error) {
	latStr, lonStr := c.Query(latKey), c.Query(lonKey)
	if latStr == "" || lonStr == "" {
		return domain.GeoPoint{}, fmt.Errorf("%s and %s are required", latKey, lonKey)
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("%s must be a number", latKey)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("%s must be a number", lonKey)
	}
	return domain.GeoPoint{Lat: lat, Lon: lon}, nil
}

func pointName(name string, p domain.GeoPoint) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return fmt.Sprintf("%.5f, %.5f", p.Lat, p.Lon)
}

// SafeRoutesHandler ranks routes between two points by safety.
func SafeRoutesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := queryPoint(c, "from_lat", "from_lon")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		to, err := queryPoint(c, "to_lat", "to_lon")
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		origin := domain.Location{GeoPoint: from, Name: pointName(c.Query("from_name"), from)}
		destination := domain.Location{GeoPoint: to, Name: pointName(c.Query("to_name"), to)}

		plan, err := deps.SafeRoutes.Plan(c.UserContext(), origin, destination)
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(plan)
	}
}

// ZonesHandler returns synthesised safety zones around a map centre.
func ZonesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		center, err := queryPoint(c, "lat", "lon")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		zones, err := deps.Zones.Around(center, c.QueryInt("count", 0))
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(zones)
	}
}

// GeocodeSearchHandler resolves a free-text address.
func GeocodeSearchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if len(query) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}

		places, err := deps.Geocode.Search(c.UserContext(), query)
		if err != nil {
			LoggerFromCtx(c.UserContext()).Warn("geocode search failed", "error", err)
			return errBadGateway(c, "geocoding service unavailable")
		}
		return c.JSON(places)
	}
}

// GeocodeReverseHandler names the place at a coordinate.
func GeocodeReverseHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := queryPoint(c, "lat", "lon")
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		name, err := deps.Geocode.Reverse(c.UserContext(), p)
		if err != nil {
			if isClientError(err) {
				return errFromService(c, err)
			}
			LoggerFromCtx(c.UserContext()).Warn("reverse geocode failed", "error", err)
			return errBadGateway(c, "geocoding service unavailable")
		}
		return c.JSON(fiber.Map{"location": p, "display_name": name})
	}
}

type contactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PutContactHandler sets a user's emergency contact.
func PutContactHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req contactRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		contact := &domain.EmergencyContact{
			UserID: c.Params("id"),
			Name:   strings.TrimSpace(req.Name),
			Phone:  strings.TrimSpace(req.Phone),
		}
		if err := deps.SOS.SetContact(c.UserContext(), contact); err != nil {
			return errFromService(c, err)
		}
		return c.JSON(contact)
	}
}

// GetContactHandler returns a user's emergency contact.
func GetContactHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contact, err := deps.SOS.Contact(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(contact)
	}
}

type sosRequest struct {
	Lat      *float64       `json:"lat"`
	Lon      *float64       `json:"lon"`
	Metadata map[string]any `json:"metadata"`
}

// TriggerSOSHandler raises an SOS alert at the user's position.
func TriggerSOSHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req sosRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Lat == nil || req.Lon == nil {
			return errBadRequest(c, "lat and lon are required")
		}

		if req.Metadata == nil {
			req.Metadata = make(map[string]any)
		}
		if rid := RequestIDFromCtx(c.UserContext()); rid != "" {
			req.Metadata["request_id"] = rid
		}

		alert, err := deps.SOS.Trigger(c.UserContext(), c.Params("id"),
			domain.GeoPoint{Lat: *req.Lat, Lon: *req.Lon}, req.Metadata)
		if err != nil {
			return errFromService(c, err)
		}

		c.Location("/v1/users/" + alert.UserID + "/alerts")
		return c.Status(fiber.StatusCreated).JSON(alert)
	}
}

// ListAlertsHandler returns a user's SOS history, newest first.
func ListAlertsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		alerts, err := deps.SOS.Alerts(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromService(c, err)
		}

		resp := paginate(c, alerts, 20, 100)
		SetLinkHeaders(c, resp.Pagination)
		return c.JSON(resp)
	}
}

// GetAlertHandler returns one of a user's alerts.
func GetAlertHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		alert, err := deps.SOS.Alert(c.UserContext(), c.Params("alertId"))
		if err != nil {
			return errFromService(c, err)
		}
		// Alerts are only visible under their owner's path
		if alert.UserID != c.Params("id") {
			return errNotFound(c, "not found")
		}
		return c.JSON(alert)
	}
}
