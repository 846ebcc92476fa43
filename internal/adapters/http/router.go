package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/saferoute/internal/pkg/metrics"
)

// RequestTimeout bounds every REST call, including outbound routing and
// geocoding requests made on its behalf.
const RequestTimeout = 15 * time.Second

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // Balance speed vs compression ratio
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
		Next: func(c *fiber.Ctx) bool {
			// Never throttle an emergency
			return c.Method() == fiber.MethodPost && strings.HasSuffix(c.Path(), "/sos")
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// REST API v1
	v1 := app.Group("/v1")
	v1.Get("/routes/safe", timeout.NewWithContext(SafeRoutesHandler(deps), RequestTimeout))
	v1.Get("/zones", timeout.NewWithContext(ZonesHandler(deps), RequestTimeout))
	v1.Get("/geocode/search", timeout.NewWithContext(GeocodeSearchHandler(deps), RequestTimeout))
	v1.Get("/geocode/reverse", timeout.NewWithContext(GeocodeReverseHandler(deps), RequestTimeout))

	// Emergency features
	v1.Put("/users/:id/contact", timeout.NewWithContext(PutContactHandler(deps), RequestTimeout))
	v1.Get("/users/:id/contact", timeout.NewWithContext(GetContactHandler(deps), RequestTimeout))
	v1.Post("/users/:id/sos", timeout.NewWithContext(TriggerSOSHandler(deps), RequestTimeout))
	v1.Get("/users/:id/alerts", timeout.NewWithContext(ListAlertsHandler(deps), RequestTimeout))
	v1.Get("/users/:id/alerts/:alertId", timeout.NewWithContext(GetAlertHandler(deps), RequestTimeout))

	// GraphQL
	app.Post("/graphql", timeout.NewWithContext(GraphQLHandler(deps), RequestTimeout))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps)))
}
