package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	handler "github.com/smartbrain-app/smartbrain-api/handlers"
	"github.com/smartbrain-app/smartbrain-api/middleware"
)

// SetupRoutes registers the API surface. The detection endpoint runs
// behind the full api-limiter chain; the quota standing endpoint only
// needs a valid id.
func SetupRoutes(app *fiber.App, h *handler.Handler) {
	api := app.Group("/api", logger.New())

	api.Get("/", h.ListUsers)

	// Auth
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)

	// User
	api.Get("/profile/:id", middleware.RequireAuth(h.Cfg.JWTSecret), h.GetProfile)
	api.Put("/image", middleware.RequireAuth(h.Cfg.JWTSecret), h.UpdateEntries)

	// Detection pipeline: authorization gate, quota check, usage
	// recording, then the detector call.
	api.Post("/clarifai",
		middleware.CheckAuthorization(h.Users),
		middleware.CheckRequestLimit(h.Policy),
		middleware.RecordApiRequest(h.Ledger, "/api/clarifai"),
		h.Detect,
	)

	api.Get("/requests/remaining", h.RemainingRequests)
}
