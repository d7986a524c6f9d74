package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/club-service/internal/api/http/handlers"
	"github.com/spec-kit/club-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Join    *handlers.JoinHandler
	Auth    *handlers.AuthHandler
	Posts   *handlers.PostsHandler
	Events  *handlers.EventsHandler
	Gallery *handlers.GalleryHandler
	Admin   *handlers.AdminHandler
	Files   *handlers.FilesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(observability.MetricsHandler()))

	api := app.Group("/api")

	api.Post("/join", cfg.Join.Submit)
	api.Post("/login", cfg.Auth.Login)
	api.Post("/profile/update", cfg.Auth.UpdateProfile)

	api.Get("/posts", cfg.Posts.List)
	api.Post("/posts", cfg.Posts.Create)
	api.Get("/posts/:id", cfg.Posts.Get)
	api.Put("/posts/:id", cfg.Posts.Update)
	api.Delete("/posts/:id", cfg.Posts.Delete)

	api.Get("/events", cfg.Events.List)
	api.Post("/events", cfg.Events.Create)
	api.Get("/events/:id", cfg.Events.Get)
	api.Put("/events/:id", cfg.Events.Update)
	api.Delete("/events/:id", cfg.Events.Delete)

	api.Get("/gallery", cfg.Gallery.List)
	api.Post("/gallery", cfg.Gallery.Create)
	api.Get("/gallery/:id", cfg.Gallery.Get)
	api.Put("/gallery/:id", cfg.Gallery.Update)
	api.Delete("/gallery/:id", cfg.Gallery.Delete)

	api.Get("/admin/requests", cfg.Admin.ListPending)
	api.Post("/admin/requests", cfg.Admin.Decide)

	api.Post("/upload", cfg.Files.Upload)
	// Wildcard: blob keys contain slashes (profiles/..., uploads/...).
	api.Get("/files/+", cfg.Files.Serve)
}
