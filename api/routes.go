package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// setupRoutes wires the public surface and the auth-gated admin surface.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware,
	contactLimit func(http.Handler) http.Handler, startupTime time.Time) {

	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", healthHandler(startupTime))

		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())

		r.Get("/github/stats", handlers.githubHandler.getStats())

		r.Post("/auth/login", handlers.authHandler.login())

		r.With(contactLimit).Post("/contact", handlers.messageHandler.createMessage())
	})

	// Admin routes, gated by Firebase ID token verification
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Post("/admin/project", handlers.projectHandler.createProject())
		r.Put("/admin/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/admin/project/{projectID}", handlers.projectHandler.deleteProject())
		r.Put("/admin/projects/order", handlers.projectHandler.reorderProjects())
		r.Post("/admin/project/{projectID}/image", handlers.uploadHandler.uploadProjectImage())

		r.Get("/admin/messages", handlers.messageHandler.getAllMessages())
		r.Delete("/admin/message/{messageID}", handlers.messageHandler.deleteMessage())
	})
}

func healthHandler(startupTime time.Time) http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "health").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, map[string]any{
			"status": "ok",
			"uptime": time.Since(startupTime).String(),
		})
	}
}
