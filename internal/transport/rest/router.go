package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/timeoff-management/internal/directory"
	"github.com/frahmantamala/timeoff-management/internal/timeoff"
	"github.com/frahmantamala/timeoff-management/internal/transport/middleware"
	"github.com/frahmantamala/timeoff-management/internal/transport/swagger"
	"github.com/frahmantamala/timeoff-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	auth *middleware.Authenticator,
	userHandler *user.Handler,
	webhookHandler *user.WebhookHandler,
	directoryHandler *directory.Handler,
	timeoffHandler *timeoff.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec and Swagger UI at root, outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Identity provider webhook, authenticated by payload signature
		if webhookHandler != nil {
			r.Post("/webhooks/identity", webhookHandler.HandleIdentityEvent)
		}

		// Protected routes require a verified identity token
		r.Group(func(pr chi.Router) {
			pr.Use(auth.Middleware)

			if userHandler != nil {
				pr.Get("/users/me", userHandler.GetCurrentUser)
				pr.Post("/users/sync", userHandler.SyncCurrentUser)
				pr.Post("/users/me/onboarding", userHandler.CompleteOnboarding)
				pr.Patch("/users/me/name", userHandler.UpdateName)
			}

			if directoryHandler != nil {
				pr.Get("/departments", directoryHandler.GetDepartments)
				pr.Get("/teams", directoryHandler.GetTeams)
				pr.Get("/teams/{id}", directoryHandler.GetTeam)
			}

			if userHandler != nil {
				pr.Get("/teams/{id}/manager", userHandler.GetTeamManagerStatus)
			}

			if timeoffHandler != nil {
				pr.Route("/timeoff", func(tr chi.Router) {
					tr.Post("/", timeoffHandler.RequestTimeOff)
					tr.Get("/mine", timeoffHandler.GetMyTimeOff)
					tr.Get("/calendar", timeoffHandler.GetCalendar)
					tr.Get("/pending", timeoffHandler.GetPendingApprovals)
					tr.Delete("/{date}", timeoffHandler.CancelTimeOff)
					tr.Patch("/{id}/review", timeoffHandler.ReviewTimeOff)
				})

				pr.Get("/departments/{id}/timeoff", timeoffHandler.GetTimeOffByDepartment)
				pr.Get("/teams/{id}/timeoff", timeoffHandler.GetTimeOffByTeam)
			}
		})
	})
}
