package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Users           *handlers.UsersHandler
	Complaints      *handlers.ComplaintsHandler
	StaffComplaints *handlers.StaffComplaintsHandler
	AuthMiddleware  *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The role gate runs before any handler
// touches persistence.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/refresh", cfg.Users.Refresh)

	complaints := app.Group("/complaints", cfg.AuthMiddleware.Handle)
	complaints.Post("/create", auth.RequireAuthenticated(), cfg.Complaints.CreateComplaint)
	complaints.Get("/my", auth.RequireAuthenticated(), cfg.Complaints.ListMyComplaints)
	complaints.Get("/all", auth.RequireOfficerOrAdmin(), cfg.StaffComplaints.ListAllComplaints)
	complaints.Get("/stats", auth.RequireOfficerOrAdmin(), cfg.StaffComplaints.ComplaintStats)
	complaints.Patch("/:id/update", auth.RequireOfficerOrAdmin(), cfg.StaffComplaints.UpdateComplaintStatus)
	complaints.Put("/:id/update", auth.RequireOfficerOrAdmin(), cfg.StaffComplaints.UpdateComplaintStatus)
}
