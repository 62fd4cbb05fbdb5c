package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/api/http/handlers"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/auth"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/social-login", cfg.Auth.SocialLogin)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)

	users := api.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	users.Get("/me", cfg.Users.Me)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/users/:email", cfg.Users.GetByEmail)
}
