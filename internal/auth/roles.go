package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// RequireAuthenticated ensures a principal is present, any role.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireCitizen passes only callers whose role is citizen.
func RequireCitizen() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Role.IsCitizen() {
			return apperrors.NewForbidden("citizen role required")
		}
		return c.Next()
	}
}

// RequireOfficerOrAdmin passes only staff and admin callers.
func RequireOfficerOrAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Role.IsOfficerOrAdmin() {
			return apperrors.NewForbidden("staff or admin role required")
		}
		return c.Next()
	}
}
