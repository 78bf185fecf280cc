package middleware

import (
	"fmt"

	"github.com/asg0d/billboards-live/internal/config"
	"github.com/asg0d/billboards-live/internal/services"
	"github.com/asg0d/billboards-live/internal/types"
	"github.com/gofiber/fiber/v2"
)

// AuthAdmin validates that the request has admin role authorization.
// The Authorizer client is initialized lazily on the first authenticated
// request so the service can boot before Authorizer is reachable.
func AuthAdmin(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, cfg, []string{"admin"})
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, cfg *config.Config, roles []string) error {
	if !services.IsAuthorizerInitialized() {
		if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
			return types.NewForbiddenError(fmt.Sprintf("Authorizer unavailable: %v", err))
		}
	}

	session := c.Cookies("cookie_session")
	if session == "" {
		return types.NewForbiddenError("Authorizer cookie \"cookie_session\" not found")
	}

	data, err := services.ValidateSession(session, roles)
	if err != nil {
		return types.NewForbiddenError(fmt.Sprintf("Invalid session: %v", err))
	}

	if user, ok := data["user"]; ok {
		c.Locals("user", user)
	}

	return c.Next()
}
