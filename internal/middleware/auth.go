package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"pickmycollege/internal/config"
)

// AuthMiddleware gates the admin surface on an authenticated session
// whose email is in the configured admin list.
type AuthMiddleware struct {
	cfg *config.Config
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// RequireAdmin ensures the session belongs to a configured admin.
// Unauthenticated callers get 401; authenticated non-admins get 403.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	email, _ := sess.Get("user_email").(string)
	if email == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	if !m.cfg.IsAdminEmail(email) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

	c.Locals("user_email", email)
	return c.Next()
}
