package middleware

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"pickmycollege/internal/config"
)

// newAuthTestApp builds an app whose /login/{email} endpoint establishes a
// session and whose /admin endpoint sits behind RequireAdmin.
func newAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{AdminEmails: []string{"ops@example.com"}}
	app := fiber.New()

	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)

	app.Post("/login/:email", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		sess.Set("user_email", c.Params("email"))
		return c.SendString("ok")
	})

	auth := NewAuthMiddleware(cfg)
	app.Get("/admin", auth.RequireAdmin, func(c fiber.Ctx) error {
		email, _ := c.Locals("user_email").(string)
		return c.SendString(email)
	})

	return app
}

func loginAs(t *testing.T, app *fiber.App, email string) []*http.Cookie {
	t.Helper()
	req, _ := http.NewRequest("POST", "/login/"+email, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	return resp.Cookies()
}

func TestRequireAdminNoSession(t *testing.T) {
	app := newAuthTestApp(t)

	req, _ := http.NewRequest("GET", "/admin", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without a session", resp.StatusCode)
	}
}

func TestRequireAdminNonAdmin(t *testing.T) {
	app := newAuthTestApp(t)
	cookies := loginAs(t, app, "someone@example.com")

	req, _ := http.NewRequest("GET", "/admin", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403 for non-admin", resp.StatusCode)
	}
}

func TestRequireAdminAdmin(t *testing.T) {
	app := newAuthTestApp(t)
	cookies := loginAs(t, app, "ops@example.com")

	req, _ := http.NewRequest("GET", "/admin", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 for configured admin", resp.StatusCode)
	}
}
