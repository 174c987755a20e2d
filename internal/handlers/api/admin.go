package api

import (
	"github.com/gofiber/fiber/v3"

	"pickmycollege/internal/db"
	"pickmycollege/internal/provider"
)

// AdminHandler serves the operator surface: analytics counters and the
// provider key rotation state.
type AdminHandler struct {
	db   *db.DB
	keys *provider.KeyManager
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(database *db.DB, keys *provider.KeyManager) *AdminHandler {
	return &AdminHandler{db: database, keys: keys}
}

// Analytics handles GET /admin/analytics: all counter rows.
func (h *AdminHandler) Analytics(c fiber.Ctx) error {
	counters, err := h.db.GetAllCounters(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load counters")
	}
	return jsonSuccess(c, counters)
}

// Keys handles GET /admin/keys: the rotation state snapshot. Exhausted
// keys are reported as fingerprints only; raw secrets never leave the
// process.
func (h *AdminHandler) Keys(c fiber.Ctx) error {
	return jsonSuccess(c, fiber.Map{
		"key_count": h.keys.KeyCount(),
		"state":     h.keys.Snapshot(),
	})
}

// ResetKeys handles POST /admin/keys/reset: clears the exhausted set,
// typically after the provider quota renews.
func (h *AdminHandler) ResetKeys(c fiber.Ctx) error {
	h.keys.ResetExhausted()
	return jsonSuccess(c, h.keys.Snapshot())
}
