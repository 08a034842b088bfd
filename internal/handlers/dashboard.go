package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/mlmadmin/internal/config"
	"github.com/example/mlmadmin/internal/services"
)

// DashboardHandler serves the landing page statistics.
type DashboardHandler struct {
	base
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(backend *services.Backend, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{base: newBase(backend, nil, cfg)}
}

// Stats relays the backend's aggregate dashboard statistics.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	var stats map[string]any
	if err := services.FetchObject(c.UserContext(), h.backend, token(c), services.PathDashboard, nil, &stats); err != nil {
		return err
	}
	if stats == nil {
		stats = map[string]any{}
	}
	return dataResponse(c, stats)
}
