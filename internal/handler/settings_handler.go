package handler

import (
	"context"

	"wallet-import/internal/models"
	"wallet-import/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type SettingsReader interface {
	Get(ctx context.Context) (*models.DesktopSettings, error)
}

type SettingsHandler struct {
	settings SettingsReader
}

func NewSettingsHandler(settings SettingsReader) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetSettings returns the last imported desktop settings, or null when none
// were imported yet.
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve settings", err)
	}
	return utils.SuccessResponse(c, "Settings retrieved successfully", settings)
}
