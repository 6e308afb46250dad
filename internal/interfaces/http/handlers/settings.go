// internal/interfaces/http/handlers/settings.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/settings"
)

// SettingsHandler handles site settings endpoints
type SettingsHandler struct {
	settingsService *settings.Service
	config          *config.Config
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *settings.Service, cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		config:          cfg,
	}
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	siteSettings, err := h.settingsService.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve settings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Settings retrieved successfully",
		"data":    siteSettings,
	})
}

// UpdateSettings handles PUT /admin/settings. Validation failures come back
// per field so the form can render them inline.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req settings.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	siteSettings, fieldErrors, err := h.settingsService.Update(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update settings",
		})
		return
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        "Settings validation failed",
			"field_errors": fieldErrors,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Settings updated successfully",
		"data":    siteSettings,
	})
}
