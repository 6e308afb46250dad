// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/analytics"
	"github.com/your-org/storefront-backend/internal/domain/session"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// AdminHandler handles the session gate and dashboard endpoints
type AdminHandler struct {
	analyticsService *analytics.Service
	jwtManager       *auth.JWTManager
	broker           *session.Broker
	config           *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB, redisClient *redis.Client, broker *session.Broker, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		analyticsService: analytics.NewService(db, redisClient, cfg),
		jwtManager:       auth.NewJWTManager(cfg),
		broker:           broker,
		config:           cfg,
	}
}

// GateCheck handles GET /admin/gate/:view. It resolves a session gate for
// the request's bearer token and answers whether the admin client should
// render the view, redirect, or show the session-check diagnostic.
func (h *AdminHandler) GateCheck(c *gin.Context) {
	view := session.View(c.Param("view"))

	token := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
	provider := session.NewTokenProvider(h.jwtManager, h.broker, token)

	gate := session.NewGate(provider, h.config.Security.SessionCheckWait)
	gate.Start(c.Request.Context())
	defer gate.Close()

	status := gate.WaitResolved(c.Request.Context())
	action := session.Decide(status, view)

	c.JSON(http.StatusOK, gin.H{
		"message": "Gate evaluated successfully",
		"data": gin.H{
			"view":   view,
			"status": status,
			"action": action,
		},
	})
}

// Dashboard handles GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	summary, err := h.analyticsService.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build dashboard summary",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dashboard retrieved successfully",
		"data":    summary,
	})
}
