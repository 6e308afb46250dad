// internal/interfaces/http/handlers/contact.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/contact"
)

// ContactHandler handles contact form submissions
type ContactHandler struct {
	contactService *contact.Service
	config         *config.Config
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *contact.Service, cfg *config.Config) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		config:         cfg,
	}
}

// Submit handles POST /contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contact.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	fieldErrors, err := h.contactService.Submit(&req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to deliver message, please try again",
		})
		return
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        "Contact form validation failed",
			"field_errors": fieldErrors,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message sent successfully",
	})
}
