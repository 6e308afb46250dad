// internal/domain/contact/service.go
package contact

import (
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/settings"
	"github.com/your-org/storefront-backend/internal/pkg/email"
)

// Service handles contact form submissions
type Service struct {
	config          *config.Config
	sender          email.Sender
	settingsService *settings.Service
}

// NewService creates a new contact service
func NewService(cfg *config.Config, sender email.Sender, settingsService *settings.Service) *Service {
	return &Service{
		config:          cfg,
		sender:          sender,
		settingsService: settingsService,
	}
}

// SubmitRequest represents a contact form submission
type SubmitRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// Submit validates the form and delivers it to the store contact address.
// Validation failures come back per field; a delivery failure is an error
// the caller can retry.
func (s *Service) Submit(req *SubmitRequest) (settings.FieldErrors, error) {
	fieldErrors := settings.FieldErrors{}

	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "name cannot be empty"
	}
	if !strings.Contains(req.Email, "@") {
		fieldErrors["email"] = "must be a valid email address"
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		fieldErrors["message"] = "message cannot be empty"
	}
	if len(message) > 5000 {
		fieldErrors["message"] = "message must be at most 5000 characters"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors, nil
	}

	to := s.config.Email.FromEmail
	if siteSettings, err := s.settingsService.Get(); err == nil && siteSettings.ContactEmail != "" {
		to = siteSettings.ContactEmail
	}

	msg := &email.Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Contact form: %s", strings.TrimSpace(req.Name)),
		Body:    fmt.Sprintf("From: %s <%s>\n\n%s", strings.TrimSpace(req.Name), req.Email, message),
		ReplyTo: req.Email,
	}

	if err := s.sender.Send(msg); err != nil {
		return nil, fmt.Errorf("failed to deliver contact message: %w", err)
	}

	return nil, nil
}
