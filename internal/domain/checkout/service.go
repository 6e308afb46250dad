// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/settings"
)

// Service builds the WhatsApp checkout hand-off. It formats the current cart
// as a plain-text order summary and returns a pre-filled wa.me link; sending
// is entirely on the client side, no response is handled.
type Service struct {
	config          *config.Config
	cartStore       *cart.Store
	settingsService *settings.Service
}

// NewService creates a new checkout service
func NewService(cfg *config.Config, cartStore *cart.Store, settingsService *settings.Service) *Service {
	return &Service{
		config:          cfg,
		cartStore:       cartStore,
		settingsService: settingsService,
	}
}

// Handoff represents the checkout hand-off for the current cart
type Handoff struct {
	Summary     string `json:"summary"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// Handoff builds the hand-off for the given cart key. Fails if the cart is
// empty or no WhatsApp number is configured.
func (s *Service) Handoff(ctx context.Context, key cart.Key) (*Handoff, error) {
	cartResponse, err := s.cartStore.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(cartResponse.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	number := s.whatsAppNumber()
	if number == "" {
		return nil, fmt.Errorf("no WhatsApp number configured for checkout")
	}

	summary := Summary(cartResponse)

	return &Handoff{
		Summary:     summary,
		WhatsAppURL: fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(summary)),
	}, nil
}

// Summary formats a cart as a plain-text order message: one "- <name> x<qty>"
// line per item with size and add-ons, and the total at the end.
func Summary(cartResponse *cart.Response) string {
	var b strings.Builder
	b.WriteString("Hello! I would like to order:\n")

	for _, item := range cartResponse.Items {
		name := fmt.Sprintf("product #%d", item.ProductID)
		if item.Product != nil {
			name = item.Product.Name
		}

		b.WriteString(fmt.Sprintf("- %s x%d", name, item.Quantity))
		if item.Size != "" {
			b.WriteString(fmt.Sprintf(" (size %s)", item.Size))
		}
		for _, addon := range item.Addons {
			b.WriteString(fmt.Sprintf(" + %s", addon.Name))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Total: %.2f", float64(cartResponse.Totals.TotalPrice)/100))
	return b.String()
}

// whatsAppNumber prefers the admin-managed setting over the config default
func (s *Service) whatsAppNumber() string {
	if siteSettings, err := s.settingsService.Get(); err == nil && siteSettings.WhatsAppNumber != "" {
		return strings.TrimPrefix(siteSettings.WhatsAppNumber, "+")
	}
	return strings.TrimPrefix(s.config.Store.WhatsAppNumber, "+")
}
