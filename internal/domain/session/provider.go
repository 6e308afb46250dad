// internal/domain/session/provider.go
package session

import (
	"context"
	"sync"

	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

// Broker fans session change events out to subscribed gates. Login and
// logout publish through it, so mounted gates observe sign-in state without
// polling.
type Broker struct {
	mu   sync.Mutex
	subs map[int]func(*Session)
	next int
}

// NewBroker creates a new session change broker
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]func(*Session))}
}

// Subscribe registers a handler and returns its unsubscribe function
func (b *Broker) Subscribe(handler func(*Session)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = handler
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers the latest session to all subscribers; nil means
// signed out.
func (b *Broker) Publish(sess *Session) {
	b.mu.Lock()
	handlers := make([]func(*Session), 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(sess)
	}
}

// TokenProvider derives session state from a bearer token. It satisfies
// Provider for gates serving a single HTTP request: the one-shot check
// validates the token, and change notifications come from the shared broker.
type TokenProvider struct {
	jwtManager *auth.JWTManager
	broker     *Broker
	token      string
}

// NewTokenProvider creates a provider for the given raw bearer token; an
// empty token resolves to no session.
func NewTokenProvider(jwtManager *auth.JWTManager, broker *Broker, token string) *TokenProvider {
	return &TokenProvider{
		jwtManager: jwtManager,
		broker:     broker,
		token:      token,
	}
}

// CurrentSession validates the token. An invalid or expired token is "no
// session", not an error; errors are reserved for failures of the check
// itself.
func (p *TokenProvider) CurrentSession(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.token == "" {
		return nil, nil
	}

	claims, err := p.jwtManager.ValidateAccessToken(p.token)
	if err != nil {
		return nil, nil
	}

	return &Session{
		UserID:  claims.UserID,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
	}, nil
}

// Subscribe delegates to the shared broker
func (p *TokenProvider) Subscribe(handler func(*Session)) func() {
	return p.broker.Subscribe(handler)
}
