// internal/domain/session/gate.go
package session

import (
	"context"
	"sync"
	"time"
)

// Gate observes a session provider and decides whether admin views render or
// redirect. It starts in Checking, resolves on the first authoritative
// signal (fetch result, change notification, or timeout) and then keeps
// re-deriving its state from the latest notification until closed.
type Gate struct {
	provider Provider
	wait     time.Duration

	mu       sync.Mutex
	status   Status
	notified bool // A change notification arrived; supersedes in-flight fetches
	closed   bool

	resolveOnce sync.Once
	resolved    chan struct{}

	unsubscribe func()
	timer       *time.Timer
}

// NewGate creates a gate for the given provider. wait bounds how long the
// gate stays in Checking before forcing an Unauthenticated-equivalent
// resolution.
func NewGate(provider Provider, wait time.Duration) *Gate {
	return &Gate{
		provider: provider,
		wait:     wait,
		status:   Status{State: StateChecking},
		resolved: make(chan struct{}),
	}
}

// Start subscribes to change notifications, kicks off the initial session
// fetch and arms the checking timeout. Must be balanced with Close.
func (g *Gate) Start(ctx context.Context) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	// Subscribe before fetching, so no change notification can be lost
	// between the fetch and the subscription.
	g.unsubscribe = g.provider.Subscribe(g.onChange)
	g.timer = time.AfterFunc(g.wait, g.onTimeout)
	g.mu.Unlock()

	go g.fetch(ctx)
}

// Status returns the current gate snapshot
func (g *Gate) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// WaitResolved blocks until the gate has left Checking or the context is
// done, and returns the status at that point.
func (g *Gate) WaitResolved(ctx context.Context) Status {
	select {
	case <-g.resolved:
	case <-ctx.Done():
	}
	return g.Status()
}

// Decide evaluates the decision table against the current status
func (g *Gate) Decide(view View) Action {
	return Decide(g.Status(), view)
}

// Close detaches the gate. Late fetch results and notifications arriving
// after Close are dropped.
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.closed = true
	if g.timer != nil {
		g.timer.Stop()
	}
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
}

// onChange applies a push notification. The displayed state is always
// re-derived from the latest signal, never merged with older ones.
func (g *Gate) onChange(sess *Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.notified = true
	g.status = statusFor(sess)
	g.markResolved()
}

// fetch performs the one-shot session check. Its result is discarded if a
// change notification got there first, or if the gate was closed while the
// fetch was in flight.
func (g *Gate) fetch(ctx context.Context) {
	sess, err := g.provider.CurrentSession(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || g.notified {
		return
	}

	if err != nil {
		// A failed check is not "no session": surface a diagnostic state
		// that later notifications can still move the gate out of.
		g.status = Status{State: StateError, Err: err.Error()}
	} else {
		g.status = statusFor(sess)
	}
	g.markResolved()
}

// onTimeout forces the gate out of Checking when no definitive signal has
// arrived, rendering as unauthenticated rather than loading forever.
func (g *Gate) onTimeout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || g.status.State != StateChecking {
		return
	}
	g.status = Status{State: StateUnauthenticated}
	g.markResolved()
}

// markResolved must be called with g.mu held
func (g *Gate) markResolved() {
	g.resolveOnce.Do(func() { close(g.resolved) })
}
