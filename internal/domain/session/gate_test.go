package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider lets tests control the one-shot fetch while reusing the real
// broker for change notifications.
type fakeProvider struct {
	broker *Broker
	fetch  func(ctx context.Context) (*Session, error)
}

func newFakeProvider(fetch func(ctx context.Context) (*Session, error)) *fakeProvider {
	return &fakeProvider{broker: NewBroker(), fetch: fetch}
}

func (f *fakeProvider) CurrentSession(ctx context.Context) (*Session, error) {
	return f.fetch(ctx)
}

func (f *fakeProvider) Subscribe(handler func(*Session)) func() {
	return f.broker.Subscribe(handler)
}

func TestGate_ResolvesUnauthenticated(t *testing.T) {
	provider := newFakeProvider(func(ctx context.Context) (*Session, error) {
		return nil, nil
	})
	gate := NewGate(provider, time.Second)
	gate.Start(context.Background())
	defer gate.Close()

	status := gate.WaitResolved(context.Background())
	assert.Equal(t, StateUnauthenticated, status.State)

	assert.Equal(t, Action{Kind: ActionRedirect, RedirectTo: ViewLogin}, gate.Decide(ViewDashboard))
	assert.Equal(t, Action{Kind: ActionRender}, gate.Decide(ViewLogin))
}

func TestGate_ResolvesAuthenticated(t *testing.T) {
	provider := newFakeProvider(func(ctx context.Context) (*Session, error) {
		return &Session{UserID: 1, Email: "admin@example.com", IsAdmin: true}, nil
	})
	gate := NewGate(provider, time.Second)
	gate.Start(context.Background())
	defer gate.Close()

	status := gate.WaitResolved(context.Background())
	require.Equal(t, StateAuthenticated, status.State)
	assert.Equal(t, uint(1), status.Session.UserID)

	// Signed-in users never see the login view
	assert.Equal(t, Action{Kind: ActionRedirect, RedirectTo: ViewDashboard}, gate.Decide(ViewLogin))
	assert.Equal(t, Action{Kind: ActionRender}, gate.Decide(ViewDashboard))
}

func TestGate_FetchErrorIsNotSignedOut(t *testing.T) {
	provider := newFakeProvider(func(ctx context.Context) (*Session, error) {
		return nil, errors.New("auth backend unreachable")
	})
	gate := NewGate(provider, time.Second)
	gate.Start(context.Background())
	defer gate.Close()

	status := gate.WaitResolved(context.Background())
	require.Equal(t, StateError, status.State)
	assert.Contains(t, status.Err, "auth backend unreachable")

	// Protected views show the diagnostic instead of bouncing to login,
	// and the login view itself stays reachable.
	assert.Equal(t, Action{Kind: ActionShowError}, gate.Decide(ViewDashboard))
	assert.Equal(t, Action{Kind: ActionRender}, gate.Decide(ViewLogin))
}

func TestGate_TimeoutForcesResolution(t *testing.T) {
	block := make(chan struct{})
	provider := newFakeProvider(func(ctx context.Context) (*Session, error) {
		<-block
		return &Session{UserID: 1}, nil
	})
	defer close(block)

	gate := NewGate(provider, 20*time.Millisecond)
	gate.Start(context.Background())
	defer gate.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	status := gate.WaitResolved(ctx)

	assert.Equal(t, StateUnauthenticated, status.State, "a hung check must not spin forever")
}

func TestGate_NotificationSupersedesInFlightFetch(t *testing.T) {
	block := make(chan struct{})
	provider := newFakeProvider(func(ctx context.Context) (*Session, error) {
		<-block
		return nil, nil // Stale result: by the time it lands, a login happened
	})

	gate := NewGate(provider, time.Second)
	gate.Start(context.Background())
	defer gate.Close()

	provider.broker.Publish(&Session{UserID: 9, Email: "admin@example.com"})

	status := gate.WaitResolved(context.Background())
	require.Equal(t, StateAuthenticated, status.State)

	// Release the stale fetch; the newer notification must win
	close(block)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, StateAuthenticated, gate.Status().State)
}

func TestGate_SignOutNotification(t *testing.T) {
	provider := newFakeProvider(func(ctx context.Context) (*Session, error) {
		return &Session{UserID: 3}, nil
	})
	gate := NewGate(provider, time.Second)
	gate.Start(context.Background())
	defer gate.Close()

	require.Equal(t, StateAuthenticated, gate.WaitResolved(context.Background()).State)

	provider.broker.Publish(nil)
	assert.Equal(t, StateUnauthenticated, gate.Status().State)
	assert.Equal(t, Action{Kind: ActionRedirect, RedirectTo: ViewLogin}, gate.Decide(ViewDashboard))
}

func TestGate_CloseDropsLateSignals(t *testing.T) {
	block := make(chan struct{})
	provider := newFakeProvider(func(ctx context.Context) (*Session, error) {
		<-block
		return &Session{UserID: 5}, nil
	})

	gate := NewGate(provider, time.Minute)
	gate.Start(context.Background())
	gate.Close()

	close(block)
	provider.broker.Publish(&Session{UserID: 5})
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, StateChecking, gate.Status().State, "closed gates ignore late results")
}

func TestGate_ChecksDecisionWhileChecking(t *testing.T) {
	block := make(chan struct{})
	provider := newFakeProvider(func(ctx context.Context) (*Session, error) {
		<-block
		return nil, nil
	})
	defer close(block)

	gate := NewGate(provider, time.Minute)
	gate.Start(context.Background())
	defer gate.Close()

	// No redirect may fire before the check resolves
	assert.Equal(t, Action{Kind: ActionWait}, gate.Decide(ViewDashboard))
	assert.Equal(t, Action{Kind: ActionWait}, gate.Decide(ViewLogin))
}

func TestGate_SignInSignOutFlow(t *testing.T) {
	block := make(chan struct{})
	provider := newFakeProvider(func(ctx context.Context) (*Session, error) {
		<-block
		return nil, nil
	})
	defer close(block)

	gate := NewGate(provider, time.Minute)
	gate.Start(context.Background())
	defer gate.Close()

	require.Equal(t, StateChecking, gate.Status().State)

	// Signed-out signal arrives: protected views bounce to login
	provider.broker.Publish(nil)
	require.Equal(t, StateUnauthenticated, gate.Status().State)
	assert.Equal(t, Action{Kind: ActionRedirect, RedirectTo: ViewLogin}, gate.Decide(ViewDashboard))

	// Sign-in signal arrives: login view bounces to the dashboard
	provider.broker.Publish(&Session{UserID: 1, IsAdmin: true})
	require.Equal(t, StateAuthenticated, gate.Status().State)
	assert.Equal(t, Action{Kind: ActionRedirect, RedirectTo: ViewDashboard}, gate.Decide(ViewLogin))
	assert.Equal(t, Action{Kind: ActionRender}, gate.Decide(ViewDashboard))
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		view   View
		want   Action
	}{
		{"checking waits", Status{State: StateChecking}, ViewDashboard, Action{Kind: ActionWait}},
		{"authenticated renders protected", Status{State: StateAuthenticated}, ViewDashboard, Action{Kind: ActionRender}},
		{"authenticated skips login", Status{State: StateAuthenticated}, ViewLogin, Action{Kind: ActionRedirect, RedirectTo: ViewDashboard}},
		{"unauthenticated redirects protected", Status{State: StateUnauthenticated}, ViewDashboard, Action{Kind: ActionRedirect, RedirectTo: ViewLogin}},
		{"unauthenticated renders login", Status{State: StateUnauthenticated}, ViewLogin, Action{Kind: ActionRender}},
		{"error shows diagnostic on protected", Status{State: StateError, Err: "boom"}, ViewDashboard, Action{Kind: ActionShowError}},
		{"error still renders login", Status{State: StateError, Err: "boom"}, ViewLogin, Action{Kind: ActionRender}},
		{"unknown state degrades to login", Status{State: State("bogus")}, ViewDashboard, Action{Kind: ActionRedirect, RedirectTo: ViewLogin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.status, tt.view))
		})
	}
}

func TestBroker_SubscribeAndUnsubscribe(t *testing.T) {
	broker := NewBroker()

	var got []*Session
	unsubscribe := broker.Subscribe(func(sess *Session) {
		got = append(got, sess)
	})

	broker.Publish(&Session{UserID: 1})
	broker.Publish(nil)
	require.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].UserID)
	assert.Nil(t, got[1])

	unsubscribe()
	broker.Publish(&Session{UserID: 2})
	assert.Len(t, got, 2, "unsubscribed handlers receive nothing")
}
