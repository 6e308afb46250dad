// internal/domain/session/session.go
package session

import "context"

// Session is an authenticated-session handle issued by the auth provider.
// The gate treats it as opaque beyond identifying the user.
type Session struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// State is the gate's view of the session check
type State string

const (
	StateChecking        State = "checking"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
	StateError           State = "error"
)

// Status is a point-in-time snapshot of the gate
type Status struct {
	State   State    `json:"state"`
	Session *Session `json:"session,omitempty"`
	Err     string   `json:"error,omitempty"`
}

// View names an admin-area view. Everything except the login view is
// protected.
type View string

const (
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
)

// Protected reports whether the view requires an authenticated session
func (v View) Protected() bool {
	return v != ViewLogin
}

// ActionKind enumerates what the admin area should do for a requested view
type ActionKind string

const (
	ActionRender    ActionKind = "render"
	ActionRedirect  ActionKind = "redirect"
	ActionShowError ActionKind = "show_error"
	ActionWait      ActionKind = "wait"
)

// Action is the gate's decision for a requested view
type Action struct {
	Kind       ActionKind `json:"action"`
	RedirectTo View       `json:"redirect_to,omitempty"`
}

// Provider supplies session state. It is consumed, never implemented, by the
// gate: a one-shot fetch plus push-style change notifications.
type Provider interface {
	// CurrentSession returns the current session, nil when there is none.
	// An error means the check itself failed, which is distinct from "no
	// session".
	CurrentSession(ctx context.Context) (*Session, error)

	// Subscribe registers a change handler and returns an unsubscribe
	// function. Handlers receive the latest session, nil on sign-out.
	Subscribe(handler func(*Session)) (unsubscribe func())
}

// Decide maps a gate status and requested view to a render/redirect action.
// It is a pure function of its inputs; redirects never fire while the check
// is still in flight, and the login view stays reachable even when the
// session check failed.
func Decide(status Status, view View) Action {
	switch status.State {
	case StateChecking:
		return Action{Kind: ActionWait}

	case StateAuthenticated:
		if view == ViewLogin {
			return Action{Kind: ActionRedirect, RedirectTo: ViewDashboard}
		}
		return Action{Kind: ActionRender}

	case StateUnauthenticated:
		if view.Protected() {
			return Action{Kind: ActionRedirect, RedirectTo: ViewLogin}
		}
		return Action{Kind: ActionRender}

	case StateError:
		if view.Protected() {
			return Action{Kind: ActionShowError}
		}
		return Action{Kind: ActionRender}
	}

	// Unknown states degrade to the login view
	return Action{Kind: ActionRedirect, RedirectTo: ViewLogin}
}

func statusFor(sess *Session) Status {
	if sess != nil {
		return Status{State: StateAuthenticated, Session: sess}
	}
	return Status{State: StateUnauthenticated}
}
