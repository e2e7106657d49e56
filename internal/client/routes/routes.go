// Package routes decides what the client may show for a view given the
// current session state.
package routes

// View names a client screen.
type View string

const (
	Home      View = "home"
	Login     View = "login"
	Register  View = "register"
	Dashboard View = "dashboard"
)

// Protected reports whether v requires an authenticated session.
func (v View) Protected() bool {
	return v == Dashboard
}

func (v View) String() string { return string(v) }

// Action is the outcome of Decide.
type Action int

const (
	// Pending means the session is still resolving; show a placeholder and
	// do not redirect.
	Pending Action = iota
	Render
	Redirect
)

func (a Action) String() string {
	switch a {
	case Pending:
		return "pending"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	}
	return "unknown"
}

// Decision tells the caller what to do. Target is set only for Redirect.
type Decision struct {
	Action Action
	Target View
}

// SessionState is the part of the session Decide looks at.
type SessionState struct {
	Loading       bool
	Authenticated bool
}

// Decide returns the action for view v under state s. Public views always
// render, so there is no redirect loop on login or register.
func Decide(s SessionState, v View) Decision {
	if !v.Protected() {
		return Decision{Action: Render}
	}
	if s.Loading {
		return Decision{Action: Pending}
	}
	if !s.Authenticated {
		return Decision{Action: Redirect, Target: Login}
	}
	return Decision{Action: Render}
}
