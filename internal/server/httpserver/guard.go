package httpserver

import (
	"errors"
	"fmt"
	"net/http"
)

// Stage orders guards inside a Pipeline.
type Stage int

const (
	// StageAuthenticate guards establish who the caller is.
	StageAuthenticate Stage = iota + 1
	// StageAuthorize guards decide what the established caller may do.
	StageAuthorize
)

func (s Stage) String() string {
	switch s {
	case StageAuthenticate:
		return "authenticate"
	case StageAuthorize:
		return "authorize"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Guard inspects a request before the handler runs. It either returns the
// request to pass on (possibly with an enriched context) or an error that
// stops the request.
type Guard interface {
	Stage() Stage
	Check(r *http.Request) (*http.Request, error)
}

// ErrGuardOrder is returned by NewPipeline when an authorization guard is not
// preceded by an authentication guard.
var ErrGuardOrder = errors.New("authorization guard without preceding authentication guard")

// Pipeline runs guards in order and calls the handler only when all pass.
type Pipeline struct {
	guards []Guard
	fail   func(w http.ResponseWriter, r *http.Request, err error)
}

// NewPipeline validates the guard order. fail writes the response for the
// first guard error.
func NewPipeline(fail func(http.ResponseWriter, *http.Request, error), guards ...Guard) (*Pipeline, error) {
	authenticated := false
	for i, g := range guards {
		switch g.Stage() {
		case StageAuthenticate:
			authenticated = true
		case StageAuthorize:
			if !authenticated {
				return nil, fmt.Errorf("guard %d (%T): %w", i, g, ErrGuardOrder)
			}
		default:
			return nil, fmt.Errorf("guard %d (%T): unknown %s", i, g, g.Stage())
		}
	}
	return &Pipeline{guards: guards, fail: fail}, nil
}

// Then wraps next with the pipeline's guards.
func (p *Pipeline) Then(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, g := range p.guards {
			checked, err := g.Check(r)
			if err != nil {
				p.fail(w, r, err)
				return
			}
			r = checked
		}
		next.ServeHTTP(w, r)
	})
}
