// Package session holds the client's view of who is logged in.
//
// A Manager is created once by the application and shared by reference. It
// resolves the persisted token at start-up (Bootstrap), and changes state only
// through Login, Logout and Expire.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/client/client"
	"github.com/dmitrijs2005/itemkeeper/internal/client/models"
	"github.com/dmitrijs2005/itemkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/itemkeeper/internal/client/routes"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/logging"
)

const (
	MsgLoggedIn       = "Logged in successfully!"
	MsgLoggedOut      = "Logged out successfully!"
	MsgLoginFailed    = "Login failed"
	MsgSessionExpired = "Session expired, please log in again"
)

// Status is the resolved authentication status.
type Status int

const (
	StatusUnknown Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// State is a point-in-time copy of the session.
type State struct {
	Status  Status
	User    *models.User
	Loading bool
}

func (s State) IsAuthenticated() bool { return s.Status == StatusAuthenticated }
func (s State) IsLoading() bool       { return s.Loading }

// Route returns the state as seen by routes.Decide.
func (s State) Route() routes.SessionState {
	return routes.SessionState{Loading: s.Loading, Authenticated: s.IsAuthenticated()}
}

// IdentityFetcher resolves a token to the user it belongs to.
type IdentityFetcher interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// Navigator moves the UI to a view.
type Navigator interface {
	Navigate(v routes.View)
}

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(msg string)
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTLHint sets how long a saved token is considered usable locally.
func WithTTLHint(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

type Manager struct {
	store   metadata.TokenStore
	fetcher IdentityFetcher
	nav     Navigator
	notify  Notifier
	ttl     time.Duration
	now     func() time.Time
	log     logging.Logger

	// op serializes state-changing operations; mu guards the fields below.
	op    sync.Mutex
	mu    sync.RWMutex
	state State
	token string

	bootOnce sync.Once
	bootErr  error
}

func NewManager(store metadata.TokenStore, fetcher IdentityFetcher, nav Navigator, notify Notifier, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		fetcher: fetcher,
		nav:     nav,
		notify:  notify,
		ttl:     common.DefaultTokenValidity,
		now:     time.Now,
		log:     logging.Nop(),
		state:   State{Status: StatusUnknown, Loading: true},
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Token returns the in-memory token of an authenticated session, or "".
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) IsLoading() bool       { return m.Snapshot().Loading }
func (m *Manager) IsAuthenticated() bool { return m.Snapshot().IsAuthenticated() }

// Bootstrap resolves the persisted token once per Manager. Later calls block
// until the first one finishes and return its result. Failures leave the session
// anonymous and are only logged.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.bootOnce.Do(func() {
		m.bootErr = m.bootstrap(ctx)
	})
	return m.bootErr
}

func (m *Manager) bootstrap(ctx context.Context) error {
	m.op.Lock()
	defer m.op.Unlock()

	token, err := m.store.LoadToken(ctx)
	if err != nil {
		m.log.Warn(ctx, "failed to load saved token", "error", err)
		m.setAnonymous()
		return nil
	}
	if token == "" {
		m.setAnonymous()
		return nil
	}

	user, err := m.fetcher.CurrentUser(ctx, token)
	if err != nil {
		m.log.Info(ctx, "saved token rejected", "error", err)
		m.clearStored(ctx)
		m.setAnonymous()
		return nil
	}

	m.setAuthenticated(token, user)
	return nil
}

// Login stores token, resolves the identity and moves to the dashboard. On
// failure the token is discarded, the session is anonymous and the error is
// returned. It waits for Bootstrap first, running it if nobody has, so
// Loading only ends when the bootstrap resolves.
func (m *Manager) Login(ctx context.Context, token string) error {
	_ = m.Bootstrap(ctx)

	m.op.Lock()
	defer m.op.Unlock()

	if err := m.store.SaveToken(ctx, token, m.now().Add(m.ttl)); err != nil {
		m.log.Error(ctx, "failed to save token", "error", err)
		m.setAnonymous()
		m.notify.Notify(MsgLoginFailed)
		return err
	}

	user, err := m.fetcher.CurrentUser(ctx, token)
	if err != nil {
		m.clearStored(ctx)
		m.setAnonymous()
		m.notify.Notify(client.Message(err, MsgLoginFailed))
		return err
	}

	m.setAuthenticated(token, user)
	m.nav.Navigate(routes.Dashboard)
	m.notify.Notify(MsgLoggedIn)
	return nil
}

// Logout forgets the session locally. It makes no network call of its own
// but waits for Bootstrap like Login.
func (m *Manager) Logout(ctx context.Context) error {
	_ = m.Bootstrap(ctx)

	m.op.Lock()
	defer m.op.Unlock()

	err := m.store.ClearToken(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to clear token", "error", err)
	}
	m.setAnonymous()
	m.nav.Navigate(routes.Login)
	m.notify.Notify(MsgLoggedOut)
	return err
}

// Expire drops a session the server no longer accepts and sends the user to
// the login view.
func (m *Manager) Expire(ctx context.Context) {
	m.op.Lock()
	defer m.op.Unlock()

	m.clearStored(ctx)
	m.setAnonymous()
	m.nav.Navigate(routes.Login)
	m.notify.Notify(MsgSessionExpired)
}

func (m *Manager) clearStored(ctx context.Context) {
	if err := m.store.ClearToken(ctx); err != nil {
		m.log.Error(ctx, "failed to clear token", "error", err)
	}
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{Status: StatusAnonymous}
	m.token = ""
}

func (m *Manager) setAuthenticated(token string, u *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{Status: StatusAuthenticated, User: u}
	m.token = token
}
