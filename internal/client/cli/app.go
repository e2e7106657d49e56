package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/itemkeeper/internal/client/client"
	"github.com/dmitrijs2005/itemkeeper/internal/client/config"
	"github.com/dmitrijs2005/itemkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/itemkeeper/internal/client/routes"
	"github.com/dmitrijs2005/itemkeeper/internal/client/services"
	"github.com/dmitrijs2005/itemkeeper/internal/client/session"
	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/dmitrijs2005/itemkeeper/internal/netx"
)

// ErrBusy is returned when a submission is attempted while another one is
// still outstanding.
var ErrBusy = errors.New("another request is in progress")

// Session is the part of session.Manager the CLI uses.
type Session interface {
	Bootstrap(ctx context.Context) error
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	Expire(ctx context.Context)
	Snapshot() session.State
	Token() string
}

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	auth    services.AuthService
	items   services.ItemService
	session Session
	reader  *bufio.Reader
	out     io.Writer

	mu   sync.Mutex
	view routes.View

	inFlight atomic.Bool
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, "text", c.LogLevel)

	baseURL, err := netx.NormalizeBaseURL(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api := client.NewHTTPClient(baseURL, c.TokenHeaderName, &http.Client{})

	a := &App{
		config: c,
		log:    log,
		db:     db,
		auth:   services.NewAuthService(api),
		items:  services.NewItemService(api),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		view:   routes.Home,
	}
	a.session = session.NewManager(metadata.NewSQLiteTokenStore(db), api, a, a,
		session.WithTTLHint(c.TokenTTLHint),
		session.WithLogger(log.With("component", "session")),
	)
	return a, nil
}

// Run resolves the saved session in the background and serves the REPL until
// the user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	printlnFn("Welcome to itemkeeper (type 'help' for commands)")

	go func() {
		_ = a.session.Bootstrap(ctx)
		if a.session.Snapshot().IsAuthenticated() {
			a.Navigate(routes.Dashboard)
		}
	}()

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

// Navigate implements session.Navigator.
func (a *App) Navigate(v routes.View) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view = v
}

// Notify implements session.Notifier.
func (a *App) Notify(msg string) {
	printlnFn(msg)
}

func (a *App) currentView() routes.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated()
}

func (a *App) status() string {
	s := a.session.Snapshot()
	who := "guest"
	switch {
	case s.Loading:
		who = "loading"
	case s.IsAuthenticated() && s.User != nil:
		who = s.User.Username
	}
	return fmt.Sprintf("(%s %s)", who, a.currentView())
}

// submit runs fn unless another submission is outstanding.
func (a *App) submit(fn func() error) error {
	if !a.inFlight.CompareAndSwap(false, true) {
		printlnFn("Please wait, a request is already in progress")
		return ErrBusy
	}
	defer a.inFlight.Store(false)
	return fn()
}

// enterDashboard applies the route guard for dashboard commands. It returns
// false when the command must not run.
func (a *App) enterDashboard() bool {
	d := routes.Decide(a.session.Snapshot().Route(), routes.Dashboard)
	switch d.Action {
	case routes.Pending:
		printlnFn("Checking your session, please try again in a moment")
		return false
	case routes.Redirect:
		a.Navigate(d.Target)
		printlnFn("Please log in first")
		return false
	}
	a.Navigate(routes.Dashboard)
	return true
}

// handleAPIError reports err and drops the session when the server no longer
// accepts the token. Other rejections, including an ownership 401, only show
// the server message.
func (a *App) handleAPIError(ctx context.Context, err error, fallback string) {
	if errors.Is(err, client.ErrTokenRejected) {
		a.session.Expire(ctx)
		return
	}
	printlnFn(client.Message(err, fallback))
}
