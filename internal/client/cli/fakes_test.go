package cli

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/client/models"
	"github.com/dmitrijs2005/itemkeeper/internal/client/routes"
	"github.com/dmitrijs2005/itemkeeper/internal/client/session"
)

type fakeSession struct {
	state   session.State
	token   string
	user    *models.User
	loginOK bool

	logins  []string
	logouts int
	expired int
}

func (f *fakeSession) Bootstrap(context.Context) error { return nil }

func (f *fakeSession) Login(_ context.Context, token string) error {
	f.logins = append(f.logins, token)
	if !f.loginOK {
		f.state = session.State{Status: session.StatusAnonymous}
		return io.ErrUnexpectedEOF
	}
	f.state = session.State{Status: session.StatusAuthenticated, User: f.user}
	f.token = token
	return nil
}

func (f *fakeSession) Logout(context.Context) error {
	f.logouts++
	f.state = session.State{Status: session.StatusAnonymous}
	f.token = ""
	return nil
}

func (f *fakeSession) Expire(context.Context) {
	f.expired++
	f.state = session.State{Status: session.StatusAnonymous}
	f.token = ""
}

func (f *fakeSession) Snapshot() session.State { return f.state }
func (f *fakeSession) Token() string           { return f.token }

func authenticated(token string) *fakeSession {
	u := &models.User{ID: "u1", Username: "bob", Email: "bob@example.com"}
	return &fakeSession{
		state: session.State{Status: session.StatusAuthenticated, User: u},
		token: token,
		user:  u,
	}
}

type fakeAuth struct {
	email, username string
	password        []byte
	token           string
	err             error
	calls           int
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (string, error) {
	f.calls++
	f.email, f.password = email, password
	return f.token, f.err
}

func (f *fakeAuth) Register(_ context.Context, username, email string, password []byte) (string, error) {
	f.calls++
	f.username, f.email, f.password = username, email, password
	return f.token, f.err
}

type fakeItems struct {
	token, query, id, title, description string

	items []models.Item
	item  *models.Item
	err   error
	calls []string
}

func (f *fakeItems) List(_ context.Context, token, query string) ([]models.Item, error) {
	f.calls = append(f.calls, "list")
	f.token, f.query = token, query
	return f.items, f.err
}

func (f *fakeItems) Add(_ context.Context, token, title, description string) (*models.Item, error) {
	f.calls = append(f.calls, "add")
	f.token, f.title, f.description = token, title, description
	return f.item, f.err
}

func (f *fakeItems) Edit(_ context.Context, token, id, title, description string) (*models.Item, error) {
	f.calls = append(f.calls, "edit")
	f.token, f.id, f.title, f.description = token, id, title, description
	return f.item, f.err
}

func (f *fakeItems) Delete(_ context.Context, token, id string) error {
	f.calls = append(f.calls, "delete")
	f.token, f.id = token, id
	return f.err
}

func newTestApp(s Session, auth *fakeAuth, items *fakeItems, lines ...string) *App {
	return &App{
		session: s,
		auth:    auth,
		items:   items,
		reader:  bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n")),
		out:     io.Discard,
		view:    routes.Home,
	}
}
