package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/itemkeeper/internal/client/client"
	"github.com/dmitrijs2005/itemkeeper/internal/client/routes"
	"github.com/dmitrijs2005/itemkeeper/internal/client/services"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, email and password, creates the account
// and logs the new user in with the returned token.
func (a *App) Register(ctx context.Context) error {
	a.Navigate(routes.Register)
	return a.submit(func() error {
		username, err := getSimpleText(a.reader, "Enter username", a.out)
		if err != nil {
			return err
		}
		email, err := getSimpleText(a.reader, "Enter email", a.out)
		if err != nil {
			return err
		}
		password, err := getPassword(a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)

		token, err := a.auth.Register(ctx, username, email, password)
		if err != nil {
			printlnFn(authMessage(err, "Registration failed"))
			return err
		}
		return a.session.Login(ctx, token)
	})
}

// Login prompts for credentials and hands the token to the session manager,
// which reports the outcome.
func (a *App) Login(ctx context.Context) error {
	a.Navigate(routes.Login)
	return a.submit(func() error {
		email, err := getSimpleText(a.reader, "Enter email", a.out)
		if err != nil {
			return err
		}
		password, err := getPassword(a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)

		token, err := a.auth.Login(ctx, email, password)
		if err != nil {
			printlnFn(authMessage(err, "Login failed"))
			return err
		}
		return a.session.Login(ctx, token)
	})
}

// Logout forgets the session locally.
func (a *App) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

// WhoAmI prints the identity of the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.session.Snapshot()
	switch {
	case s.Loading:
		printlnFn("Checking your session, please try again in a moment")
	case !s.IsAuthenticated() || s.User == nil:
		printlnFn("Not logged in")
	default:
		printlnFn(s.User.Username, "<"+s.User.Email+">", "id:", s.User.ID)
	}
	return nil
}

func authMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrPasswordRequired),
		errors.Is(err, services.ErrUsernameRequired):
		return err.Error()
	}
	return client.Message(err, fallback)
}
