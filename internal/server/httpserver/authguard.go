package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/auth"
	"github.com/dmitrijs2005/itemkeeper/internal/server/config"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// TokenDecoder verifies a token and returns its subject.
type TokenDecoder interface {
	Decode(token string) (string, error)
}

// TokenSource extracts the raw token from a request, "" when absent.
type TokenSource func(r *http.Request) string

// HeaderSource reads the token from header name, falling back to an
// "Authorization: Bearer" header.
func HeaderSource(name string) TokenSource {
	return func(r *http.Request) string {
		if tok := strings.TrimSpace(r.Header.Get(name)); tok != "" {
			return tok
		}
		scheme, tok, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(tok)
	}
}

// CookieSource reads the token from cookie name.
func CookieSource(name string) TokenSource {
	return func(r *http.Request) string {
		c, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return c.Value
	}
}

// SourceFor returns the TokenSource selected by cfg.TokenTransport.
func SourceFor(cfg *config.Config) TokenSource {
	if cfg.TokenTransport == config.TransportCookie {
		return CookieSource(cfg.TokenCookieName)
	}
	return HeaderSource(cfg.TokenHeaderName)
}

// AuthGuard admits requests carrying a valid token and stores the token
// subject in the request context.
type AuthGuard struct {
	decoder TokenDecoder
	source  TokenSource
}

func NewAuthGuard(d TokenDecoder, src TokenSource) *AuthGuard {
	return &AuthGuard{decoder: d, source: src}
}

func (g *AuthGuard) Stage() Stage { return StageAuthenticate }

func (g *AuthGuard) Check(r *http.Request) (*http.Request, error) {
	tok := g.source(r)
	if tok == "" {
		return nil, common.ErrMissingToken
	}

	userID, err := g.decoder.Decode(tok)
	if err != nil {
		return nil, err
	}

	return r.WithContext(auth.ContextWithUserID(r.Context(), userID)), nil
}

// ItemFinder loads an item by id.
type ItemFinder interface {
	Get(ctx context.Context, id string) (*models.Item, error)
}

// OwnershipGuard admits requests whose authenticated user owns the item
// named by the "id" route parameter. The loaded item is stored in the request
// context.
type OwnershipGuard struct {
	items ItemFinder
}

func NewOwnershipGuard(items ItemFinder) *OwnershipGuard {
	return &OwnershipGuard{items: items}
}

func (g *OwnershipGuard) Stage() Stage { return StageAuthorize }

func (g *OwnershipGuard) Check(r *http.Request) (*http.Request, error) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return nil, common.ErrMissingToken
	}

	it, err := g.items.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, notFoundAs(err, "Item not found")
	}
	if it.UserID != userID {
		return nil, common.ErrNotAuthorized
	}

	return r.WithContext(context.WithValue(r.Context(), itemKey, it)), nil
}

type ctxKey int

const itemKey ctxKey = iota

// ItemFromContext returns the item stored by OwnershipGuard.
func ItemFromContext(ctx context.Context) (*models.Item, bool) {
	it, ok := ctx.Value(itemKey).(*models.Item)
	return it, ok
}
