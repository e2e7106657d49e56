// Package httpserver exposes the itemkeeper HTTP API: authentication routes,
// item routes guarded by token and ownership checks, health and metrics.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/dmitrijs2005/itemkeeper/internal/server/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/secure"
)

type Server struct {
	cfg      *config.Config
	logger   logging.Logger
	users    UserService
	items    ItemService
	metrics  *Metrics
	validate *validator.Validate
	resp     *responder
	router   chi.Router
}

// NewServer builds the router. decoder verifies tokens for AuthGuard.
func NewServer(cfg *config.Config, l logging.Logger, users UserService, items ItemService, decoder TokenDecoder, metrics *Metrics) (*Server, error) {
	s := &Server{
		cfg:      cfg,
		logger:   l.With("module", "http_server"),
		users:    users,
		items:    items,
		metrics:  metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.resp = &responder{logger: s.logger, metrics: metrics}

	authGuard := NewAuthGuard(decoder, SourceFor(cfg))

	authenticated, err := NewPipeline(s.fail, authGuard)
	if err != nil {
		return nil, err
	}
	owned, err := NewPipeline(s.fail, authGuard, NewOwnershipGuard(items))
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recoverer)
	r.Use(secureHeaders().Handler)
	r.Use(metrics.Middleware)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)
		r.Method(http.MethodGet, "/user", authenticated.Then(http.HandlerFunc(s.handleCurrentUser)))
	})

	r.Route("/items", func(r chi.Router) {
		r.Method(http.MethodGet, "/", authenticated.Then(http.HandlerFunc(s.handleListItems)))
		r.Method(http.MethodPost, "/", authenticated.Then(http.HandlerFunc(s.handleCreateItem)))
		r.Method(http.MethodPut, "/{id}", owned.Then(http.HandlerFunc(s.handleUpdateItem)))
		r.Method(http.MethodDelete, "/{id}", owned.Then(http.HandlerFunc(s.handleDeleteItem)))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, msgResponse{Msg: "Not found"})
	})

	s.router = r
	return s, nil
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.resp.fail(w, r, err)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.EndpointAddrHTTP,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.cfg.EndpointAddrHTTP, "token_transport", s.cfg.TokenTransport)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func secureHeaders() *secure.Secure {
	return secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'",
	})
}
