package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/auth"
	"github.com/dmitrijs2005/itemkeeper/internal/server/config"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

// UserService is the account side of the API.
type UserService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, username, email, password string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=256"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		s.metrics.login("success")
	case errors.Is(err, common.ErrInvalidCredentials):
		s.metrics.login("invalid_credentials")
		s.fail(w, r, err)
		return
	default:
		s.metrics.login("error")
		s.fail(w, r, err)
		return
	}

	s.writeToken(w, token)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	token, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.writeToken(w, token)
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	u, err := s.users.CurrentUser(r.Context(), userID)
	if err != nil {
		s.fail(w, r, notFoundAs(err, "User not found"))
		return
	}

	writeJSON(w, http.StatusOK, userResponse{ID: u.ID, Username: u.UserName, Email: u.Email})
}

// writeToken answers with the token in the body and, for the cookie
// transport, also sets it as an HttpOnly cookie.
func (s *Server) writeToken(w http.ResponseWriter, token string) {
	if s.cfg.TokenTransport == config.TransportCookie {
		http.SetCookie(w, &http.Cookie{
			Name:     s.cfg.TokenCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(s.cfg.TokenValidityDuration / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
