package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	msgNoToken            = "No token, authorization denied"
	msgInvalidToken       = "Token is not valid"
	msgInvalidCredentials = "Invalid Credentials"
	msgNotAuthorized      = "Not authorized"
	msgUserExists         = "User already exists"
	msgServerError        = "Server Error"
)

type msgResponse struct {
	Msg string `json:"msg"`
}

// apiError carries the status and client message for an error whose generic
// mapping is not specific enough, such as which resource was not found.
type apiError struct {
	status int
	msg    string
	err    error
}

func (e *apiError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *apiError) Unwrap() error { return e.err }

func badRequest(msg string, err error) error {
	return &apiError{status: http.StatusBadRequest, msg: msg, err: err}
}

// notFoundAs gives common.ErrorNotFound a resource specific message and
// passes every other error through.
func notFoundAs(err error, msg string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return &apiError{status: http.StatusNotFound, msg: msg, err: err}
	}
	return err
}

// classify maps err to the status and message sent to the client.
func classify(err error) (int, string) {
	var ae *apiError
	switch {
	case errors.As(err, &ae):
		return ae.status, ae.msg
	case errors.Is(err, common.ErrMissingToken):
		return http.StatusUnauthorized, msgNoToken
	case common.IsAuthFailure(err):
		return http.StatusUnauthorized, msgInvalidToken
	case errors.Is(err, common.ErrNotAuthorized):
		return http.StatusUnauthorized, msgNotAuthorized
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusBadRequest, msgInvalidCredentials
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, msgUserExists
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, "Invalid input"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Not found"
	default:
		return http.StatusInternalServerError, msgServerError
	}
}

// failureReason labels auth failures for metrics, "" for other errors.
func failureReason(err error) string {
	switch {
	case errors.Is(err, common.ErrMissingToken):
		return "missing"
	case errors.Is(err, common.ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, common.ErrTokenExpired):
		return "expired"
	case errors.Is(err, common.ErrMalformedToken):
		return "malformed"
	case errors.Is(err, common.ErrNotAuthorized):
		return "not_owner"
	default:
		return ""
	}
}

type responder struct {
	logger  logging.Logger
	metrics *Metrics
}

// fail writes the error response for err. Server faults are logged with the
// request id and never leak details to the client.
func (rs *responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := classify(err)

	if reason := failureReason(err); reason != "" {
		rs.metrics.authFailure(reason)
	}

	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	if status >= http.StatusInternalServerError {
		rs.logger.Error(ctx, "request failed", "request_id", reqID, "path", r.URL.Path, "error", err)
	} else {
		rs.logger.Debug(ctx, "request rejected", "request_id", reqID, "path", r.URL.Path, "status", status, "error", err)
	}

	writeJSON(w, status, msgResponse{Msg: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(target); err != nil {
		return badRequest("Invalid request body", err)
	}
	return nil
}
