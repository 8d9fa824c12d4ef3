package server

import (
	"errors"
	"net/http"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/apperr"
	"github.com/go-chi/render"
)

var (
	errRouteNotFound    = errors.New("route not found")
	errMethodNotAllowed = errors.New("method not allowed")
	errNoToken          = errors.New("bearer token required")
)

type Error struct {
	Err string `json:"error"`
}

// statusFromError maps the service error classes to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrUnprocessable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError answers with the status that matches err's class.
// Unclassified errors are logged and hidden from the client.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFromError(err)
	if code >= http.StatusInternalServerError {
		s.lg.Errorf("%s %s error: %s", r.Method, r.URL.Path, err.Error())
	}

	handleError(w, r, err, code)
}

func handleError(w http.ResponseWriter, r *http.Request, err error, code int) {
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		msg = http.StatusText(code)
	}

	render.Status(r, code)
	render.JSON(w, r, Error{Err: msg})
}
