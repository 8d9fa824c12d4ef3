package server

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Leopold1975/blog_platform/internal/blog/services/authservice"
	"github.com/Leopold1975/blog_platform/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey int

const sessionKey ctxKey = iota

func loggingMiddleware(logg logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			var body bytes.Buffer

			ww.Tee(&body)

			defer func() {
				logg.Infof("METHOD %s %s URI %s STATUS %d Latency %s Client IP %s User Agent %s Request ID %s",
					r.Method,
					r.Proto,
					r.URL.RequestURI(),
					ww.Status(),
					time.Since(start).String(),
					r.RemoteAddr,
					r.UserAgent(),
					middleware.GetReqID(r.Context()),
				)

				if ww.Status() >= http.StatusBadRequest && body.Len() != 0 {
					logg.Errorf("error: %s", strings.TrimSpace(body.String()))
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// authMiddleware rejects requests without a valid bearer token and stores
// the resulting session in the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			handleError(w, r, errNoToken, http.StatusUnauthorized)

			return
		}

		sess, err := s.authService.Authenticate(r.Context(), token)
		if err != nil {
			s.handleServiceError(w, r, err)

			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")

	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

// sessionFrom returns the session put there by authMiddleware.
func sessionFrom(ctx context.Context) authservice.Session {
	sess, _ := ctx.Value(sessionKey).(authservice.Session)

	return sess
}
