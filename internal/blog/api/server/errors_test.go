package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/apperr"
	"github.com/stretchr/testify/require"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", apperr.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("x: %w", apperr.ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("x: %w", apperr.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", apperr.ErrConflict), http.StatusConflict},
		{fmt.Errorf("x: %w", apperr.ErrUnprocessable), http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, statusFromError(tc.err), tc.err.Error())
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer   abc  ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			r.Header.Set("Authorization", tc.header)
		}

		token, ok := bearerToken(r)
		require.Equal(t, tc.ok, ok, tc.header)
		require.Equal(t, tc.token, token, tc.header)
	}
}
