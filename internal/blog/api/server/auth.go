package server

import (
	"net/http"

	"github.com/Leopold1975/blog_platform/internal/blog/services/authservice"
	"github.com/go-chi/render"
)

// Регистрация пользователя
// (POST /auth/register).
func (s *Server) PostRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	resp, err := s.authService.Register(r.Context(), authservice.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

// Аутентификация пользователя
// (POST /auth/login).
func (s *Server) PostLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	token, err := s.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.JSON(w, r, LoginResponse{Token: token})
}

// Отзыв текущего токена
// (POST /auth/logout).
func (s *Server) PostLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.authService.Logout(r.Context(), sessionFrom(r.Context())); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.NoContent(w, r)
}
