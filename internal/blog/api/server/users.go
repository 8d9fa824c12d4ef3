package server

import (
	"net/http"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/models"
	"github.com/go-chi/render"
)

// Список пользователей без паролей
// (GET /users).
func (s *Server) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.FindAll(r.Context())
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.JSON(w, r, users)
}

// Получение пользователя по id или username
// (GET /users/{id}).
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	value, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	var u models.User

	if models.IsID(value) {
		u, err = s.userService.FindByID(r.Context(), value)
	} else {
		u, err = s.userService.FindByUsername(r.Context(), value)
	}

	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.JSON(w, r, u)
}

// Обновление профиля владельцем
// (PATCH /users/{id}).
func (s *Server) PatchUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	var req UpdateUserRequest

	if err := decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	u, err := s.userService.Update(r.Context(), id, models.UserUpdate{
		Email:    req.Email,
		Username: req.Username,
		Bio:      req.Bio,
		Image:    req.Image,
	}, sessionFrom(r.Context()).UserID)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.JSON(w, r, u)
}

// Удаление профиля владельцем с отзывом его токена
// (DELETE /users/{id}).
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	sess := sessionFrom(r.Context())

	if err := s.userService.Remove(r.Context(), id, sess.UserID); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	if err := s.authService.Logout(r.Context(), sess); err != nil {
		s.lg.Errorf("revoke token of deleted user %s error: %s", sess.UserID, err.Error())
	}

	render.NoContent(w, r)
}
