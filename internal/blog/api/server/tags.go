package server

import (
	"net/http"

	"github.com/go-chi/render"
)

// Создание тега
// (POST /tags).
func (s *Server) PostTag(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest

	if err := decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	tag, err := s.tagService.Create(r.Context(), req.Name)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, tag)
}

// Список имен всех тегов
// (GET /tags).
func (s *Server) GetTags(w http.ResponseWriter, r *http.Request) {
	names, err := s.tagService.FindAll(r.Context())
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.JSON(w, r, names)
}

// Получение тега по id
// (GET /tags/{id}).
func (s *Server) GetTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	tag, err := s.tagService.FindOne(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.JSON(w, r, tag)
}

// Переименование тега, запрос без имени возвращает тег без изменений
// (PATCH /tags/{id}).
func (s *Server) PatchTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	var req UpdateTagRequest

	if err := decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	if req.Name == nil {
		s.GetTag(w, r)

		return
	}

	tag, err := s.tagService.Update(r.Context(), id, *req.Name)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.JSON(w, r, tag)
}

// Удаление тега
// (DELETE /tags/{id}).
func (s *Server) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	if err := s.tagService.Remove(r.Context(), id); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.NoContent(w, r)
}
