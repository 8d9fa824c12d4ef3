package server

import (
	"net/http"

	"github.com/Leopold1975/blog_platform/internal/blog/services/articleservice"
	"github.com/go-chi/render"
)

// Список статей с фильтрами по автору и тегу
// (GET /articles).
func (s *Server) GetArticles(w http.ResponseWriter, r *http.Request) {
	filter, err := articleFilter(r)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	articles, err := s.articleService.FindAll(r.Context(), filter)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.JSON(w, r, articles)
}

// Получение статьи по id или slug
// (GET /articles/{id}).
func (s *Server) GetArticle(w http.ResponseWriter, r *http.Request) {
	identifier, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	article, err := s.articleService.FindOne(r.Context(), identifier)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.JSON(w, r, article)
}

// Создание статьи
// (POST /articles).
func (s *Server) PostArticle(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest

	if err := decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	article, err := s.articleService.Create(r.Context(), articleservice.CreateArticleRequest{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		TagList:     req.TagList,
	}, sessionFrom(r.Context()).UserID)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, article)
}

// Обновление статьи автором
// (PATCH /articles/{id}).
func (s *Server) PatchArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	var req UpdateArticleRequest

	if err := decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	article, err := s.articleService.Update(r.Context(), id, articleservice.UpdateArticleRequest{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		TagList:     req.TagList,
	}, sessionFrom(r.Context()).UserID)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.JSON(w, r, article)
}

// Удаление статьи автором
// (DELETE /articles/{id}).
func (s *Server) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	if err := s.articleService.Remove(r.Context(), id, sessionFrom(r.Context()).UserID); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	render.NoContent(w, r)
}
