package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware(s.lg))
	r.Use(middleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.PostRegister)
		r.Post("/login", s.PostLogin)
		r.With(s.authMiddleware).Post("/logout", s.PostLogout)
	})

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", s.GetArticles)
		r.Get("/{id}", s.GetArticle)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Post("/", s.PostArticle)
			r.Patch("/{id}", s.PatchArticle)
			r.Delete("/{id}", s.DeleteArticle)
		})
	})

	r.Route("/tags", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Post("/", s.PostTag)
		r.Get("/", s.GetTags)
		r.Get("/{id}", s.GetTag)
		r.Patch("/{id}", s.PatchTag)
		r.Delete("/{id}", s.DeleteTag)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/", s.GetUsers)
		r.Get("/{id}", s.GetUser)
		r.Patch("/{id}", s.PatchUser)
		r.Delete("/{id}", s.DeleteUser)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errRouteNotFound, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errMethodNotAllowed, http.StatusMethodNotAllowed)
	})

	return r
}
