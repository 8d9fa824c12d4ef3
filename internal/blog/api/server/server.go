package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/models"
	"github.com/Leopold1975/blog_platform/internal/blog/services/articleservice"
	"github.com/Leopold1975/blog_platform/internal/blog/services/authservice"
	"github.com/Leopold1975/blog_platform/internal/pkg/config"
	"github.com/Leopold1975/blog_platform/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	serv           *http.Server
	router         chi.Router
	authService    AuthService
	userService    UserService
	tagService     TagService
	articleService ArticleService
	lg             logger.Logger
}

type AuthService interface {
	Register(context.Context, authservice.RegisterRequest) (authservice.RegisterResponse, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (authservice.Session, error)
	Logout(context.Context, authservice.Session) error
}

type UserService interface {
	FindAll(context.Context) ([]models.User, error)
	FindByID(context.Context, string) (models.User, error)
	FindByUsername(context.Context, string) (models.User, error)
	Update(ctx context.Context, id string, upd models.UserUpdate, ownerID string) (models.User, error)
	Remove(ctx context.Context, id, ownerID string) error
}

type TagService interface {
	Create(context.Context, string) (models.Tag, error)
	FindAll(context.Context) ([]string, error)
	FindOne(context.Context, string) (models.Tag, error)
	Update(ctx context.Context, id, name string) (models.Tag, error)
	Remove(context.Context, string) error
}

type ArticleService interface {
	Create(context.Context, articleservice.CreateArticleRequest, string) (models.ArticleView, error)
	FindAll(context.Context, models.ArticleFilter) ([]models.ArticleView, error)
	FindOne(context.Context, string) (models.ArticleView, error)
	Update(context.Context, string, articleservice.UpdateArticleRequest, string) (models.ArticleView, error)
	Remove(ctx context.Context, id, ownerID string) error
}

type Services struct {
	Auth    AuthService
	Users   UserService
	Tags    TagService
	Article ArticleService
}

func New(cfg config.Server, svc Services, lg logger.Logger) *Server {
	s := &Server{
		authService:    svc.Auth,
		userService:    svc.Users,
		tagService:     svc.Tags,
		articleService: svc.Article,
		lg:             lg,
	}

	s.router = s.routes()
	s.serv = &http.Server{ //nolint:exhaustruct
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Router exposes the route tree, e.g. for documentation.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case <-ctx.Done():
		ctxS, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
		defer cancel()

		if err := s.Shutdown(ctxS); err != nil { //nolint:contextcheck
			return fmt.Errorf("context error: %w server error %w", ctx.Err(), err)
		}

		if !errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("context cancelled error: %w", ctx.Err())
		}

		return nil
	case err, ok := <-errCh:
		if !ok {
			return nil
		}

		return fmt.Errorf("listen and serve error: %w", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.serv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server error: %w", err)
	}

	return nil
}
