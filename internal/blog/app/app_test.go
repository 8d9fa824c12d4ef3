package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/Leopold1975/blog_platform/internal/blog/api/server"
	"github.com/Leopold1975/blog_platform/internal/blog/app"
	"github.com/Leopold1975/blog_platform/internal/blog/domain/models"
	"github.com/Leopold1975/blog_platform/internal/blog/services/authservice"
	"github.com/Leopold1975/blog_platform/internal/pkg/config"
	"github.com/stretchr/testify/suite"
)

// BlogSuite runs the whole application against a real Postgres (and Redis
// when BLOG_TEST_REDIS_ADDR is set). It is skipped unless
// BLOG_TEST_POSTGRES_ADDR points at a disposable database.
type BlogSuite struct {
	suite.Suite
	cancel context.CancelFunc
	done   chan struct{}
	base   string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func (bs *BlogSuite) SetupSuite() {
	pgAddr := os.Getenv("BLOG_TEST_POSTGRES_ADDR")
	if pgAddr == "" {
		bs.T().Skip("BLOG_TEST_POSTGRES_ADDR is not set")
	}

	addr := getenv("BLOG_TEST_HTTP_ADDR", "127.0.0.1:18080")

	cfg := config.Config{
		Server: config.Server{
			Addr:         addr,
			ReadTimeout:  time.Second * 5,
			WriteTimeout: time.Second * 5,
			IdleTimeout:  time.Second * 5,
		},
		Logger: config.Logger{Level: "error"}, //nolint:exhaustruct
		PostgresDB: config.PostgresDB{
			Addr:     pgAddr,
			Username: getenv("BLOG_TEST_POSTGRES_USER", "postgres"),
			Password: getenv("BLOG_TEST_POSTGRES_PASSWORD", "postgres"),
			DB:       getenv("BLOG_TEST_POSTGRES_DB", "blog_test"),
			SSLmode:  "disable",
			MaxConns: "5",
			Reload:   true,
		},
		Auth: config.Auth{TTL: time.Hour, Secret: "integration-secret"},
		Redis: config.Redis{ //nolint:exhaustruct
			Addr: os.Getenv("BLOG_TEST_REDIS_ADDR"),
		},
	}

	ctx, cancel := context.WithCancel(context.Background())

	a, err := app.New(ctx, cfg)
	if err != nil {
		cancel()
		bs.T().Fatalf("cannot get app error: %v", err)
	}

	bs.cancel = cancel
	bs.done = make(chan struct{})
	bs.base = "http://" + addr

	go func() {
		defer close(bs.done)
		a.Run(ctx)
	}()

	time.Sleep(time.Second) // Время для запуска сервера.
}

func (bs *BlogSuite) TearDownSuite() {
	if bs.cancel == nil {
		return
	}

	bs.cancel()
	<-bs.done
}

func (bs *BlogSuite) do(method, path, token string, body, out interface{}) int {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	var buf bytes.Buffer

	if body != nil {
		bs.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequestWithContext(ctx, method, bs.base+path, &buf)
	bs.Require().NoError(err)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	bs.Require().NoError(err)
	defer resp.Body.Close()

	if out != nil {
		bs.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func (bs *BlogSuite) TestScenario() {
	// Пользователи регистрируются
	var alice, bob authservice.RegisterResponse

	bs.Require().Equal(http.StatusCreated, bs.do(http.MethodPost, "/auth/register", "",
		server.RegisterRequest{Email: "alice@mail.com", Password: "123456", Username: "alice"}, &alice))
	bs.Require().Equal(http.StatusCreated, bs.do(http.MethodPost, "/auth/register", "",
		server.RegisterRequest{Email: "bob@mail.com", Password: "123456", Username: "bob"}, &bob))
	bs.Require().Equal(http.StatusUnprocessableEntity, bs.do(http.MethodPost, "/auth/register", "",
		server.RegisterRequest{Email: "alice@mail.com", Password: "123456", Username: "carol"}, nil))

	var login server.LoginResponse

	bs.Require().Equal(http.StatusOK, bs.do(http.MethodPost, "/auth/login", "",
		server.LoginRequest{Email: "alice@mail.com", Password: "123456"}, &login))
	bs.Require().NotEmpty(login.Token)

	// Создаются теги
	for _, name := range []string{"go", "db"} {
		bs.Require().Equal(http.StatusCreated, bs.do(http.MethodPost, "/tags", alice.Token,
			server.CreateTagRequest{Name: name}, nil))
	}

	// Статьи с тегами
	var a1 models.ArticleView

	bs.Require().Equal(http.StatusCreated, bs.do(http.MethodPost, "/articles", alice.Token,
		server.CreateArticleRequest{Title: "Alice on Go", Description: "d", Body: "b", TagList: []string{"go"}}, &a1))
	bs.Require().Equal("alice-on-go", a1.Slug)
	bs.Require().True(models.IsID(a1.ID))

	bs.Require().Equal(http.StatusCreated, bs.do(http.MethodPost, "/articles", bob.Token,
		server.CreateArticleRequest{Title: "Bob on Go", Description: "d", Body: "b", TagList: []string{"go", "db"}}, nil))
	bs.Require().Equal(http.StatusBadRequest, bs.do(http.MethodPost, "/articles", bob.Token,
		server.CreateArticleRequest{Title: "Bob on Rust", Description: "d", Body: "b", TagList: []string{"rust"}}, nil))
	bs.Require().Equal(http.StatusConflict, bs.do(http.MethodPost, "/articles", bob.Token,
		server.CreateArticleRequest{Title: "alice on go", Description: "d", Body: "b"}, nil))

	var list []models.ArticleView

	bs.Require().Equal(http.StatusOK, bs.do(http.MethodGet, "/articles?author=alice&tag=go", "", nil, &list))
	bs.Require().Len(list, 1)
	bs.Require().Equal(a1.ID, list[0].ID)

	bs.Require().Equal(http.StatusOK, bs.do(http.MethodGet, "/articles?tag=go", "", nil, &list))
	bs.Require().Len(list, 2)

	// Обновление тегов заменяет связи
	tags := []string{"db"}

	var got models.ArticleView

	bs.Require().Equal(http.StatusUnauthorized, bs.do(http.MethodPatch, "/articles/"+a1.ID, bob.Token,
		server.UpdateArticleRequest{TagList: &tags}, nil))
	bs.Require().Equal(http.StatusOK, bs.do(http.MethodPatch, "/articles/"+a1.ID, alice.Token,
		server.UpdateArticleRequest{TagList: &tags}, &got))
	bs.Require().Equal([]string{"db"}, got.Tags)

	bs.Require().Equal(http.StatusOK, bs.do(http.MethodGet, "/articles/alice-on-go", "", nil, &got))
	bs.Require().Equal([]string{"db"}, got.Tags)
	bs.Require().Equal("alice", got.Author.Username)

	bs.Require().Equal(http.StatusOK, bs.do(http.MethodGet, "/articles?author=alice&tag=go", "", nil, &list))
	bs.Require().Empty(list)

	// Удаление
	bs.Require().Equal(http.StatusUnauthorized, bs.do(http.MethodDelete, "/articles/"+a1.ID, bob.Token, nil, nil))
	bs.Require().Equal(http.StatusNoContent, bs.do(http.MethodDelete, "/articles/"+a1.ID, alice.Token, nil, nil))
	bs.Require().Equal(http.StatusNotFound, bs.do(http.MethodGet, "/articles/"+a1.ID, "", nil, nil))
}

func TestBlogSuite(t *testing.T) {
	suite.Run(t, new(BlogSuite))
}
