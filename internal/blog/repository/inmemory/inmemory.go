// Package inmemory implements the user, tag and article repositories on top
// of maps. It mirrors the Postgres schema constraints (unique email, username,
// tag name and slug, the article author reference, cascading deletes) and backs service and handler tests.
package inmemory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/models"
	"github.com/Leopold1975/blog_platform/internal/blog/repository/articlerepo"
	"github.com/Leopold1975/blog_platform/internal/blog/repository/tagrepo"
	"github.com/Leopold1975/blog_platform/internal/blog/repository/userrepo"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]models.User
	tags     map[string]models.Tag
	articles map[string]models.Article
	seq      int64
}

func New() *Store {
	return &Store{
		users:    make(map[string]models.User),
		tags:     make(map[string]models.Tag),
		articles: make(map[string]models.Article),
	}
}

func (s *Store) CreateUser(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.users {
		if o.Email == u.Email || o.Username == u.Username {
			return models.User{}, userrepo.ErrAlreadyExists
		}
	}

	u.ID = newID()
	u.CreatedAt = s.now()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = u

	return u, nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, userrepo.ErrNotFound
	}

	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return u.Email == email })
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return u.Username == username })
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })

	return users, nil
}

func (s *Store) UpdateUser(_ context.Context, id string, upd models.UserUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, userrepo.ErrNotFound
	}

	for _, o := range s.users {
		if o.ID == id {
			continue
		}

		if (upd.Email != nil && *upd.Email == o.Email) || (upd.Username != nil && *upd.Username == o.Username) {
			return models.User{}, userrepo.ErrAlreadyExists
		}
	}

	if upd.Email != nil {
		u.Email = *upd.Email
	}

	if upd.Username != nil {
		u.Username = *upd.Username
	}

	if upd.Bio != nil {
		u.Bio = upd.Bio
	}

	if upd.Image != nil {
		u.Image = upd.Image
	}

	u.UpdatedAt = s.now()
	s.users[id] = u

	return u, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return userrepo.ErrNotFound
	}

	delete(s.users, id)

	for aid, a := range s.articles {
		if a.AuthorID == id {
			delete(s.articles, aid)
		}
	}

	return nil
}

func (s *Store) CreateTag(_ context.Context, name string) (models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tags {
		if t.Name == name {
			return models.Tag{}, tagrepo.ErrAlreadyExists
		}
	}

	t := models.Tag{ID: newID(), Name: name, CreatedAt: s.now()}
	t.UpdatedAt = t.CreatedAt
	s.tags[t.ID] = t

	return t, nil
}

func (s *Store) GetTag(_ context.Context, id string) (models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tags[id]
	if !ok {
		return models.Tag{}, tagrepo.ErrNotFound
	}

	return t, nil
}

func (s *Store) ListTags(_ context.Context) ([]models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := make([]models.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		tags = append(tags, t)
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })

	return tags, nil
}

func (s *Store) GetTagsByNames(_ context.Context, names []string) ([]models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := make([]models.Tag, 0, len(names))

	for _, t := range s.tags {
		if slices.Contains(names, t.Name) {
			tags = append(tags, t)
		}
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })

	return tags, nil
}

func (s *Store) UpdateTag(_ context.Context, id, name string) (models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tags[id]
	if !ok {
		return models.Tag{}, tagrepo.ErrNotFound
	}

	for _, o := range s.tags {
		if o.ID != id && o.Name == name {
			return models.Tag{}, tagrepo.ErrAlreadyExists
		}
	}

	t.Name = name
	t.UpdatedAt = s.now()
	s.tags[id] = t

	return t, nil
}

func (s *Store) DeleteTag(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[id]; !ok {
		return tagrepo.ErrNotFound
	}

	delete(s.tags, id)

	for aid, a := range s.articles {
		a.TagIDs = slices.DeleteFunc(slices.Clone(a.TagIDs), func(t string) bool { return t == id })
		s.articles[aid] = a
	}

	return nil
}

func (s *Store) CreateArticle(_ context.Context, a models.Article) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[a.AuthorID]; !ok {
		return "", articlerepo.ErrNoAuthor
	}

	for _, o := range s.articles {
		if o.Slug == a.Slug {
			return "", articlerepo.ErrAlreadyExists
		}
	}

	a.ID = newID()
	a.TagIDs = slices.Clone(a.TagIDs)
	a.CreatedAt = s.now()
	a.UpdatedAt = a.CreatedAt
	s.articles[a.ID] = a

	return a.ID, nil
}

func (s *Store) GetArticle(_ context.Context, id string) (models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return models.Article{}, articlerepo.ErrNotFound
	}

	a.TagIDs = slices.Clone(a.TagIDs)

	return a, nil
}

func (s *Store) GetArticleBySlug(_ context.Context, slug string) (models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.articles {
		if a.Slug == slug {
			a.TagIDs = slices.Clone(a.TagIDs)

			return a, nil
		}
	}

	return models.Article{}, articlerepo.ErrNotFound
}

func (s *Store) GetArticleView(_ context.Context, id string) (models.ArticleView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return models.ArticleView{}, articlerepo.ErrNotFound
	}

	return s.view(a), nil
}

func (s *Store) GetArticleViewBySlug(_ context.Context, slug string) (models.ArticleView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.articles {
		if a.Slug == slug {
			return s.view(a), nil
		}
	}

	return models.ArticleView{}, articlerepo.ErrNotFound
}

func (s *Store) ListArticles(_ context.Context, filter models.ArticleFilter) ([]models.ArticleView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]models.ArticleView, 0, len(s.articles))

	for _, a := range s.articles {
		v := s.view(a)

		if filter.Author != "" && v.Author.Username != filter.Author {
			continue
		}

		if filter.Tag != "" && !slices.Contains(v.Tags, filter.Tag) {
			continue
		}

		views = append(views, v)
	}

	sort.Slice(views, func(i, j int) bool { return views[i].CreatedAt.Before(views[j].CreatedAt) })

	return views, nil
}

func (s *Store) UpdateArticle(_ context.Context, a models.Article, replaceTags bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.articles[a.ID]
	if !ok {
		return articlerepo.ErrNotFound
	}

	for _, o := range s.articles {
		if o.ID != a.ID && o.Slug == a.Slug {
			return articlerepo.ErrAlreadyExists
		}
	}

	old.Slug = a.Slug
	old.Title = a.Title
	old.Description = a.Description
	old.Body = a.Body
	old.UpdatedAt = s.now()

	if replaceTags {
		old.TagIDs = slices.Clone(a.TagIDs)
	}

	s.articles[a.ID] = old

	return nil
}

func (s *Store) DeleteArticle(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[id]; !ok {
		return articlerepo.ErrNotFound
	}

	delete(s.articles, id)

	return nil
}

// ArticleCount is a test helper reporting how many articles are stored.
func (s *Store) ArticleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.articles)
}

// UserCount is a test helper reporting how many users are stored.
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.users)
}

func (s *Store) findUser(match func(models.User) bool) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			return u, nil
		}
	}

	return models.User{}, userrepo.ErrNotFound
}

// view must be called with s.mu held.
func (s *Store) view(a models.Article) models.ArticleView {
	author := s.users[a.AuthorID]

	tags := make([]string, 0, len(a.TagIDs))
	for _, id := range a.TagIDs {
		if t, ok := s.tags[id]; ok {
			tags = append(tags, t.Name)
		}
	}

	sort.Strings(tags)

	return models.ArticleView{
		ID:             a.ID,
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		FavoritesCount: a.FavoritesCount,
		AuthorID:       a.AuthorID,
		Author: models.AuthorSummary{
			Username: author.Username,
			Bio:      author.Bio,
			Image:    author.Image,
		},
		Tags:      tags,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// now returns strictly increasing timestamps so ordering by creation time is
// deterministic. Must be called with s.mu held for writing.
func (s *Store) now() time.Time {
	s.seq++

	return time.Unix(0, 0).UTC().Add(time.Duration(s.seq) * time.Millisecond)
}

func newID() string {
	b := make([]byte, 12) //nolint:gomnd
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}

	return hex.EncodeToString(b)
}
