package articleservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/apperr"
	"github.com/Leopold1975/blog_platform/internal/blog/domain/models"
	repo "github.com/Leopold1975/blog_platform/internal/blog/repository/articlerepo"
	"github.com/Leopold1975/blog_platform/internal/pkg/slug"
	"github.com/Leopold1975/blog_platform/pkg/logger"
)

type ArticleService struct {
	articleRepo Repository
	tags        TagResolver
	lg          logger.Logger
}

type Repository interface {
	CreateArticle(context.Context, models.Article) (string, error)
	GetArticle(context.Context, string) (models.Article, error)
	GetArticleBySlug(context.Context, string) (models.Article, error)
	GetArticleView(context.Context, string) (models.ArticleView, error)
	GetArticleViewBySlug(context.Context, string) (models.ArticleView, error)
	ListArticles(context.Context, models.ArticleFilter) ([]models.ArticleView, error)
	UpdateArticle(ctx context.Context, a models.Article, replaceTags bool) error
	DeleteArticle(context.Context, string) error
}

type TagResolver interface {
	GetTagsByNames(context.Context, []string) ([]models.Tag, error)
}

func New(articleRepo Repository, tags TagResolver, lg logger.Logger) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		tags:        tags,
		lg:          lg,
	}
}

// Create stores a new article owned by ownerID. Every tag name must resolve
// to an existing tag and the title's slug must be free; otherwise nothing is
// written.
func (as *ArticleService) Create(ctx context.Context, req CreateArticleRequest,
	ownerID string,
) (models.ArticleView, error) {
	tagIDs, err := as.resolveTags(ctx, req.TagList)
	if err != nil {
		return models.ArticleView{}, err
	}

	s, err := as.freeSlug(ctx, req.Title, "")
	if err != nil {
		return models.ArticleView{}, err
	}

	id, err := as.articleRepo.CreateArticle(ctx, models.Article{ //nolint:exhaustruct
		Slug:           s,
		Title:          req.Title,
		Description:    req.Description,
		Body:           req.Body,
		FavoritesCount: 0,
		AuthorID:       ownerID,
		TagIDs:         tagIDs,
	})
	if err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return models.ArticleView{}, fmt.Errorf("slug %q is taken: %w", s, apperr.ErrConflict)
		}

		if errors.Is(err, repo.ErrNoAuthor) {
			return models.ArticleView{}, fmt.Errorf("user %s does not exist: %w", ownerID, apperr.ErrUnauthorized)
		}

		return models.ArticleView{}, fmt.Errorf("create article error: %w", err)
	}

	as.lg.Debugf("article %s (%s) created by %s", id, s, ownerID)

	v, err := as.articleRepo.GetArticleView(ctx, id)
	if err != nil {
		return models.ArticleView{}, fmt.Errorf("get created article error: %w", err)
	}

	return v, nil
}

func (as *ArticleService) FindAll(ctx context.Context, filter models.ArticleFilter) ([]models.ArticleView, error) {
	views, err := as.articleRepo.ListArticles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list articles error: %w", err)
	}

	return views, nil
}

// FindOne looks an article up by id when identifier looks like one and by
// slug otherwise.
func (as *ArticleService) FindOne(ctx context.Context, identifier string) (models.ArticleView, error) {
	var (
		v   models.ArticleView
		err error
	)

	if models.IsID(identifier) {
		v, err = as.articleRepo.GetArticleView(ctx, strings.ToLower(identifier))
	} else {
		v, err = as.articleRepo.GetArticleViewBySlug(ctx, identifier)
	}

	if err != nil {
		return models.ArticleView{}, translate(err, "get article error")
	}

	return v, nil
}

func (as *ArticleService) Update(ctx context.Context, id string, req UpdateArticleRequest,
	ownerID string,
) (models.ArticleView, error) {
	a, err := as.owned(ctx, id, ownerID)
	if err != nil {
		return models.ArticleView{}, err
	}

	replaceTags := req.TagList != nil
	if replaceTags {
		a.TagIDs, err = as.resolveTags(ctx, *req.TagList)
		if err != nil {
			return models.ArticleView{}, err
		}
	}

	if req.Title != nil && *req.Title != a.Title {
		a.Slug, err = as.freeSlug(ctx, *req.Title, a.ID)
		if err != nil {
			return models.ArticleView{}, err
		}

		a.Title = *req.Title
	}

	if req.Description != nil {
		a.Description = *req.Description
	}

	if req.Body != nil {
		a.Body = *req.Body
	}

	if err := as.articleRepo.UpdateArticle(ctx, a, replaceTags); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return models.ArticleView{}, fmt.Errorf("slug %q is taken: %w", a.Slug, apperr.ErrConflict)
		}

		return models.ArticleView{}, translate(err, "update article error")
	}

	v, err := as.articleRepo.GetArticleView(ctx, a.ID)
	if err != nil {
		return models.ArticleView{}, translate(err, "get updated article error")
	}

	return v, nil
}

func (as *ArticleService) Remove(ctx context.Context, id, ownerID string) error {
	if _, err := as.owned(ctx, id, ownerID); err != nil {
		return err
	}

	if err := as.articleRepo.DeleteArticle(ctx, id); err != nil {
		return translate(err, "delete article error")
	}

	as.lg.Debugf("article %s deleted by %s", id, ownerID)

	return nil
}

func (as *ArticleService) owned(ctx context.Context, id, ownerID string) (models.Article, error) {
	a, err := as.articleRepo.GetArticle(ctx, id)
	if err != nil {
		return models.Article{}, translate(err, "get article error")
	}

	if a.AuthorID != ownerID {
		return models.Article{}, fmt.Errorf("user %s is not the author of article %s: %w",
			ownerID, id, apperr.ErrUnauthorized)
	}

	return a, nil
}

// resolveTags maps tag names to ids. Names are trimmed and duplicates
// collapsed; a single unknown or blank name fails the whole resolution.
func (as *ArticleService) resolveTags(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return []string{}, nil
	}

	unique := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, n := range names {
		n = models.TagName(n)
		if n == "" {
			return nil, fmt.Errorf("blank tag name: %w", apperr.ErrValidation)
		}

		if _, ok := seen[n]; ok {
			continue
		}

		seen[n] = struct{}{}
		unique = append(unique, n)
	}

	tags, err := as.tags.GetTagsByNames(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("get tags error: %w", err)
	}

	if len(tags) != len(unique) {
		found := make(map[string]struct{}, len(tags))
		for _, t := range tags {
			found[t.Name] = struct{}{}
		}

		missing := make([]string, 0, len(unique)-len(tags))

		for _, n := range unique {
			if _, ok := found[n]; !ok {
				missing = append(missing, n)
			}
		}

		return nil, fmt.Errorf("unknown tags %s: %w", strings.Join(missing, ", "), apperr.ErrValidation)
	}

	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}

	return ids, nil
}

// freeSlug derives the slug for title and makes sure no article other than
// selfID already uses it.
func (as *ArticleService) freeSlug(ctx context.Context, title, selfID string) (string, error) {
	s := slug.Make(title)
	if s == "" {
		return "", fmt.Errorf("title %q has no slug characters: %w", title, apperr.ErrValidation)
	}

	if models.IsID(s) {
		return "", fmt.Errorf("slug %q of title %q looks like an article id: %w", s, title, apperr.ErrValidation)
	}

	existing, err := as.articleRepo.GetArticleBySlug(ctx, s)
	switch {
	case err == nil && existing.ID != selfID:
		return "", fmt.Errorf("slug %q is taken: %w", s, apperr.ErrConflict)
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return "", fmt.Errorf("get article by slug error: %w", err)
	}

	return s, nil
}

func translate(err error, where string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
	}

	return fmt.Errorf("%s: %w", where, err)
}
