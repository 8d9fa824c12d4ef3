package tagservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/apperr"
	"github.com/Leopold1975/blog_platform/internal/blog/domain/models"
	"github.com/Leopold1975/blog_platform/internal/blog/repository/tagrepo"
)

type TagService struct {
	tagRepo Repository
}

type Repository interface {
	CreateTag(context.Context, string) (models.Tag, error)
	ListTags(context.Context) ([]models.Tag, error)
	GetTag(context.Context, string) (models.Tag, error)
	UpdateTag(context.Context, string, string) (models.Tag, error)
	DeleteTag(context.Context, string) error
}

func New(tagRepo Repository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

func (ts *TagService) Create(ctx context.Context, name string) (models.Tag, error) {
	name, err := normalize(name)
	if err != nil {
		return models.Tag{}, err
	}

	t, err := ts.tagRepo.CreateTag(ctx, name)
	if err != nil {
		return models.Tag{}, translate(err, "create tag error")
	}

	return t, nil
}

// FindAll returns the names of all tags.
func (ts *TagService) FindAll(ctx context.Context) ([]string, error) {
	tags, err := ts.tagRepo.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags error: %w", err)
	}

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}

	return names, nil
}

func (ts *TagService) FindOne(ctx context.Context, id string) (models.Tag, error) {
	t, err := ts.tagRepo.GetTag(ctx, id)
	if err != nil {
		return models.Tag{}, translate(err, "get tag error")
	}

	return t, nil
}

func (ts *TagService) Update(ctx context.Context, id, name string) (models.Tag, error) {
	name, err := normalize(name)
	if err != nil {
		return models.Tag{}, err
	}

	t, err := ts.tagRepo.UpdateTag(ctx, id, name)
	if err != nil {
		return models.Tag{}, translate(err, "update tag error")
	}

	return t, nil
}

func (ts *TagService) Remove(ctx context.Context, id string) error {
	if err := ts.tagRepo.DeleteTag(ctx, id); err != nil {
		return translate(err, "delete tag error")
	}

	return nil
}

func normalize(name string) (string, error) {
	name = models.TagName(name)
	if name == "" {
		return "", fmt.Errorf("tag name is empty: %w", apperr.ErrValidation)
	}

	return name, nil
}

func translate(err error, where string) error {
	switch {
	case errors.Is(err, tagrepo.ErrNotFound):
		return fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
	case errors.Is(err, tagrepo.ErrAlreadyExists):
		return fmt.Errorf("%w: %w", apperr.ErrConflict, err)
	}

	return fmt.Errorf("%s: %w", where, err)
}
