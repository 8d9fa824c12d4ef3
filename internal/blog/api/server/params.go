package server

import (
	"fmt"
	"net/http"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/apperr"
	"github.com/Leopold1975/blog_platform/internal/blog/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

func pathID(r *http.Request) (string, error) {
	var id string

	err := runtime.BindStyledParameterWithLocation("simple", false, "id",
		runtime.ParamLocationPath, chi.URLParam(r, "id"), &id)
	if err != nil {
		return "", fmt.Errorf("invalid id: %s: %w", err.Error(), apperr.ErrValidation)
	}

	return id, nil
}

// ArticleParams are the optional filters of GET /articles.
type ArticleParams struct {
	Author *string `form:"author,omitempty" json:"author,omitempty"`
	Tag    *string `form:"tag,omitempty"    json:"tag,omitempty"`
}

func articleFilter(r *http.Request) (models.ArticleFilter, error) {
	var params ArticleParams

	q := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "author", q, &params.Author); err != nil {
		return models.ArticleFilter{}, fmt.Errorf("invalid author: %s: %w", err.Error(), apperr.ErrValidation)
	}

	if err := runtime.BindQueryParameter("form", true, false, "tag", q, &params.Tag); err != nil {
		return models.ArticleFilter{}, fmt.Errorf("invalid tag: %s: %w", err.Error(), apperr.ErrValidation)
	}

	var f models.ArticleFilter

	if params.Author != nil {
		f.Author = *params.Author
	}

	if params.Tag != nil {
		f.Tag = *params.Tag
	}

	return f, nil
}
