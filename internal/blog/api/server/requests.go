package server

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/apperr"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Username string `json:"username" validate:"required,alphanum,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateArticleRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Body        string   `json:"body"        validate:"required"`
	TagList     []string `json:"tagList"     validate:"omitempty,dive,required"`
}

type UpdateArticleRequest struct {
	Title       *string   `json:"title"       validate:"omitnil,min=1"`
	Description *string   `json:"description" validate:"omitnil,min=1"`
	Body        *string   `json:"body"        validate:"omitnil,min=1"`
	TagList     *[]string `json:"tagList"     validate:"omitnil,dive,required"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateTagRequest struct {
	Name *string `json:"name" validate:"omitnil,min=1"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email"    validate:"omitnil,email"`
	Username *string `json:"username" validate:"omitnil,alphanum,max=20"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

// decodeAndValidate reads a JSON body into dst and checks its validate tags.
// Both kinds of failure are reported as apperr.ErrValidation.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return fmt.Errorf("decode error: %s: %w", err.Error(), apperr.ErrValidation)
	}

	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%s: %w", describe(err), apperr.ErrValidation)
	}

	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))

	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))

			continue
		}

		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
	}

	return strings.Join(msgs, "; ")
}
