package articlerepo

import "errors"

var (
	ErrNotFound      = errors.New("article not found")
	ErrAlreadyExists = errors.New("article already exists")
	ErrNoAuthor      = errors.New("article author does not exist")
)
