package models

import "time"

// Article is the stored record. TagIDs reference rows of the tags table.
type Article struct {
	ID             string
	Slug           string
	Title          string
	Description    string
	Body           string
	FavoritesCount int
	AuthorID       string
	TagIDs         []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AuthorSummary is the public part of a user embedded into article responses.
type AuthorSummary struct {
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

// ArticleView is an article as returned to clients: author summary and tag names.
type ArticleView struct {
	ID             string        `json:"id"`
	Slug           string        `json:"slug"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Body           string        `json:"body"`
	FavoritesCount int           `json:"favoritesCount"`
	AuthorID       string        `json:"authorId"`
	Author         AuthorSummary `json:"author"`
	Tags           []string      `json:"tags"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// ArticleFilter narrows ArticleView listings. Empty fields do not filter.
type ArticleFilter struct {
	Author string
	Tag    string
}
