package articleservice

type CreateArticleRequest struct {
	Title       string
	Description string
	Body        string
	TagList     []string
}

// UpdateArticleRequest is a partial update. A nil TagList leaves the tags
// untouched, a non-nil one (even empty) replaces them.
type UpdateArticleRequest struct {
	Title       *string
	Description *string
	Body        *string
	TagList     *[]string
}
