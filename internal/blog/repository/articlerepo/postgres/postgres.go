package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/models"
	repo "github.com/Leopold1975/blog_platform/internal/blog/repository/articlerepo"
	"github.com/Leopold1975/blog_platform/internal/pkg/pgtools"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const hasTagByName = "EXISTS (SELECT 1 FROM article_tags at JOIN tags t ON t.id = at.tag_id " +
	"WHERE at.article_id = a.id AND t.name = ?)"

type ArticlesPostgresRepo struct {
	db   *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

func New(db *pgxpool.Pool) ArticlesPostgresRepo {
	return ArticlesPostgresRepo{
		db:   db,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateArticle stores the article and its tag links in one transaction and
// returns the generated id.
func (ar ArticlesPostgresRepo) CreateArticle(ctx context.Context, //nolint:nonamedreturns
	a models.Article,
) (id string, err error) {
	tx, err := ar.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "create")
	}()

	query, args, err := ar.psql.Insert("articles").
		Columns("slug", "title", "description", "body", "favorites_count", "author_id").
		Values(a.Slug, a.Title, a.Description, a.Body, a.FavoritesCount, a.AuthorID).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return "", fmt.Errorf("to sql error: %w", err)
	}

	if err = tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if pgtools.IsUniqueViolation(err) {
			return "", repo.ErrAlreadyExists
		}

		if pgtools.IsForeignKeyViolation(err) {
			return "", repo.ErrNoAuthor
		}

		return "", fmt.Errorf("scan error: %w", err)
	}

	if err = ar.linkTags(ctx, tx, id, a.TagIDs); err != nil {
		return "", err
	}

	return id, nil
}

// GetArticle returns the stored record including tag ids.
func (ar ArticlesPostgresRepo) GetArticle(ctx context.Context, id string) (models.Article, error) {
	return ar.getArticle(ctx, squirrel.Eq{"id": id})
}

func (ar ArticlesPostgresRepo) GetArticleBySlug(ctx context.Context, slug string) (models.Article, error) {
	return ar.getArticle(ctx, squirrel.Eq{"slug": slug})
}

func (ar ArticlesPostgresRepo) GetArticleView(ctx context.Context, id string) (models.ArticleView, error) {
	return ar.getView(ctx, squirrel.Eq{"a.id": id})
}

func (ar ArticlesPostgresRepo) GetArticleViewBySlug(ctx context.Context, slug string) (models.ArticleView, error) {
	return ar.getView(ctx, squirrel.Eq{"a.slug": slug})
}

// ListArticles returns views matching every non-empty filter field.
func (ar ArticlesPostgresRepo) ListArticles(ctx context.Context,
	filter models.ArticleFilter,
) ([]models.ArticleView, error) {
	sb := ar.viewQuery().OrderBy("a.created_at ASC", "a.id ASC")

	if filter.Author != "" {
		sb = sb.Where(squirrel.Eq{"u.username": filter.Author})
	}

	if filter.Tag != "" {
		sb = sb.Where(hasTagByName, filter.Tag)
	}

	return ar.queryViews(ctx, sb)
}

// UpdateArticle overwrites the article's columns. When replaceTags is set the
// tag links are replaced by a.TagIDs, otherwise they are left as they are.
func (ar ArticlesPostgresRepo) UpdateArticle(ctx context.Context, //nolint:nonamedreturns
	a models.Article, replaceTags bool,
) (err error) {
	tx, err := ar.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "update")
	}()

	query, args, err := ar.psql.Update("articles").
		Set("slug", a.Slug).
		Set("title", a.Title).
		Set("description", a.Description).
		Set("body", a.Body).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": a.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		if pgtools.IsUniqueViolation(err) {
			return repo.ErrAlreadyExists
		}

		return fmt.Errorf("exec error: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	if !replaceTags {
		return nil
	}

	query, args, err = ar.psql.Delete("article_tags").
		Where(squirrel.Eq{"article_id": a.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	if _, err = tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("exec error: %w", err)
	}

	return ar.linkTags(ctx, tx, a.ID, a.TagIDs)
}

func (ar ArticlesPostgresRepo) DeleteArticle(ctx context.Context, id string) error {
	query, args, err := ar.psql.Delete("articles").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	ct, err := ar.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec error: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (ar ArticlesPostgresRepo) linkTags(ctx context.Context, tx pgx.Tx, articleID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	ib := ar.psql.Insert("article_tags").
		Columns("article_id", "tag_id").
		Suffix("ON CONFLICT DO NOTHING")

	for _, tagID := range tagIDs {
		ib = ib.Values(articleID, tagID)
	}

	query, args, err := ib.ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("link tags error: %w", err)
	}

	return nil
}

func (ar ArticlesPostgresRepo) getArticle(ctx context.Context, where squirrel.Eq) (models.Article, error) {
	query, args, err := ar.psql.Select("id", "slug", "title", "description", "body",
		"favorites_count", "author_id", "created_at", "updated_at").
		From("articles").
		Where(where).ToSql()
	if err != nil {
		return models.Article{}, fmt.Errorf("to sql error: %w", err)
	}

	var a models.Article

	err = ar.db.QueryRow(ctx, query, args...).Scan(&a.ID, &a.Slug, &a.Title, &a.Description, &a.Body,
		&a.FavoritesCount, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Article{}, repo.ErrNotFound
		}

		return models.Article{}, fmt.Errorf("scan error: %w", err)
	}

	query, args, err = ar.psql.Select("tag_id").
		From("article_tags").
		Where(squirrel.Eq{"article_id": a.ID}).
		OrderBy("tag_id ASC").ToSql()
	if err != nil {
		return models.Article{}, fmt.Errorf("to sql error: %w", err)
	}

	rows, err := ar.db.Query(ctx, query, args...)
	if err != nil {
		return models.Article{}, fmt.Errorf("query error: %w", err)
	}

	a.TagIDs, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return models.Article{}, fmt.Errorf("collect rows error: %w", err)
	}

	return a, nil
}

func (ar ArticlesPostgresRepo) getView(ctx context.Context, where squirrel.Eq) (models.ArticleView, error) {
	views, err := ar.queryViews(ctx, ar.viewQuery().Where(where))
	if err != nil {
		return models.ArticleView{}, err
	}

	if len(views) == 0 {
		return models.ArticleView{}, repo.ErrNotFound
	}

	return views[0], nil
}

func (ar ArticlesPostgresRepo) viewQuery() squirrel.SelectBuilder {
	return ar.psql.Select("a.id", "a.slug", "a.title", "a.description", "a.body", "a.favorites_count",
		"a.author_id", "a.created_at", "a.updated_at", "u.username", "u.bio", "u.image").
		From("articles a").
		Join("users u ON u.id = a.author_id")
}

func (ar ArticlesPostgresRepo) queryViews(ctx context.Context,
	sb squirrel.SelectBuilder,
) ([]models.ArticleView, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql error: %w", err)
	}

	rows, err := ar.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	views := make([]models.ArticleView, 0, 10) //nolint:gomnd
	index := make(map[string]int)

	for rows.Next() {
		var v models.ArticleView

		err = rows.Scan(&v.ID, &v.Slug, &v.Title, &v.Description, &v.Body, &v.FavoritesCount,
			&v.AuthorID, &v.CreatedAt, &v.UpdatedAt, &v.Author.Username, &v.Author.Bio, &v.Author.Image)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}

		v.Tags = []string{}
		index[v.ID] = len(views)
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if len(views) == 0 {
		return views, nil
	}

	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}

	query, args, err = ar.psql.Select("at.article_id", "t.name").
		From("article_tags at").
		Join("tags t ON t.id = at.tag_id").
		Where(squirrel.Eq{"at.article_id": ids}).
		OrderBy("t.name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql error: %w", err)
	}

	tagRows, err := ar.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tags error: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var articleID, name string

		if err := tagRows.Scan(&articleID, &name); err != nil {
			return nil, fmt.Errorf("scan tag error: %w", err)
		}

		i := index[articleID]
		views[i].Tags = append(views[i].Tags, name)
	}

	if err := tagRows.Err(); err != nil {
		return nil, fmt.Errorf("tag rows error: %w", err)
	}

	return views, nil
}
