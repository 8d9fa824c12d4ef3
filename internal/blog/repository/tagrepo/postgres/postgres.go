package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/models"
	"github.com/Leopold1975/blog_platform/internal/blog/repository/tagrepo"
	"github.com/Leopold1975/blog_platform/internal/pkg/pgtools"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tagReturning = "RETURNING id, name, created_at, updated_at"

type TagsPostgresRepo struct {
	db   *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

func New(db *pgxpool.Pool) TagsPostgresRepo {
	return TagsPostgresRepo{
		db:   db,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (tr TagsPostgresRepo) CreateTag(ctx context.Context, name string) (models.Tag, error) {
	query, args, err := tr.psql.Insert("tags").
		Columns("name").
		Values(name).
		Suffix(tagReturning).ToSql()
	if err != nil {
		return models.Tag{}, fmt.Errorf("to sql error: %w", err)
	}

	t, err := scanTag(tr.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgtools.IsUniqueViolation(err) {
			return models.Tag{}, tagrepo.ErrAlreadyExists
		}

		return models.Tag{}, fmt.Errorf("scan error: %w", err)
	}

	return t, nil
}

func (tr TagsPostgresRepo) GetTag(ctx context.Context, id string) (models.Tag, error) {
	query, args, err := tr.psql.Select("id", "name", "created_at", "updated_at").
		From("tags").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Tag{}, fmt.Errorf("to sql error: %w", err)
	}

	t, err := scanTag(tr.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Tag{}, tagrepo.ErrNotFound
		}

		return models.Tag{}, fmt.Errorf("scan error: %w", err)
	}

	return t, nil
}

// ListTags returns every tag ordered by name.
func (tr TagsPostgresRepo) ListTags(ctx context.Context) ([]models.Tag, error) {
	return tr.listTags(ctx, nil)
}

// GetTagsByNames returns the tags whose names are in names. Unknown names are
// simply absent from the result.
func (tr TagsPostgresRepo) GetTagsByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return []models.Tag{}, nil
	}

	return tr.listTags(ctx, squirrel.Eq{"name": names})
}

func (tr TagsPostgresRepo) UpdateTag(ctx context.Context, id, name string) (models.Tag, error) {
	query, args, err := tr.psql.Update("tags").
		Set("name", name).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(tagReturning).ToSql()
	if err != nil {
		return models.Tag{}, fmt.Errorf("to sql error: %w", err)
	}

	t, err := scanTag(tr.db.QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return models.Tag{}, tagrepo.ErrNotFound
		case pgtools.IsUniqueViolation(err):
			return models.Tag{}, tagrepo.ErrAlreadyExists
		}

		return models.Tag{}, fmt.Errorf("scan error: %w", err)
	}

	return t, nil
}

func (tr TagsPostgresRepo) DeleteTag(ctx context.Context, id string) error {
	query, args, err := tr.psql.Delete("tags").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	ct, err := tr.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec error: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return tagrepo.ErrNotFound
	}

	return nil
}

func (tr TagsPostgresRepo) listTags(ctx context.Context, where squirrel.Sqlizer) ([]models.Tag, error) {
	sb := tr.psql.Select("id", "name", "created_at", "updated_at").
		From("tags").
		OrderBy("name ASC")

	if where != nil {
		sb = sb.Where(where)
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql error: %w", err)
	}

	rows, err := tr.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	tags := make([]models.Tag, 0, 10) //nolint:gomnd

	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}

		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return tags, nil
}

func scanTag(row pgx.Row) (models.Tag, error) {
	var t models.Tag

	err := row.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)

	return t, err //nolint:wrapcheck
}
