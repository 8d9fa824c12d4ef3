package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/models"
	"github.com/Leopold1975/blog_platform/internal/blog/repository/userrepo"
	"github.com/Leopold1975/blog_platform/internal/pkg/pgtools"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var userColumns = []string{"id", "email", "username", "password_hash", "bio", "image", "created_at", "updated_at"}

type UsersPostgresRepo struct {
	db   *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

func New(db *pgxpool.Pool) UsersPostgresRepo {
	return UsersPostgresRepo{
		db:   db,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (ur UsersPostgresRepo) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	query, args, err := ur.psql.Insert("users").
		Columns("email", "username", "password_hash", "bio", "image").
		Values(u.Email, u.Username, u.PasswordHash, u.Bio, u.Image).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("to sql error: %w", err)
	}

	created, err := scanUser(ur.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgtools.IsUniqueViolation(err) {
			return models.User{}, userrepo.ErrAlreadyExists
		}

		return models.User{}, fmt.Errorf("scan error: %w", err)
	}

	return created, nil
}

func (ur UsersPostgresRepo) GetUserByID(ctx context.Context, id string) (models.User, error) {
	return ur.getUser(ctx, squirrel.Eq{"id": id})
}

func (ur UsersPostgresRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return ur.getUser(ctx, squirrel.Eq{"email": email})
}

func (ur UsersPostgresRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return ur.getUser(ctx, squirrel.Eq{"username": username})
}

func (ur UsersPostgresRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	query, args, err := ur.psql.Select(userColumns...).
		From("users").
		OrderBy("created_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql error: %w", err)
	}

	rows, err := ur.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 10) //nolint:gomnd

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return users, nil
}

func (ur UsersPostgresRepo) UpdateUser(ctx context.Context, //nolint:nonamedreturns
	id string, upd models.UserUpdate,
) (u models.User, err error) {
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "update")
	}()

	ub := ur.psql.Update("users").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(userColumns, ", "))

	if upd.Email != nil {
		ub = ub.Set("email", *upd.Email)
	}

	if upd.Username != nil {
		ub = ub.Set("username", *upd.Username)
	}

	if upd.Bio != nil {
		ub = ub.Set("bio", *upd.Bio)
	}

	if upd.Image != nil {
		ub = ub.Set("image", *upd.Image)
	}

	query, args, err := ub.ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("to sql error: %w", err)
	}

	u, err = scanUser(tx.QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return models.User{}, userrepo.ErrNotFound
		case pgtools.IsUniqueViolation(err):
			return models.User{}, userrepo.ErrAlreadyExists
		}

		return models.User{}, fmt.Errorf("scan error: %w", err)
	}

	return u, nil
}

func (ur UsersPostgresRepo) DeleteUser(ctx context.Context, id string) error {
	query, args, err := ur.psql.Delete("users").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	ct, err := ur.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec error: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return userrepo.ErrNotFound
	}

	return nil
}

func (ur UsersPostgresRepo) getUser(ctx context.Context, where squirrel.Eq) (models.User, error) {
	query, args, err := ur.psql.Select(userColumns...).
		From("users").
		Where(where).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("to sql error: %w", err)
	}

	u, err := scanUser(ur.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, userrepo.ErrNotFound
		}

		return models.User{}, fmt.Errorf("scan error: %w", err)
	}

	return u, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User

	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Bio, &u.Image, &u.CreatedAt, &u.UpdatedAt)

	return u, err //nolint:wrapcheck
}
