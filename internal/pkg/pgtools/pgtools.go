package pgtools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/blog_platform/internal/pkg/config"
	"github.com/Leopold1975/blog_platform/migrations"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // driver for migrations
	"github.com/pressly/goose/v3"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"

	maxPingDelay = 10 * time.Second
)

// Connect creates a pool and waits until the database answers a ping,
// waiting one second longer after every failed attempt and giving up once the
// delay exceeds ten seconds.
func Connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	db, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("cannot create db pool error: %w", err)
	}

	delay := time.Second

	for {
		err := db.Ping(ctx)
		if err == nil {
			return db, nil
		}

		if delay > maxPingDelay {
			db.Close()

			return nil, fmt.Errorf("cannot ping db error: %w", err)
		}

		t := time.NewTimer(delay)

		select {
		case <-ctx.Done():
			t.Stop()
			db.Close()

			return nil, fmt.Errorf("context error: %w", ctx.Err())
		case <-t.C:
		}

		delay += time.Second
	}
}

// New connects to Postgres and brings the schema to cfg.Version
// (0 means the latest migration).
func New(ctx context.Context, cfg config.PostgresDB) (*pgxpool.Pool, error) {
	db, err := Connect(ctx, cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect to db error: %w", err)
	}

	if err := ApplyMigration(cfg); err != nil {
		db.Close()

		return nil, fmt.Errorf("apply migration error: %w", err)
	}

	return db, nil
}

func ApplyMigration(cfg config.PostgresDB) error {
	migrationsDir := "."
	defaultVersion := 0

	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect error: %w", err)
	}

	dbM, err := goose.OpenDBWithDriver("pgx", cfg.MigrationConnString())
	if err != nil {
		return fmt.Errorf("goose open pgx db error: %w", err)
	}
	defer dbM.Close()

	if cfg.Reload {
		if err := goose.DownTo(dbM, migrationsDir, int64(defaultVersion)); err != nil {
			return fmt.Errorf("goose down error: %w", err)
		}
	}

	if cfg.Version == 0 {
		if err := goose.Up(dbM, migrationsDir); err != nil {
			return fmt.Errorf("goose up error: %w", err)
		}

		return nil
	}

	if err := goose.UpTo(dbM, migrationsDir, int64(cfg.Version)); err != nil {
		return fmt.Errorf("goose up error: %w", err)
	}

	return nil
}

func CommitOrRollback(ctx context.Context, tx pgx.Tx, err error, where string) error {
	if err == nil {
		if errT := tx.Commit(ctx); errT != nil {
			err = fmt.Errorf("commit error: %w", errT)
		}
	} else {
		if errT := tx.Rollback(ctx); errT != nil {
			err = fmt.Errorf("%s error: %w rollback error: %w", where, err, errT)
		} else {
			err = fmt.Errorf("%s error: %w", where, err)
		}
	}

	return err
}

// IsUniqueViolation reports whether err is a unique constraint failure.
func IsUniqueViolation(err error) bool {
	target := new(pgconn.PgError)
	if errors.As(err, &target) {
		return target.Code == uniqueViolation
	}

	return false
}

// IsForeignKeyViolation reports whether err is a foreign key constraint failure.
func IsForeignKeyViolation(err error) bool {
	target := new(pgconn.PgError)
	if errors.As(err, &target) {
		return target.Code == foreignKeyViolation
	}

	return false
}
