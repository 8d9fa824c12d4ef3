package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Leopold1975/blog_platform/internal/blog/api/server"
	ar "github.com/Leopold1975/blog_platform/internal/blog/repository/articlerepo/postgres"
	ss "github.com/Leopold1975/blog_platform/internal/blog/repository/sessionstore/redis"
	tr "github.com/Leopold1975/blog_platform/internal/blog/repository/tagrepo/postgres"
	ur "github.com/Leopold1975/blog_platform/internal/blog/repository/userrepo/postgres"
	"github.com/Leopold1975/blog_platform/internal/blog/services/articleservice"
	"github.com/Leopold1975/blog_platform/internal/blog/services/authservice"
	"github.com/Leopold1975/blog_platform/internal/blog/services/tagservice"
	"github.com/Leopold1975/blog_platform/internal/blog/services/userservice"
	"github.com/Leopold1975/blog_platform/internal/pkg/config"
	"github.com/Leopold1975/blog_platform/internal/pkg/pgtools"
	"github.com/Leopold1975/blog_platform/internal/pkg/redistools"
	"github.com/Leopold1975/blog_platform/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Server interface {
	Start(context.Context) error
	Shutdown(context.Context) error
}

type BlogApp struct {
	s        Server
	db       *pgxpool.Pool
	sessions *ss.SessionStore
	lg       logger.Logger
	cfg      config.Config
}

func New(ctx context.Context, cfg config.Config) (BlogApp, error) {
	lg, err := logger.New(cfg.Logger)
	if err != nil {
		return BlogApp{}, fmt.Errorf("can't get logger error: %w", err)
	}

	db, err := pgtools.New(ctx, cfg.PostgresDB)
	if err != nil {
		return BlogApp{}, fmt.Errorf("postgres initializing error: %w", err)
	}

	userRepo := ur.New(db)
	tagRepo := tr.New(db)
	articleRepo := ar.New(db)

	var (
		authOpts []authservice.Option
		sessions *ss.SessionStore
	)

	if cfg.Redis.Addr != "" {
		rdb, err := redistools.New(ctx, cfg.Redis)
		if err != nil {
			db.Close()

			return BlogApp{}, fmt.Errorf("redis session store initializing error: %w", err)
		}

		store := ss.New(rdb)
		sessions = &store
		authOpts = append(authOpts, authservice.WithSessionStore(store))
	} else {
		lg.Info("redis address is not set, logout will not revoke tokens")
	}

	s := server.New(cfg.Server, server.Services{
		Auth:    authservice.New(userRepo, cfg.Auth, lg, authOpts...),
		Users:   userservice.New(userRepo, lg),
		Tags:    tagservice.New(tagRepo),
		Article: articleservice.New(articleRepo, tagRepo, lg),
	}, lg)

	return BlogApp{
		s:        s,
		db:       db,
		sessions: sessions,
		lg:       lg,
		cfg:      cfg,
	}, nil
}

func (ba *BlogApp) Run(ctx context.Context) {
	ba.lg.Infof("STARTED SERVER ON %s", ba.cfg.Server.Addr)

	if err := ba.s.Start(ctx); err != nil {
		ba.lg.Errorf("server error: %s", err.Error())
	}

	ctxS, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
	defer cancel()

	if err := ba.Stop(ctxS); err != nil { //nolint:contextcheck
		ba.lg.Errorf("shutdown error: %s", err.Error())
	}
}

// Stop releases the store connections. The HTTP server is already down by
// the time Run calls it.
func (ba *BlogApp) Stop(ctx context.Context) error {
	if ba.sessions != nil {
		if err := ba.sessions.Shutdown(ctx); err != nil {
			return fmt.Errorf("session store shutdown error: %w", err)
		}
	}

	ba.db.Close()

	ba.lg.Info("Shutdowned successfully")
	_ = ba.lg.Sync()

	return nil
}
