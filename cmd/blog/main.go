package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Leopold1975/blog_platform/internal/blog/api/server"
	"github.com/Leopold1975/blog_platform/internal/blog/app"
	"github.com/Leopold1975/blog_platform/internal/pkg/config"
	"github.com/Leopold1975/blog_platform/pkg/logger"
	"github.com/go-chi/docgen"
)

func main() {
	var (
		configPath string
		routes     bool
	)

	flag.StringVar(&configPath, "config", "", "path to configuration file")
	flag.BoolVar(&routes, "routes", false, "print route documentation as JSON and exit")
	flag.Parse()

	if routes {
		s := server.New(config.Server{}, server.Services{}, logger.Nop()) //nolint:exhaustruct
		fmt.Println(docgen.JSONRoutesDoc(s.Router()))

		return
	}

	cfg, err := config.New(configPath)
	if err != nil {
		log.Fatal(err)
	}

	interruptSignals := []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP}

	ctx, cancel := signal.NotifyContext(context.Background(), interruptSignals...)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Println(err)

		return
	}

	a.Run(ctx)
}
