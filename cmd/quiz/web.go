package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/quiz-engine/internal/delivery/web"
)

func runWeb(ctx context.Context, flags *pflag.FlagSet) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, flags)
	if err != nil {
		return err
	}
	defer a.close()

	srv := web.NewServer(a.games, web.Options{
		Bind:      a.cfg.HTTP.Bind,
		Port:      a.cfg.HTTP.Port,
		AssetsDir: a.cfg.AssetsDir,
		Version:   releaseVersion,
	}, a.logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.games.Run(ctx)
		return nil
	})
	g.Go(func() error {
		return srv.Run(ctx)
	})

	return g.Wait()
}
