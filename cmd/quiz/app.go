package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-engine/internal/config"
	"github.com/aliskhannn/quiz-engine/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/quiz-engine/internal/infra/postgres/repository"
	"github.com/aliskhannn/quiz-engine/internal/logger"
	"github.com/aliskhannn/quiz-engine/internal/repository"
	"github.com/aliskhannn/quiz-engine/internal/service"
	"github.com/aliskhannn/quiz-engine/internal/storage"
	"github.com/aliskhannn/quiz-engine/internal/timer"
)

// app holds what the web server and the bot share.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	games  *service.GameService
	pool   *pgxpool.Pool // nil when lives are kept in memory
}

func newApp(ctx context.Context, flags *pflag.FlagSet) (*app, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	// Initialize repositories.
	itemRepo, err := repository.NewItemRepository(cfg.ItemsPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: log}

	var livesRepo service.LivesRepository
	if dsn, err := cfg.DB.DSN(); err == nil {
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, postgres.NewTransactor(pool)); err != nil {
			pool.Close()
			return nil, err
		}
		a.pool = pool
		livesRepo = pgrepo.NewLivesRepository(pool)
		log.Info("lives are stored in postgres")
	} else {
		livesRepo = storage.NewLivesStorage()
		log.Info("lives are stored in memory")
	}

	a.games = service.NewGameService(itemRepo, livesRepo, timer.NewReal(), service.GameConfig{
		LivesMode:      cfg.Mode(),
		Delays:         cfg.EngineDelays(),
		SessionTimeout: cfg.SessionTimeout,
	}, log)

	return a, nil
}

func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
	}
	_ = a.logger.Sync()
}
