package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/quiz-engine/internal/delivery/telegram"
)

var commands = []tgbotapi.BotCommand{
	{
		Command:     "start",
		Description: "Start the bot",
	},
	{
		Command:     "play",
		Description: "Pick a deck and play (usage: /play logos)",
	},
	{
		Command:     "decks",
		Description: "List decks",
	},
	{
		Command:     "lives",
		Description: "Show remaining lives",
	},
	{
		Command:     "help",
		Description: "How to play",
	},
}

func runBot(ctx context.Context, flags *pflag.FlagSet) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, flags)
	if err != nil {
		return err
	}
	defer a.close()

	token, err := a.cfg.Telegram()
	if err != nil {
		return err
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return err
	}
	bot.Debug = a.cfg.Env != "production"

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		a.logger.Warn("failed to set bot commands", zap.Error(err))
	}

	a.logger.Info("authorized on account", zap.String("username", bot.Self.UserName))

	handler := telegram.NewHandler(bot, a.logger, a.games, a.cfg.AssetsDir)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.games.Run(ctx)
		return nil
	})
	g.Go(func() error {
		if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	a.logger.Info("shutdown signal received")
	return nil
}
