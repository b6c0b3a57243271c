package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/quiz-engine/internal/config"
)

// New builds the application logger for the configured environment.
func New(cfg *config.Config) (*zap.Logger, error) {
	switch cfg.Env {
	case "production":
		return zap.NewProduction()
	case "test":
		return zap.NewNop(), nil
	}

	devCfg := zap.NewDevelopmentConfig()
	devCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	devCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return devCfg.Build()
}
