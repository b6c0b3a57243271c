package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
	"github.com/aliskhannn/quiz-engine/internal/engine"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "local" {
		t.Errorf("Expected env local, got %q", cfg.Env)
	}
	if cfg.Mode() != entities.LivesPreserve {
		t.Errorf("Expected preserve mode, got %q", cfg.Mode())
	}
	if *cfg.EngineDelays() != engine.DefaultDelays() {
		t.Errorf("Expected default delays, got %+v", *cfg.EngineDelays())
	}
	if cfg.HTTP.Port != 8080 || cfg.HTTP.Bind != "0.0.0.0" {
		t.Errorf("Unexpected HTTP config: %+v", cfg.HTTP)
	}
	if cfg.SessionTimeout != time.Hour {
		t.Errorf("Expected 1h session timeout, got %s", cfg.SessionTimeout)
	}
	if cfg.DB.MaxConnLifetime != 30*time.Second {
		t.Errorf("Expected 30s connection lifetime, got %s", cfg.DB.MaxConnLifetime)
	}

	if _, err := cfg.Telegram(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Errorf("Expected missing token error, got %v", err)
	}
	if _, err := cfg.DB.DSN(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Errorf("Expected missing DSN error, got %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LIVES_MODE", "reset")
	t.Setenv("DELAYS_ADVANCE", "900ms")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TELEGRAM_API_TOKEN", "123:abc")
	t.Setenv("DATABASE_URL", "postgres://quiz@localhost/quiz")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected env production, got %q", cfg.Env)
	}
	if cfg.Mode() != entities.LivesReset {
		t.Errorf("Expected reset mode, got %q", cfg.Mode())
	}
	if cfg.Delays.Advance != 900*time.Millisecond {
		t.Errorf("Expected 900ms advance delay, got %s", cfg.Delays.Advance)
	}
	if cfg.Delays.RevealAdvance != 2200*time.Millisecond {
		t.Errorf("Expected default reveal delay, got %s", cfg.Delays.RevealAdvance)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.HTTP.Port)
	}
	if token, err := cfg.Telegram(); err != nil || token != "123:abc" {
		t.Errorf("Expected token, got %q (%v)", token, err)
	}
	if dsn, err := cfg.DB.DSN(); err != nil || dsn != "postgres://quiz@localhost/quiz" {
		t.Errorf("Expected DSN, got %q (%v)", dsn, err)
	}
}

func TestLoadKeepsZeroDelays(t *testing.T) {
	for _, key := range []string{
		"DELAYS_CROSSFADE",
		"DELAYS_REVEAL_ADVANCE",
		"DELAYS_ADVANCE",
		"DELAYS_UNLOCK",
		"DELAYS_GAME_OVER",
	} {
		t.Setenv(key, "0s")
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	delays := cfg.EngineDelays()
	if delays == nil {
		t.Fatal("Expected explicit delays, got nil")
	}
	if *delays != (engine.Delays{}) {
		t.Errorf("Expected all delays to be zero, got %+v", *delays)
	}
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("port", 8080, "")
	fs.String("lives-mode", "preserve", "")
	if err := fs.Parse([]string{"--port=7070", "--lives-mode=reset"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 7070 {
		t.Errorf("Expected port 7070, got %d", cfg.HTTP.Port)
	}
	if cfg.Mode() != entities.LivesReset {
		t.Errorf("Expected reset mode, got %q", cfg.Mode())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "lives mode", key: "LIVES_MODE", value: "forever"},
		{name: "port", key: "HTTP_PORT", value: "70000"},
		{name: "negative delay", key: "DELAYS_UNLOCK", value: "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(nil); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
