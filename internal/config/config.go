package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
	"github.com/aliskhannn/quiz-engine/internal/engine"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files, environment variables and flags.
type Config struct {
	Env              string        `mapstructure:"env"`             // current application environment (local, dev, production etc)
	ItemsPath        string        `mapstructure:"items_path"`      // path to JSON file with quiz decks
	AssetsDir        string        `mapstructure:"assets_dir"`      // directory item images are relative to
	LivesMode        string        `mapstructure:"lives_mode"`      // "preserve" or "reset"
	SessionTimeout   time.Duration `mapstructure:"session_timeout"` // idle sessions are closed after this
	Delays           Delays        `mapstructure:"delays"`          // transition delays
	HTTP             HTTP          `mapstructure:"http"`            // web server section
	DB               DB            `mapstructure:"database"`        // database configuration section
	TelegramAPIToken string        `mapstructure:"-"`               // Telegram API token loaded from environment
}

// Delays mirrors engine.Delays for configuration files.
type Delays struct {
	Crossfade     time.Duration `mapstructure:"crossfade"`
	RevealAdvance time.Duration `mapstructure:"reveal_advance"`
	Advance       time.Duration `mapstructure:"advance"`
	Unlock        time.Duration `mapstructure:"unlock"`
	GameOver      time.Duration `mapstructure:"game_over"`
}

// HTTP contains web server parameters.
type HTTP struct {
	Bind string `mapstructure:"bind"` // address to bind to
	Port int    `mapstructure:"port"` // port to listen on
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Telegram returns the bot token if it is configured.
func (c *Config) Telegram() (string, error) {
	if c.TelegramAPIToken == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return c.TelegramAPIToken, nil
}

// Mode returns the parsed lives mode.
func (c *Config) Mode() entities.LivesMode {
	mode, err := entities.ParseLivesMode(c.LivesMode)
	if err != nil {
		return entities.LivesPreserve
	}
	return mode
}

// EngineDelays converts the configured delays. Zero delays are kept as they are.
func (c *Config) EngineDelays() *engine.Delays {
	d := engine.Delays(c.Delays)
	return &d
}

// Validate checks values that viper cannot check while decoding.
func (c *Config) Validate() error {
	if _, err := entities.ParseLivesMode(c.LivesMode); err != nil {
		return err
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.HTTP.Port)
	}
	for name, d := range map[string]time.Duration{
		"crossfade":      c.Delays.Crossfade,
		"reveal_advance": c.Delays.RevealAdvance,
		"advance":        c.Delays.Advance,
		"unlock":         c.Delays.Unlock,
		"game_over":      c.Delays.GameOver,
	} {
		if d < 0 {
			return fmt.Errorf("negative delay %s: %s", name, d)
		}
	}
	if c.SessionTimeout < 0 {
		return fmt.Errorf("negative session timeout: %s", c.SessionTimeout)
	}
	return nil
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"env":             "env",
	"items":           "items_path",
	"assets":          "assets_dir",
	"lives-mode":      "lives_mode",
	"session-timeout": "session_timeout",
	"bind":            "http.bind",
	"port":            "http.port",
}

// Load reads configuration from a .env file, config files, environment variables and flags.
// flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// Load .env into the process environment if present.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	defaults := engine.DefaultDelays()
	v.SetDefault("env", "local")
	v.SetDefault("items_path", "assets/data/items.json")
	v.SetDefault("assets_dir", "assets")
	v.SetDefault("lives_mode", string(entities.LivesPreserve))
	v.SetDefault("session_timeout", "60m")
	v.SetDefault("delays.crossfade", defaults.Crossfade)
	v.SetDefault("delays.reveal_advance", defaults.RevealAdvance)
	v.SetDefault("delays.advance", defaults.Advance)
	v.SetDefault("delays.unlock", defaults.Unlock)
	v.SetDefault("delays.game_over", defaults.GameOver)
	v.SetDefault("http.bind", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Flags set on the command line take precedence over everything else.
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
