// /internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrMissingToken is returned when no Discord credential is configured.
var ErrMissingToken = errors.New("DISCORD_TOKEN is not set")

type Config struct {
	DiscordToken          string   `env:"DISCORD_TOKEN"`
	DiscordActivity       string   `env:"DISCORD_ACTIVITY" envDefault:"u sleep"`
	InitSlashCommands     bool     `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	DiscordGuildBlacklist []string `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`
	RegistrationRate      float64  `env:"REGISTRATION_RATE" envDefault:"5"`
}

// New loads an optional .env file and parses the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.DiscordToken == "" {
		return nil, ErrMissingToken
	}
	if cfg.RegistrationRate <= 0 {
		return nil, fmt.Errorf("REGISTRATION_RATE must be positive, got %v", cfg.RegistrationRate)
	}
	return &cfg, nil
}
