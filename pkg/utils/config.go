package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// BotConfig holds the Telegram credential. The token comes from
// MOVIEBOT_TOKEN, or from the file named by MOVIEBOT_TOKEN_FILE.
type BotConfig struct {
	Token       string
	PollTimeout time.Duration
}

func LoadBotConfig() (BotConfig, error) {
	token := strings.TrimSpace(os.Getenv("MOVIEBOT_TOKEN"))
	if token == "" {
		if path := os.Getenv("MOVIEBOT_TOKEN_FILE"); path != "" {
			b, err := os.ReadFile(path)
			if err != nil {
				return BotConfig{}, fmt.Errorf("read token file: %w", err)
			}
			token = strings.TrimSpace(string(b))
		}
	}
	if token == "" {
		return BotConfig{}, fmt.Errorf("bot token not set (MOVIEBOT_TOKEN or MOVIEBOT_TOKEN_FILE)")
	}

	timeout := 30 * time.Second
	if raw := os.Getenv("MOVIEBOT_POLL_TIMEOUT_SECONDS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}

	return BotConfig{Token: token, PollTimeout: timeout}, nil
}

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	cfg := AuthConfig{
		JWTSecret:   os.Getenv("MOVIEBOT_JWT_SECRET"),
		JWTIssuer:   os.Getenv("MOVIEBOT_JWT_ISSUER"),
		JWTDuration: 24 * time.Hour,
	}

	if cfg.JWTSecret == "" {
		// dev default (change for demo / production)
		cfg.JWTSecret = "dev-secret-change-me"
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "moviebot"
	}

	if raw := os.Getenv("MOVIEBOT_JWT_TTL_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			cfg.JWTDuration = time.Duration(hours) * time.Hour
		}
	}

	return cfg
}
