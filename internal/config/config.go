package config

import (
	"os"
	"strconv"
	"time"

	"crypto_miner/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	BotToken    string
	BotUsername string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// AllowAnonymous lets clients outside the Telegram container play with a
	// locally generated identity.
	AllowAnonymous bool

	// Rate limits
	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration
	UserRateLimit  int
	UserRateWindow time.Duration

	// CacheTTL bounds how long a fallback copy of a game state lives.
	CacheTTL time.Duration

	// TickInterval drives the websocket accrual ticker.
	TickInterval time.Duration

	// RewardInterval drives the pending reward processor.
	RewardInterval time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment, falling back to .env.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		logger.Fatal("BOT_TOKEN is not set")
	}

	botUsername := os.Getenv("BOT_USERNAME")
	if botUsername == "" {
		botUsername = "CryptoMinerBot"
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		BotToken:    botToken,
		BotUsername: botUsername,
		JWTSecret:   jwtSecret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		AllowAnonymous: os.Getenv("ALLOW_ANONYMOUS") == "true",

		APIRateLimit:   envInt("API_RATE_LIMIT", 60),
		APIRateWindow:  envSeconds("API_RATE_WINDOW_SECONDS", time.Minute),
		AuthRateLimit:  envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow: envSeconds("AUTH_RATE_WINDOW_SECONDS", time.Minute),
		UserRateLimit:  envInt("USER_RATE_LIMIT", 120),
		UserRateWindow: envSeconds("USER_RATE_WINDOW_SECONDS", time.Minute),

		CacheTTL:       envSeconds("CACHE_TTL_SECONDS", 24*time.Hour),
		TickInterval:   envSeconds("TICK_INTERVAL_SECONDS", time.Second),
		RewardInterval: envSeconds("REWARD_INTERVAL_SECONDS", time.Hour),

		LogLevel: os.Getenv("LOG_LEVEL"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",
	}
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envSeconds(name string, def time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
