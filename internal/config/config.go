package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// App
	Env string // dev / staging / prod

	// HTTP
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Security
	BcryptCost int
	// AdminSecret guards the administrative HTTP routes (shared secret header).
	AdminSecret string

	// Infrastructure
	DBAddr    string
	DBDebug   bool
	DBReset   bool // drop + recreate schema on boot (dev only, destructive)
	RedisAddr string
	RedisDB   int
	RabbitURL string

	RabbitExchange string

	// Login rate limiting (transport-level, on top of account lockout)
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

func Load() (*Config, error) {
	// .env is optional; system env always wins.
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// The service cannot operate without its credential store.
	// Fail fast instead of starting in a broken state.
	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}
	cfg.DBDebug = getBool("DB_DEBUG", false)

	cfg.DBReset = getBool("DB_RESET", false)
	if cfg.DBReset && cfg.Env != "dev" {
		return nil, fmt.Errorf("DB_RESET is only allowed with ENV=dev")
	}

	// Optional collaborators. Leaving them unset disables the feature
	// (rate limiting, event publishing) rather than failing startup.
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	rdb, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.RedisDB = rdb

	cfg.RabbitURL = os.Getenv("RABBIT_URL")
	cfg.RabbitExchange = getEnv("RABBIT_EXCHANGE", "security.events")

	cost, err := getInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}
	if cost < 10 || cost > 16 {
		return nil, fmt.Errorf("BCRYPT_COST out of range [10,16]: %d", cost)
	}
	cfg.BcryptCost = cost

	cfg.AdminSecret = getEnv("ADMIN_SECRET", "")
	if cfg.AdminSecret == "" && cfg.Env == "dev" {
		cfg.AdminSecret = "dev-admin-secret"
	}
	if cfg.AdminSecret == "" {
		return nil, fmt.Errorf("missing required env var: ADMIN_SECRET")
	}

	limit, err := getInt("LOGIN_RATE_LIMIT", 5)
	if err != nil {
		return nil, err
	}
	cfg.LoginRateLimit = limit

	window, err := getDuration("LOGIN_RATE_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.LoginRateWindow = window

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}
