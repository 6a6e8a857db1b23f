package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/comitanigiacomo/kanso-balance/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-balance/internal/core/domain"
)

var (
	ErrInvalidTimezone    = errors.New("invalid APP_TIMEZONE")
	ErrInvalidScoringMode = errors.New("invalid SCORING_MODE (must be tasks or blended)")
	ErrInvalidTimeout     = errors.New("invalid SHUTDOWN_TIMEOUT")
	ErrInvalidRateLimit   = errors.New("invalid rate limit settings")
	ErrInvalidInterval    = errors.New("invalid SNAPSHOT_INTERVAL")
)

type Config struct {
	Port            string
	GinMode         string
	Timezone        string
	WeekStart       time.Weekday
	CategorySet     string
	CategoryFile    string
	ScoringMode     string
	ShutdownTimeout time.Duration

	// RedisAddr switches the rate limiter to a shared Redis counter.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// RateLimit is requests per client and window; 0 disables limiting.
	RateLimit  int
	RateWindow time.Duration

	// SnapshotInterval refreshes the current month's snapshot in the
	// background; 0 turns the worker off.
	SnapshotInterval time.Duration
}

func Default() Config {
	return Config{
		Port:            "8080",
		Timezone:        "Local",
		WeekStart:       time.Monday,
		CategorySet:     domain.CatalogDefault,
		ScoringMode:     domain.ScoringModeTasks,
		ShutdownTimeout: 5 * time.Second,
		RateLimit:       100,
		RateWindow:      time.Minute,
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string) (int, bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return v, true, nil
}

func getEnvDuration(key string) (time.Duration, bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return d, true, nil
}

// Load reads the optional env files, then the process environment.
// Variables already set in the environment win over the files.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
	return FromEnv(Default())
}

func FromEnv(base Config) (Config, error) {
	cfg := base
	cfg.Port = getEnv("PORT", base.Port)
	cfg.GinMode = getEnv("GIN_MODE", base.GinMode)
	cfg.Timezone = getEnv("APP_TIMEZONE", base.Timezone)
	cfg.CategorySet = strings.ToLower(getEnv("CATEGORY_SET", base.CategorySet))
	cfg.CategoryFile = getEnv("CATEGORY_FILE", base.CategoryFile)
	cfg.ScoringMode = strings.ToLower(getEnv("SCORING_MODE", base.ScoringMode))

	if raw := getEnv("WEEK_START", ""); raw != "" {
		wd, err := calendar.ParseWeekday(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.WeekStart = wd
	}

	if d, ok, err := getEnvDuration("SHUTDOWN_TIMEOUT"); err != nil || (ok && d <= 0) {
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidTimeout, os.Getenv("SHUTDOWN_TIMEOUT"))
	} else if ok {
		cfg.ShutdownTimeout = d
	}

	cfg.RedisAddr = getEnv("REDIS_ADDR", base.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", base.RedisPassword)

	if v, ok, err := getEnvInt("REDIS_DB"); err != nil {
		return Config{}, err
	} else if ok {
		cfg.RedisDB = v
	}

	if v, ok, err := getEnvInt("RATE_LIMIT"); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidRateLimit, err)
	} else if ok {
		cfg.RateLimit = v
	}

	if d, ok, err := getEnvDuration("RATE_WINDOW"); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidRateLimit, err)
	} else if ok {
		cfg.RateWindow = d
	}

	if d, ok, err := getEnvDuration("SNAPSHOT_INTERVAL"); err != nil || (ok && d < 0) {
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidInterval, os.Getenv("SNAPSHOT_INTERVAL"))
	} else if ok {
		cfg.SnapshotInterval = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ScoringMode != domain.ScoringModeTasks && c.ScoringMode != domain.ScoringModeBlended {
		return fmt.Errorf("%w: %q", ErrInvalidScoringMode, c.ScoringMode)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.RateLimit < 0 || (c.RateLimit > 0 && c.RateWindow <= 0) {
		return fmt.Errorf("%w: %d per %s", ErrInvalidRateLimit, c.RateLimit, c.RateWindow)
	}
	if c.CategoryFile == "" {
		if _, err := domain.CatalogByName(c.CategorySet); err != nil {
			return err
		}
	}
	return nil
}

// Location resolves the zone whose midnight starts a new day.
func (c Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Timezone)
	}
	return loc, nil
}

// Catalog returns the category table: the YAML file when one is set,
// otherwise the named built-in set.
func (c Config) Catalog() (*domain.Catalog, error) {
	if c.CategoryFile != "" {
		return domain.LoadCatalogFile(c.CategoryFile)
	}
	return domain.CatalogByName(c.CategorySet)
}
