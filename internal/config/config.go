package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"clubdesk/internal/domain"
)

const (
	defaultHTTPAddr    = ":8080"
	defaultDatabaseURL = "clubdesk.db"
	defaultJWTSecret   = "change-me-jwt-secret"
	defaultJWTTTL      = "24h"

	defaultDayStart = "09:00"
	defaultDayEnd   = "23:00"

	defaultWorkers         = "Laura,Marco"
	defaultVacationDaysCap = "23"

	defaultSpaces = `[
		{"id":"court-1","name":"Court 1"},
		{"id":"court-2","name":"Court 2"},
		{"id":"padel","name":"Padel"},
		{"id":"multi-room","name":"Multipurpose Room"}
	]`

	// Most inclusive first: matching consumes space ids, so the whole-club
	// group must be tried before the two-court group.
	defaultSpaceGroups = `[
		{"label":"Whole Club","space_ids":["court-1","court-2","padel","multi-room"]},
		{"label":"Court 1 and 2","space_ids":["court-1","court-2"]}
	]`
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Operating window of the half-hour booking grid.
	DayStart string
	DayEnd   string

	Spaces      []domain.Space
	SpaceGroups []domain.SpaceGroup

	// Two-worker pool the shift rotation alternates between.
	Workers         []string
	VacationDaysCap int

	WifiSSID     string
	WifiPassword string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB, err = parseIntEnv("REDIS_DB", "0")
	if err != nil {
		return nil, err
	}

	cfg.DayStart = getEnv("DAY_START", defaultDayStart)
	cfg.DayEnd = getEnv("DAY_END", defaultDayEnd)

	if err := parseJSONEnv("SPACES", defaultSpaces, &cfg.Spaces); err != nil {
		return nil, err
	}
	if err := parseJSONEnv("SPACE_GROUPS", defaultSpaceGroups, &cfg.SpaceGroups); err != nil {
		return nil, err
	}

	for _, w := range strings.Split(getEnv("WORKERS", defaultWorkers), ",") {
		if w = strings.TrimSpace(w); w != "" {
			cfg.Workers = append(cfg.Workers, w)
		}
	}

	cfg.VacationDaysCap, err = parseIntEnv("VACATION_DAYS_CAP", defaultVacationDaysCap)
	if err != nil {
		return nil, err
	}

	cfg.WifiSSID = strings.TrimSpace(os.Getenv("WIFI_SSID"))
	cfg.WifiPassword = os.Getenv("WIFI_PASSWORD")

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config: env=%s spaces=%d groups=%d workers=%d", cfg.AppEnv, len(cfg.Spaces), len(cfg.SpaceGroups), len(cfg.Workers))

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if len(cfg.Spaces) == 0 {
		return fmt.Errorf("SPACES must define at least one space")
	}
	seen := map[string]bool{}
	for _, s := range cfg.Spaces {
		if s.ID == "" || s.Name == "" {
			return fmt.Errorf("every space needs an id and a name")
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate space id %q", s.ID)
		}
		seen[s.ID] = true
	}
	for _, g := range cfg.SpaceGroups {
		if g.Label == "" || len(g.SpaceIDs) == 0 {
			return fmt.Errorf("every space group needs a label and space ids")
		}
		for _, id := range g.SpaceIDs {
			if !seen[id] {
				return fmt.Errorf("space group %q references unknown space %q", g.Label, id)
			}
		}
	}
	if len(cfg.Workers) != 2 {
		return fmt.Errorf("WORKERS must name exactly two workers")
	}
	if cfg.VacationDaysCap <= 0 {
		return fmt.Errorf("VACATION_DAYS_CAP must be > 0")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if isProdLike(cfg.AppEnv) && cfg.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}

func parseIntEnv(key, fallback string) (int, error) {
	raw := getEnv(key, fallback)
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, raw, err)
	}
	return n, nil
}

func parseJSONEnv(key, fallback string, dst any) error {
	raw := getEnv(key, fallback)
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("%s: invalid JSON: %w", key, err)
	}
	return nil
}
