package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/gsarma/judgerelay/internal/code"
)

type Config struct {
	DatabaseURL string
	Port        string

	Judge0 code.Judge0Config
	Poll   code.PollConfig

	RedisAddr   string
	RedisStream string

	RateLimitRPS   float64
	RateLimitBurst int

	// StrictStatusCodes maps upstream failures to 502 and storage failures
	// to 500 instead of answering every failure with 400.
	StrictStatusCodes bool

	LogLevel slog.Level
}

// Load reads configuration from the environment. Values from a .env file in
// the working directory are applied first but never override variables that
// are already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	e := env{lookup: lookup}
	cfg := Config{
		DatabaseURL: e.getStr("", "DATABASE_URL", "db_url"),
		Port:        e.getStr("3000", "PORT", "port"),
		Judge0: code.Judge0Config{
			URL:          e.getStr(code.DefaultJudge0URL, "JUDGE0_URL"),
			AuthToken:    e.getStr("", "JUDGE0_AUTH_TOKEN"),
			RapidAPIKey:  e.getStr("", "RAPIDAPI_KEY"),
			RapidAPIHost: e.getStr("", "RAPIDAPI_HOST"),
			Timeout:      e.getDuration("JUDGE0_TIMEOUT", 30*time.Second),
		},
		Poll: code.PollConfig{
			Attempts:    e.getInt("JUDGE0_POLL_ATTEMPTS", code.DefaultPollConfig.Attempts),
			Interval:    e.getDuration("JUDGE0_POLL_INTERVAL", code.DefaultPollConfig.Interval),
			MaxInterval: e.getDuration("JUDGE0_POLL_MAX_INTERVAL", code.DefaultPollConfig.MaxInterval),
		},
		RedisAddr:         e.getStr("", "REDIS_ADDR"),
		RedisStream:       e.getStr("", "REDIS_STREAM"),
		RateLimitRPS:      e.getFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:    e.getInt("RATE_LIMIT_BURST", 10),
		StrictStatusCodes: e.getBool("STRICT_STATUS_CODES", false),
		LogLevel:          e.getLevel("LOG_LEVEL", slog.LevelInfo),
	}
	if len(e.errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(e.errs, "; "))
	}
	if cfg.Poll.Attempts <= 0 {
		return Config{}, fmt.Errorf("invalid configuration: JUDGE0_POLL_ATTEMPTS must be > 0")
	}
	return cfg, nil
}

type env struct {
	lookup func(string) (string, bool)
	errs   []string
}

// str returns the first non-empty value among keys, or def.
func (e *env) getStr(def string, keys ...string) string {
	for _, k := range keys {
		if v, ok := e.lookup(k); ok && v != "" {
			return v
		}
	}
	return def
}

func (e *env) getInt(key string, def int) int {
	v := e.getStr("", key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s: %q is not an integer", key, v))
		return def
	}
	return n
}

func (e *env) getFloat(key string, def float64) float64 {
	v := e.getStr("", key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		e.errs = append(e.errs, fmt.Sprintf("%s: %q is not a non-negative number", key, v))
		return def
	}
	return f
}

func (e *env) getBool(key string, def bool) bool {
	v := e.getStr("", key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s: %q is not a boolean", key, v))
		return def
	}
	return b
}

func (e *env) getDuration(key string, def time.Duration) time.Duration {
	v := e.getStr("", key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s: %q is not a duration", key, v))
		return def
	}
	return d
}

func (e *env) getLevel(key string, def slog.Level) slog.Level {
	v := e.getStr("", key)
	if v == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s: %q is not a log level", key, v))
		return def
	}
	return l
}
