package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mcoot/piranhas-client/internal/api"
	"github.com/mcoot/piranhas-client/internal/factory"
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/services/bot"
)

// Config holds CLI configuration
type Config struct {
	Host        string
	Port        int
	Reservation string
	Strategy    string
	MoveTimeout time.Duration
	Seed        uint64
	Seeded      bool

	StatusAddr string
	Cache      string
	RedisURL   string

	LogLevel  string
	LogFormat string
	Output    string

	// envErrs holds malformed numeric environment values by flag name
	envErrs map[string]error
}

// numericEnv lists the numeric settings read from the environment
var numericEnv = []struct{ flag, env string }{
	{"port", "PIRANHAS_PORT"},
	{"move-timeout", "PIRANHAS_MOVE_TIMEOUT"},
	{"seed", "PIRANHAS_SEED"},
}

// DefaultConfig returns a Config with defaults taken from the environment.
// Malformed numeric values keep the built-in defaults and are reported by
// Validate unless the matching flag is set.
func DefaultConfig() *Config {
	c := &Config{
		Host:        getEnvOrDefault("PIRANHAS_HOST", "127.0.0.1"),
		Port:        13050,
		Reservation: os.Getenv("PIRANHAS_RESERVATION"),
		Strategy:    getEnvOrDefault("PIRANHAS_STRATEGY", model.BotStrategyRandom),
		MoveTimeout: bot.DefaultMoveTimeout,
		StatusAddr:  os.Getenv("PIRANHAS_STATUS_ADDR"),
		Cache:       getEnvOrDefault("PIRANHAS_CACHE", factory.StorageTypeMemory),
		RedisURL:    os.Getenv("PIRANHAS_REDIS_URL"),
		LogLevel:    getEnvOrDefault("PIRANHAS_LOG_LEVEL", "info"),
		LogFormat:   getEnvOrDefault("PIRANHAS_LOG_FORMAT", "json"),
		Output:      "text",
	}

	for _, n := range numericEnv {
		v := os.Getenv(n.env)
		if v == "" {
			continue
		}
		if err := c.applyEnv(n.flag, v); err != nil {
			if c.envErrs == nil {
				c.envErrs = map[string]error{}
			}
			c.envErrs[n.flag] = fmt.Errorf("%s=%q: %w", n.env, v, err)
		}
	}
	return c
}

func (c *Config) applyEnv(flag, v string) error {
	switch flag {
	case "port":
		port, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Port = port
	case "move-timeout":
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.MoveTimeout = d
	case "seed":
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return err
		}
		c.Seed, c.Seeded = seed, true
	}
	return nil
}

// flagSet drops the environment error of a setting given on the command line
func (c *Config) flagSet(flag string) {
	delete(c.envErrs, flag)
}

// Validate checks the configuration and normalises the host
func (c *Config) Validate() error {
	c.Host = normalizeHost(c.Host)

	var errs []error
	for _, n := range numericEnv {
		if err, ok := c.envErrs[n.flag]; ok {
			errs = append(errs, err)
		}
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}
	if !model.IsValidBotStrategy(c.Strategy) {
		errs = append(errs, fmt.Errorf("%w: %q (valid: %s)", model.ErrUnknownStrategy, c.Strategy,
			strings.Join(model.ValidBotStrategies(), ", ")))
	}
	if c.MoveTimeout <= 0 {
		errs = append(errs, fmt.Errorf("move timeout must be positive, got %s", c.MoveTimeout))
	}
	switch c.Cache {
	case factory.StorageTypeMemory:
	case factory.StorageTypeRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("redis cache requires --redis-url"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache must be %q or %q, got %q",
			factory.StorageTypeMemory, factory.StorageTypeRedis, c.Cache))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("log format must be json or text, got %q", c.LogFormat))
	}
	if c.Output != "json" && c.Output != "text" {
		errs = append(errs, fmt.Errorf("output must be json or text, got %q", c.Output))
	}
	if c.StatusAddr != "" {
		if _, err := c.statusServerConfig(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// statusServerConfig turns StatusAddr into a server config
func (c *Config) statusServerConfig() (api.ServerConfig, error) {
	host, portStr, err := net.SplitHostPort(c.StatusAddr)
	if err != nil {
		return api.ServerConfig{}, fmt.Errorf("status address %q: %w", c.StatusAddr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return api.ServerConfig{}, fmt.Errorf("status address %q: bad port", c.StatusAddr)
	}

	cfg := api.DefaultServerConfig()
	cfg.Host = host
	cfg.Port = port
	return cfg, nil
}

// NewLogger builds the process logger
func NewLogger(format, level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}

func parseLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("log level must be debug, info, warn or error, got %q", level)
	}
	return lvl, nil
}

// normalizeHost maps the local host spellings onto the IPv4 loopback
func normalizeHost(host string) string {
	if host == "" || strings.EqualFold(host, "localhost") {
		return "127.0.0.1"
	}
	return host
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
