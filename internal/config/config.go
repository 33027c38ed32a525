package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultListenAddr is the default UDP address the dedicated server binds.
	DefaultListenAddr = ":7777"
	// DefaultConnTimeout is how long a peer may stay silent before its Conn
	// is considered closed.
	DefaultConnTimeout = 10 * time.Second
	// DefaultPingInterval is the client heartbeat cadence.
	DefaultPingInterval = 1 * time.Second
	// DefaultTickRate is the number of simulation ticks per second.
	DefaultTickRate = 20
	// DefaultRingCapacity bounds the in-memory snapshot ring.
	DefaultRingCapacity = 32
	// DefaultBotTargetPopulation is how many AI drivers the reconciler
	// maintains when no humans have joined yet.
	DefaultBotTargetPopulation = 0

	// DefaultLogLevel controls verbosity for server logs.
	DefaultLogLevel = "info"
	// DefaultLogPath is where structured logs are written.
	DefaultLogPath = "dogfights.log"
	// DefaultLogMaxSizeMB caps the size of a single log file before rotation.
	DefaultLogMaxSizeMB = 100
	// DefaultLogMaxBackups limits retained rotated log files.
	DefaultLogMaxBackups = 10
	// DefaultLogMaxAgeDays controls how long rotated log files are kept on disk.
	DefaultLogMaxAgeDays = 7
	// DefaultLogCompress toggles gzip compression for rotated log files.
	DefaultLogCompress = true
)

// Config captures all runtime tunables for the dedicated server and its
// local/remote CLI entry points.
type Config struct {
	ListenAddr          string
	ConnTimeout         time.Duration
	PingInterval        time.Duration
	TickRate            int
	RingCapacity         int
	WorldSpecPath       string
	BotTargetPopulation int
	Logging             LoggingConfig
}

// TimeStep is the fixed simulation step implied by TickRate.
func (c *Config) TimeStep() float32 {
	return 1.0 / float32(c.TickRate)
}

// LoggingConfig captures structured logging configuration options.
type LoggingConfig struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Load reads server configuration from environment variables, applying sane
// defaults and returning descriptive errors for invalid overrides.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:          getString("DOGFIGHTS_LISTEN_ADDR", DefaultListenAddr),
		ConnTimeout:         DefaultConnTimeout,
		PingInterval:        DefaultPingInterval,
		TickRate:            DefaultTickRate,
		RingCapacity:        DefaultRingCapacity,
		WorldSpecPath:       strings.TrimSpace(os.Getenv("DOGFIGHTS_WORLD_SPEC_PATH")),
		BotTargetPopulation: DefaultBotTargetPopulation,
		Logging: LoggingConfig{
			Level:      strings.TrimSpace(getString("DOGFIGHTS_LOG_LEVEL", DefaultLogLevel)),
			Path:       strings.TrimSpace(getString("DOGFIGHTS_LOG_PATH", DefaultLogPath)),
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
			Compress:   DefaultLogCompress,
		},
	}

	var problems []string

	if raw := strings.TrimSpace(os.Getenv("DOGFIGHTS_CONN_TIMEOUT")); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil || duration <= 0 {
			problems = append(problems, fmt.Sprintf("DOGFIGHTS_CONN_TIMEOUT must be a positive duration, got %q", raw))
		} else {
			cfg.ConnTimeout = duration
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DOGFIGHTS_PING_INTERVAL")); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil || duration <= 0 {
			problems = append(problems, fmt.Sprintf("DOGFIGHTS_PING_INTERVAL must be a positive duration, got %q", raw))
		} else {
			cfg.PingInterval = duration
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DOGFIGHTS_TICK_RATE")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("DOGFIGHTS_TICK_RATE must be a positive integer, got %q", raw))
		} else {
			cfg.TickRate = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DOGFIGHTS_RING_CAPACITY")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("DOGFIGHTS_RING_CAPACITY must be a positive integer, got %q", raw))
		} else {
			cfg.RingCapacity = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DOGFIGHTS_BOT_TARGET")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("DOGFIGHTS_BOT_TARGET must be a non-negative integer, got %q", raw))
		} else {
			cfg.BotTargetPopulation = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DOGFIGHTS_LOG_MAX_SIZE_MB")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("DOGFIGHTS_LOG_MAX_SIZE_MB must be a positive integer, got %q", raw))
		} else {
			cfg.Logging.MaxSizeMB = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DOGFIGHTS_LOG_MAX_BACKUPS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("DOGFIGHTS_LOG_MAX_BACKUPS must be a non-negative integer, got %q", raw))
		} else {
			cfg.Logging.MaxBackups = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DOGFIGHTS_LOG_MAX_AGE_DAYS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("DOGFIGHTS_LOG_MAX_AGE_DAYS must be a non-negative integer, got %q", raw))
		} else {
			cfg.Logging.MaxAgeDays = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("DOGFIGHTS_LOG_COMPRESS")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("DOGFIGHTS_LOG_COMPRESS must be a boolean value, got %q", raw))
		} else {
			cfg.Logging.Compress = value
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf(strings.Join(problems, "; "))
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
