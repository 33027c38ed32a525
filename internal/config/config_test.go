package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DOGFIGHTS_LISTEN_ADDR", "")
	t.Setenv("DOGFIGHTS_CONN_TIMEOUT", "")
	t.Setenv("DOGFIGHTS_PING_INTERVAL", "")
	t.Setenv("DOGFIGHTS_TICK_RATE", "")
	t.Setenv("DOGFIGHTS_RING_CAPACITY", "")
	t.Setenv("DOGFIGHTS_WORLD_SPEC_PATH", "")
	t.Setenv("DOGFIGHTS_BOT_TARGET", "")
	t.Setenv("DOGFIGHTS_LOG_LEVEL", "")
	t.Setenv("DOGFIGHTS_LOG_PATH", "")
	t.Setenv("DOGFIGHTS_LOG_MAX_SIZE_MB", "")
	t.Setenv("DOGFIGHTS_LOG_MAX_BACKUPS", "")
	t.Setenv("DOGFIGHTS_LOG_MAX_AGE_DAYS", "")
	t.Setenv("DOGFIGHTS_LOG_COMPRESS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.ListenAddr != DefaultListenAddr {
		t.Fatalf("expected default listen addr %q, got %q", DefaultListenAddr, cfg.ListenAddr)
	}
	if cfg.ConnTimeout != DefaultConnTimeout {
		t.Fatalf("expected default conn timeout %v, got %v", DefaultConnTimeout, cfg.ConnTimeout)
	}
	if cfg.PingInterval != DefaultPingInterval {
		t.Fatalf("expected default ping interval %v, got %v", DefaultPingInterval, cfg.PingInterval)
	}
	if cfg.TickRate != DefaultTickRate {
		t.Fatalf("expected default tick rate %d, got %d", DefaultTickRate, cfg.TickRate)
	}
	if cfg.RingCapacity != DefaultRingCapacity {
		t.Fatalf("expected default ring capacity %d, got %d", DefaultRingCapacity, cfg.RingCapacity)
	}
	if cfg.WorldSpecPath != "" {
		t.Fatalf("expected empty world spec path by default, got %q", cfg.WorldSpecPath)
	}
	if cfg.BotTargetPopulation != DefaultBotTargetPopulation {
		t.Fatalf("expected default bot target %d, got %d", DefaultBotTargetPopulation, cfg.BotTargetPopulation)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Fatalf("expected default log level %q, got %q", DefaultLogLevel, cfg.Logging.Level)
	}
	if cfg.Logging.Path != DefaultLogPath {
		t.Fatalf("expected default log path %q, got %q", DefaultLogPath, cfg.Logging.Path)
	}
	if cfg.Logging.MaxSizeMB != DefaultLogMaxSizeMB {
		t.Fatalf("expected default log max size %d, got %d", DefaultLogMaxSizeMB, cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != DefaultLogMaxBackups {
		t.Fatalf("expected default log max backups %d, got %d", DefaultLogMaxBackups, cfg.Logging.MaxBackups)
	}
	if cfg.Logging.MaxAgeDays != DefaultLogMaxAgeDays {
		t.Fatalf("expected default log max age %d, got %d", DefaultLogMaxAgeDays, cfg.Logging.MaxAgeDays)
	}
	if cfg.Logging.Compress != DefaultLogCompress {
		t.Fatalf("expected default log compress %t, got %t", DefaultLogCompress, cfg.Logging.Compress)
	}
	if got, want := cfg.TimeStep(), float32(1.0/DefaultTickRate); got != want {
		t.Fatalf("TimeStep() = %v, want %v", got, want)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DOGFIGHTS_LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("DOGFIGHTS_CONN_TIMEOUT", "30s")
	t.Setenv("DOGFIGHTS_PING_INTERVAL", "2s")
	t.Setenv("DOGFIGHTS_TICK_RATE", "60")
	t.Setenv("DOGFIGHTS_RING_CAPACITY", "64")
	t.Setenv("DOGFIGHTS_WORLD_SPEC_PATH", "/etc/dogfights/catalog.yaml")
	t.Setenv("DOGFIGHTS_BOT_TARGET", "6")
	t.Setenv("DOGFIGHTS_LOG_LEVEL", "debug")
	t.Setenv("DOGFIGHTS_LOG_PATH", "/var/log/dogfights.log")
	t.Setenv("DOGFIGHTS_LOG_MAX_SIZE_MB", "512")
	t.Setenv("DOGFIGHTS_LOG_MAX_BACKUPS", "4")
	t.Setenv("DOGFIGHTS_LOG_MAX_AGE_DAYS", "2")
	t.Setenv("DOGFIGHTS_LOG_COMPRESS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.ListenAddr != "127.0.0.1:9000" {
		t.Fatalf("unexpected listen addr: %q", cfg.ListenAddr)
	}
	if cfg.ConnTimeout != 30*time.Second {
		t.Fatalf("expected conn timeout 30s, got %v", cfg.ConnTimeout)
	}
	if cfg.PingInterval != 2*time.Second {
		t.Fatalf("expected ping interval 2s, got %v", cfg.PingInterval)
	}
	if cfg.TickRate != 60 {
		t.Fatalf("expected tick rate 60, got %d", cfg.TickRate)
	}
	if cfg.RingCapacity != 64 {
		t.Fatalf("expected ring capacity 64, got %d", cfg.RingCapacity)
	}
	if cfg.WorldSpecPath != "/etc/dogfights/catalog.yaml" {
		t.Fatalf("unexpected world spec path %q", cfg.WorldSpecPath)
	}
	if cfg.BotTargetPopulation != 6 {
		t.Fatalf("expected bot target 6, got %d", cfg.BotTargetPopulation)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected overridden log level debug, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Path != "/var/log/dogfights.log" {
		t.Fatalf("unexpected log path %q", cfg.Logging.Path)
	}
	if cfg.Logging.MaxSizeMB != 512 {
		t.Fatalf("expected log max size 512, got %d", cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != 4 {
		t.Fatalf("expected log max backups 4, got %d", cfg.Logging.MaxBackups)
	}
	if cfg.Logging.MaxAgeDays != 2 {
		t.Fatalf("expected log max age 2, got %d", cfg.Logging.MaxAgeDays)
	}
	if cfg.Logging.Compress {
		t.Fatalf("expected log compression disabled")
	}
	if got, want := cfg.TimeStep(), float32(1.0/60.0); got != want {
		t.Fatalf("TimeStep() = %v, want %v", got, want)
	}
}

func TestLoadReturnsValidationErrors(t *testing.T) {
	t.Setenv("DOGFIGHTS_CONN_TIMEOUT", "abc")
	t.Setenv("DOGFIGHTS_PING_INTERVAL", "-1s")
	t.Setenv("DOGFIGHTS_TICK_RATE", "0")
	t.Setenv("DOGFIGHTS_RING_CAPACITY", "-1")
	t.Setenv("DOGFIGHTS_BOT_TARGET", "-2")
	t.Setenv("DOGFIGHTS_LOG_MAX_SIZE_MB", "-1")
	t.Setenv("DOGFIGHTS_LOG_MAX_BACKUPS", "-2")
	t.Setenv("DOGFIGHTS_LOG_MAX_AGE_DAYS", "-3")
	t.Setenv("DOGFIGHTS_LOG_COMPRESS", "notabool")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error from invalid configuration, got nil")
	}

	for _, want := range []string{
		"DOGFIGHTS_CONN_TIMEOUT",
		"DOGFIGHTS_PING_INTERVAL",
		"DOGFIGHTS_TICK_RATE",
		"DOGFIGHTS_RING_CAPACITY",
		"DOGFIGHTS_BOT_TARGET",
		"DOGFIGHTS_LOG_MAX_SIZE_MB",
		"DOGFIGHTS_LOG_MAX_BACKUPS",
		"DOGFIGHTS_LOG_MAX_AGE_DAYS",
		"DOGFIGHTS_LOG_COMPRESS",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %s, got %q", want, err.Error())
		}
	}
}

func TestLoadAllowsZeroBotTarget(t *testing.T) {
	t.Setenv("DOGFIGHTS_BOT_TARGET", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.BotTargetPopulation != 0 {
		t.Fatalf("expected zero bot target, got %d", cfg.BotTargetPopulation)
	}
}
