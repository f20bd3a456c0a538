package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string

	// DB
	Env    string // "dev" | "prod"
	DBPath string // e.g. "./data/gatewatch.db"

	// Recognition engine
	EngineURL       string // base URL of the plate recognition engine
	EngineTimeoutMS int    // per-detection request budget

	// Frame intake
	MaxFrameBytes int // reject image payloads larger than this before any engine call

	// Ledger retention
	RetentionDays      int // 0 = keep every access record forever (default)
	SweepIntervalHours int // how often the retention sweep runs (default 6)
}

func FromEnv() Config {
	addr := getenvDefault("GATEWATCH_HTTP_ADDR", ":8080")

	env := strings.ToLower(getenvDefault("GATEWATCH_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	dbPath := getenvDefault("GATEWATCH_DB_PATH", "./data/gatewatch.db")

	engineURL := getenvDefault("GATEWATCH_ENGINE_URL", "http://localhost:5000")
	engineTimeout := getenvInt("GATEWATCH_ENGINE_TIMEOUT_MS", 5000)

	maxFrame := getenvInt("GATEWATCH_MAX_FRAME_BYTES", 10<<20)

	retentionDays := getenvInt("GATEWATCH_RETENTION_DAYS", 0)
	sweepInterval := getenvInt("GATEWATCH_SWEEP_INTERVAL_HOURS", 6)

	return Config{
		HTTPAddr: addr,
		Env:      env,
		DBPath:   dbPath,

		EngineURL:       strings.TrimRight(engineURL, "/"),
		EngineTimeoutMS: engineTimeout,

		MaxFrameBytes: maxFrame,

		RetentionDays:      retentionDays,
		SweepIntervalHours: sweepInterval,
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
