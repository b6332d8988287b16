// Package config reads runtime settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

const (
	defaultTickInterval = 500 * time.Millisecond
	minTickInterval     = 100 * time.Millisecond
	maxTickInterval     = time.Second
)

// Config holds runtime options for the app.
type Config struct {
	AppName       string
	DataDir       string
	Store         string
	TickInterval  time.Duration
	Verbose       bool
	WatchSettings bool
}

// Load reads the configuration. A missing .env file is not an error; values
// that fail to parse fall back to their defaults.
func Load(appName string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	dataDir := getEnv("POMODORO_DATA_DIR", "")
	if dataDir == "" {
		resolved, err := defaultDataDir(appName)
		if err != nil {
			return Config{}, err
		}
		dataDir = resolved
	}

	return Config{
		AppName:       appName,
		DataDir:       dataDir,
		Store:         getEnvChoice("POMODORO_STORE", StoreFile, StoreFile, StoreSQLite),
		TickInterval:  getEnvTick("POMODORO_TICK_MS"),
		Verbose:       getEnvBool("POMODORO_VERBOSE", false),
		WatchSettings: getEnvBool("POMODORO_WATCH_SETTINGS", true),
	}, nil
}

// SQLitePath is the database file used by the sqlite store.
func (cfg Config) SQLitePath() string {
	return filepath.Join(cfg.DataDir, "pomodoro.db")
}

func defaultDataDir(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, appName), nil
	}
	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		return "", fmt.Errorf("resolve data dir: %w", errors.Join(err, homeErr))
	}
	return filepath.Join(homeDir, "."+strings.ToLower(appName)), nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	parsed, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvChoice(key, fallback string, choices ...string) string {
	value := strings.ToLower(getEnv(key, fallback))
	for _, choice := range choices {
		if value == choice {
			return value
		}
	}
	return fallback
}

func getEnvTick(key string) time.Duration {
	millis, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultTickInterval
	}
	interval := time.Duration(millis) * time.Millisecond
	if interval < minTickInterval || interval > maxTickInterval {
		return defaultTickInterval
	}
	return interval
}
