package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	Storage     StorageConfig
	Backup      BackupConfig
	Tasks       TasksConfig
	Seed        SeedConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type StorageConfig struct {
	Path          string
	AppID         string
	SchemaVersion string
}

type BackupConfig struct {
	Enabled  bool
	Dir      string
	Interval time.Duration
}

type TasksConfig struct {
	DueSoonWindowDays int
}

type SeedConfig struct {
	DemoUsers bool
}

type ContextConfig struct {
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the application can start anywhere.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "taskdesk"),
		Environment: getString("APP_ENV", "development"),
		Storage: StorageConfig{
			Path:          getString("TASKDESK_DB_PATH", "./data/taskdesk.db"),
			AppID:         getString("TASKDESK_APP_ID", "taskdesk"),
			SchemaVersion: getString("TASKDESK_SCHEMA_VERSION", "2.0"),
		},
		Backup: BackupConfig{
			Enabled:  getBool("BACKUP_ENABLED", true),
			Dir:      getString("BACKUP_DIR", "./backups"),
			Interval: getDuration("BACKUP_INTERVAL", time.Hour),
		},
		Tasks: TasksConfig{
			DueSoonWindowDays: getInt("DUE_SOON_WINDOW_DAYS", 3),
		},
		Seed: SeedConfig{
			DemoUsers: getBool("SEED_DEMO_USERS", true),
		},
		Context: ContextConfig{
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "console"),
		},
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
