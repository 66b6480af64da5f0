package config

import (
	"sync"
	"time"

	"github.com/Arsonist406/MassagePlanner/core/constants"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ScheduleConfig is the operating-window and snapping configuration for the
// timeline engine. Injected explicitly into engine calls, never read as
// ambient state from inside the engine.
type ScheduleConfig struct {
	DayStartHour        int
	DayEndHour          int
	GapThresholdMinutes int
	SnapMinutes         int
	PixelsPerHour       float64
	DragClickPx         float64
	ReconcileDebounce   time.Duration
}

type MaintenanceConfig struct {
	RetentionDays   int
	CleanupSpec     string
	KeepAliveSpec   string
	WorkerConcurrency int
}

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Schedule    ScheduleConfig
	Maintenance MaintenanceConfig
	LogLevel    string
}

var (
	mu  sync.RWMutex
	cfg *Config
)

// Load reads .env (if present) and environment variables into the config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 7070)
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "massage_planner")
	viper.SetDefault("DB_SSL_MODE", constants.DatabaseSSLMode)

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("SCHEDULE_DAY_START_HOUR", constants.DefaultDayStartHour)
	viper.SetDefault("SCHEDULE_DAY_END_HOUR", constants.DefaultDayEndHour)
	viper.SetDefault("SCHEDULE_GAP_THRESHOLD_MINUTES", constants.DefaultGapThresholdMinutes)
	viper.SetDefault("SCHEDULE_SNAP_MINUTES", constants.DefaultSnapMinutes)
	viper.SetDefault("SCHEDULE_PIXELS_PER_HOUR", constants.DefaultPixelsPerHour)
	viper.SetDefault("SCHEDULE_DRAG_CLICK_PX", constants.DefaultDragClickPx)
	viper.SetDefault("SCHEDULE_RECONCILE_DEBOUNCE_MS", int(constants.DefaultReconcileDebounce/time.Millisecond))

	viper.SetDefault("MAINTENANCE_RETENTION_DAYS", constants.DefaultRetentionDays)
	viper.SetDefault("MAINTENANCE_CLEANUP_SPEC", "0 3 * * *")
	viper.SetDefault("MAINTENANCE_KEEPALIVE_SPEC", "@every 5m")
	viper.SetDefault("MAINTENANCE_WORKER_CONCURRENCY", 2)

	c := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetInt("SERVER_PORT"),
			Env:  viper.GetString("ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Schedule: ScheduleConfig{
			DayStartHour:        viper.GetInt("SCHEDULE_DAY_START_HOUR"),
			DayEndHour:          viper.GetInt("SCHEDULE_DAY_END_HOUR"),
			GapThresholdMinutes: viper.GetInt("SCHEDULE_GAP_THRESHOLD_MINUTES"),
			SnapMinutes:         viper.GetInt("SCHEDULE_SNAP_MINUTES"),
			PixelsPerHour:       viper.GetFloat64("SCHEDULE_PIXELS_PER_HOUR"),
			DragClickPx:         viper.GetFloat64("SCHEDULE_DRAG_CLICK_PX"),
			ReconcileDebounce:   time.Duration(viper.GetInt("SCHEDULE_RECONCILE_DEBOUNCE_MS")) * time.Millisecond,
		},
		Maintenance: MaintenanceConfig{
			RetentionDays:     viper.GetInt("MAINTENANCE_RETENTION_DAYS"),
			CleanupSpec:       viper.GetString("MAINTENANCE_CLEANUP_SPEC"),
			KeepAliveSpec:     viper.GetString("MAINTENANCE_KEEPALIVE_SPEC"),
			WorkerConcurrency: viper.GetInt("MAINTENANCE_WORKER_CONCURRENCY"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	mu.Lock()
	cfg = c
	mu.Unlock()

	return c, nil
}

// Get returns the loaded config; panics if Load was never called.
func Get() *Config {
	c, ok := GetSafe()
	if !ok {
		panic("config: Get called before Load")
	}
	return c
}

// GetSafe returns the loaded config and whether it is initialized.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return cfg, cfg != nil
}

func IsProduction() bool {
	c, ok := GetSafe()
	return ok && c.Server.Env == "production"
}
