/*
config.go - Environment-driven configuration

PURPOSE:
  Single place where environment variables become typed configuration.
  Loaded once via sync.Once; every consumer sees the same instance.

SOURCES (in precedence order):
  1. Environment variables
  2. .env file in the working directory
  3. Defaults below

KEY VARIABLES:
  SERVER_PORT            HTTP listen port (default 8080)
  STORE_DRIVER           "memory" or "sqlite" (default memory)
  STORE_PATH             sqlite database path
  LOG_LEVEL              zerolog level name (default info)
  ENGINE_PARALLELISM     report worker fan-out
  ENGINE_HOLIDAY_CALENDAR  "us" or "none"

SEE ALSO:
  - cmd/server/main.go: the only Load caller
  - engine/engine.go: Engine tunables this feeds
*/
package config

import (
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Log    LogConfig
	Engine EngineConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type StoreConfig struct {
	Driver string // "memory" or "sqlite"
	Path   string // sqlite file path
}

type LogConfig struct {
	Level string
}

type EngineConfig struct {
	Parallelism        int
	DefaultMinStock    float64
	DefaultMaxStock    float64
	ReorderHorizonDays int
	ReorderBufferDays  int
	HolidayFactor      float64
	HolidayCalendar    string // "us" or "none"
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_READ_TIMEOUT_SECONDS", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT_SECONDS", 30)
		viper.SetDefault("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"})
		viper.SetDefault("STORE_DRIVER", "memory")
		viper.SetDefault("STORE_PATH", "./data/inventory.db")
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("ENGINE_PARALLELISM", 8)
		viper.SetDefault("ENGINE_DEFAULT_MIN_STOCK", 20)
		viper.SetDefault("ENGINE_DEFAULT_MAX_STOCK", 200)
		viper.SetDefault("ENGINE_REORDER_HORIZON_DAYS", 30)
		viper.SetDefault("ENGINE_REORDER_BUFFER_DAYS", 2)
		viper.SetDefault("ENGINE_HOLIDAY_FACTOR", 1.2)
		viper.SetDefault("ENGINE_HOLIDAY_CALENDAR", "us")

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:            viper.GetString("SERVER_PORT"),
				ReadTimeout:     time.Duration(viper.GetInt("SERVER_READ_TIMEOUT_SECONDS")) * time.Second,
				WriteTimeout:    time.Duration(viper.GetInt("SERVER_WRITE_TIMEOUT_SECONDS")) * time.Second,
				ShutdownTimeout: time.Duration(viper.GetInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
				AllowedOrigins:  viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Store: StoreConfig{
				Driver: viper.GetString("STORE_DRIVER"),
				Path:   viper.GetString("STORE_PATH"),
			},
			Log: LogConfig{
				Level: viper.GetString("LOG_LEVEL"),
			},
			Engine: EngineConfig{
				Parallelism:        viper.GetInt("ENGINE_PARALLELISM"),
				DefaultMinStock:    viper.GetFloat64("ENGINE_DEFAULT_MIN_STOCK"),
				DefaultMaxStock:    viper.GetFloat64("ENGINE_DEFAULT_MAX_STOCK"),
				ReorderHorizonDays: viper.GetInt("ENGINE_REORDER_HORIZON_DAYS"),
				ReorderBufferDays:  viper.GetInt("ENGINE_REORDER_BUFFER_DAYS"),
				HolidayFactor:      viper.GetFloat64("ENGINE_HOLIDAY_FACTOR"),
				HolidayCalendar:    viper.GetString("ENGINE_HOLIDAY_CALENDAR"),
			},
		}
	})

	return instance
}
