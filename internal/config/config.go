package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/boundary-tiler/internal/pkg/validator"
	"github.com/spf13/viper"
)

type Config struct {
	Build        BuildConfig
	NaturalEarth NaturalEarthConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Cache        CacheConfig
	Stream       StreamConfig
	Server       ServerConfig
	Log          LogConfig
}

type BuildConfig struct {
	InputPath    string `validate:"required"`
	OutputDir    string `validate:"required"`
	Workers      int    `validate:"min=1"`
	CountryNames bool
}

type NaturalEarthConfig struct {
	Enabled bool
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	TilesCacheTTL time.Duration
}

type StreamConfig struct {
	Enabled bool
	Name    string
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type LogConfig struct {
	Level string
}

// Load читает .env и переменные окружения в Config.
// Отсутствие .env не является ошибкой - тогда работаем только от окружения.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	viper.SetDefault("BUILD_COUNTRY_NAMES", true)

	cfg := &Config{
		Build: BuildConfig{
			InputPath:    viper.GetString("BUILD_INPUT"),
			OutputDir:    viper.GetString("BUILD_OUTPUT_DIR"),
			Workers:      viper.GetInt("BUILD_WORKERS"),
			CountryNames: viper.GetBool("BUILD_COUNTRY_NAMES"),
		},
		NaturalEarth: NaturalEarthConfig{
			Enabled: viper.GetBool("NE_ENABLED"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			TilesCacheTTL: time.Duration(viper.GetInt("TILES_CACHE_TTL")) * time.Second,
		},
		Stream: StreamConfig{
			Enabled: viper.GetBool("STREAM_PROGRESS_ENABLED"),
			Name:    viper.GetString("STREAM_PROGRESS"),
		},
		Server: ServerConfig{
			Host: viper.GetString("SERVE_HOST"),
			Port: viper.GetInt("SERVE_PORT"),
			Env:  viper.GetString("SERVE_ENV"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Build.Workers == 0 {
		cfg.Build.Workers = runtime.NumCPU()
	}
	if cfg.Build.OutputDir == "" {
		cfg.Build.OutputDir = "tiles"
	}
	if cfg.Cache.TilesCacheTTL == 0 {
		cfg.Cache.TilesCacheTTL = time.Hour
	}
	if cfg.Stream.Name == "" {
		cfg.Stream.Name = "boundary-tiler:progress"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	return cfg, nil
}

// ValidateBuild проверяет секцию сборки перед запуском пайплайна.
func (c *Config) ValidateBuild() error {
	if err := validator.Validate(c.Build); err != nil {
		return fmt.Errorf("invalid build config: %w", err)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
