package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	Clinic ClinicConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Log    LogConfig
}

type AppConfig struct {
	Port string
	Env  string
}

// IsDevelopment reports whether verbose diagnostics should be enabled.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development"
}

type ClinicConfig struct {
	Timezone               string
	DefaultServiceDuration time.Duration
	GridMaxDays            int
	GridCacheTTL           time.Duration
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxIdleConns int
	MaxOpenConns int
}

// DSN is the key/value connection string used by gorm.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

// MigrationURL is the pgx5:// URL used by golang-migrate.
func (c DBConfig) MigrationURL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CLINIC_TIMEZONE", "Asia/Ho_Chi_Minh")
	v.SetDefault("DEFAULT_SERVICE_DURATION_MINUTES", 30)
	v.SetDefault("SCHEDULE_GRID_MAX_DAYS", 62)
	v.SetDefault("SCHEDULE_GRID_CACHE_TTL", "30s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ACCESS_EXPIRY", "15m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
}

// LoadConfig reads the given .env file, when it exists, and the environment.
// Environment variables win over the file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	durationMinutes := v.GetInt("DEFAULT_SERVICE_DURATION_MINUTES")
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("DEFAULT_SERVICE_DURATION_MINUTES must be positive, got %d", durationMinutes)
	}

	gridMaxDays := v.GetInt("SCHEDULE_GRID_MAX_DAYS")
	if gridMaxDays <= 0 {
		return nil, fmt.Errorf("SCHEDULE_GRID_MAX_DAYS must be positive, got %d", gridMaxDays)
	}

	gridCacheTTL, err := time.ParseDuration(v.GetString("SCHEDULE_GRID_CACHE_TTL"))
	if err != nil {
		return nil, fmt.Errorf("SCHEDULE_GRID_CACHE_TTL: %w", err)
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port: v.GetString("APP_PORT"),
			Env:  v.GetString("APP_ENV"),
		},
		Clinic: ClinicConfig{
			Timezone:               v.GetString("CLINIC_TIMEZONE"),
			DefaultServiceDuration: time.Duration(durationMinutes) * time.Minute,
			GridMaxDays:            gridMaxDays,
			GridCacheTTL:           gridCacheTTL,
		},
		DB: DBConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			File:       v.GetString("LOG_FILE"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
		},
	}

	return config, nil
}
