package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Scheduling SchedulingConfig
}

type AppConfig struct {
	Port            string
	Env             string
	Timezone        string
	LogLevel        string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SchedulingConfig tunes the appointment conflict engine.
type SchedulingConfig struct {
	// BoundaryPolicy is "inclusive" (back-to-back appointments conflict) or "exclusive".
	BoundaryPolicy string
	LockTTL        time.Duration
	LockWait       time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_TIMEZONE", "UTC")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("SCHEDULING_BOUNDARY_POLICY", "inclusive")

	if err := viper.ReadInConfig(); err != nil {
		// Environment variables alone are enough to run.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	shutdownTimeout, err := time.ParseDuration(viper.GetString("APP_SHUTDOWN_TIMEOUT"))
	if err != nil {
		shutdownTimeout = 10 * time.Second
	}

	lockTTL, err := time.ParseDuration(viper.GetString("SCHEDULING_LOCK_TTL"))
	if err != nil {
		lockTTL = 10 * time.Second
	}

	lockWait, err := time.ParseDuration(viper.GetString("SCHEDULING_LOCK_WAIT"))
	if err != nil {
		lockWait = 5 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port:            viper.GetString("APP_PORT"),
			Env:             viper.GetString("APP_ENV"),
			Timezone:        viper.GetString("APP_TIMEZONE"),
			LogLevel:        viper.GetString("LOG_LEVEL"),
			AllowedOrigins:  splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			ShutdownTimeout: shutdownTimeout,
		},
		DB: DBConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASSWORD"),
			Name:        viper.GetString("DB_NAME"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Scheduling: SchedulingConfig{
			BoundaryPolicy: viper.GetString("SCHEDULING_BOUNDARY_POLICY"),
			LockTTL:        lockTTL,
			LockWait:       lockWait,
		},
	}

	return config, nil
}

// Location returns the timezone used to interpret appointment timestamps
// that carry no offset.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// splitList parses a comma separated environment value.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
