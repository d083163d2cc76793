package database

import (
	"context"
	"fmt"
	"time"

	"clinic-scheduler/config"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxIdleConns    = 10
	maxOpenConns    = 100
	connMaxLifetime = time.Hour
	pingTimeout     = 5 * time.Second
)

// DSN builds the keyword/value connection string for cfg. Sessions run in
// UTC unless a timezone is given; appointment times are stored as UTC either way.
func DSN(cfg config.DBConfig, timezone string) string {
	if timezone == "" {
		timezone = "UTC"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, timezone,
	)
}

// NewPostgresConnection opens the pool and verifies it with a ping bounded by ctx.
// Constraint violations are translated to gorm errors such as gorm.ErrDuplicatedKey.
func NewPostgresConnection(ctx context.Context, cfg config.DBConfig, app config.AppConfig, log *logrus.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if app.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(DSN(cfg, app.Timezone)), &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database %s@%s:%s: %w", cfg.Name, cfg.Host, cfg.Port, err)
	}

	log.WithFields(logrus.Fields{"host": cfg.Host, "db": cfg.Name}).Info("Connected to PostgreSQL")

	return db, nil
}
