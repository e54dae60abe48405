package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	connectRetries = 3
	retryInterval  = 2 * time.Second
)

// NewPostgres opens a gorm connection, retrying while the database starts up.
func NewPostgres(ctx context.Context, dsn string) (*gorm.DB, error) {
	var lastErr error

	for attempt := 0; attempt <= connectRetries; attempt++ {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err == nil {
			return db, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to connect to Postgres: %w", ctx.Err())
		case <-time.After(retryInterval):
		}
	}

	return nil, fmt.Errorf("failed to connect to Postgres after %d retries: %w", connectRetries, lastErr)
}

func ClosePostgres(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get Postgres handle: %w", err)
	}

	return sqlDB.Close()
}
