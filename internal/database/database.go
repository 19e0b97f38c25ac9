package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const maxConnectRetries = 5

// Connect opens the postgres connection, retrying a few times so the service
// survives the database coming up after it. TranslateError is on so unique
// violations surface as gorm.ErrDuplicatedKey.
func Connect(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= maxConnectRetries; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err == nil {
			log.Info().Msg("connected to database")
			return db, nil
		}
		log.Warn().
			Int("attempt", attempt).
			Int("max_attempts", maxConnectRetries).
			Err(err).
			Msg("failed to connect to database")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("connect to database after %d attempts: %w", maxConnectRetries, err)
}
