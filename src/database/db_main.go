package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"faultproducer/src/model"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

func dialector(config Config) (gorm.Dialector, error) {
	switch strings.ToLower(config.Driver) {
	case "", "postgres":
		return postgres.Open(config.DatabaseURLMain), nil
	case "sqlite":
		return sqlite.Open(config.DatabaseURLMain), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, config.Driver)
	}
}

// InitMainDB opens the delivery journal database and migrates its schema.
func InitMainDB(config Config) (*gorm.DB, error) {
	dial, err := dialector(config)
	if err != nil {
		return nil, err
	}
	return openDB(dial, config)
}

func openDB(dial gorm.Dialector, config Config) (*gorm.DB, error) {
	db, err := gorm.Open(dial,
		&gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.LogLevel(config.GormLogLevel)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get DB from GORM: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	logrus.WithField("driver", config.Driver).Info("[database] MainDB connection established")

	if err := Migrate(db); err != nil {
		if cerr := Close(db); cerr != nil {
			logrus.WithError(cerr).Warn("[database] failed to close MainDB after migration error")
		}
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the tables owned by this service.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.DeliveryFailure{},
	); err != nil {
		return fmt.Errorf("failed to run migrations on MainDB: %w", err)
	}

	logrus.Info("[database] MainDB migrations completed")
	return nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
