package serve

import (
	"context"
	"time"

	"faultproducer/src/connectors"
	"faultproducer/src/database"
	"faultproducer/src/server"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const flushTimeout = 10 * time.Second

type Serve struct{}

// Start runs the fault producer until SIGINT or SIGTERM.
func (s *Serve) Start() error {
	settings := LoadSettings()

	var db *gorm.DB
	dbConfig := database.GetConfig()
	if dbConfig.EnableDB {
		var err error
		db, err = database.InitMainDB(dbConfig)
		if err != nil {
			logrus.WithError(err).Error("Failed to connect to main database")
			return err
		}
		defer func() {
			if err := database.Close(db); err != nil {
				logrus.WithError(err).Warn("Failed to close main database")
			}
		}()
	}

	producer, err := connectors.NewAsyncProducer(connectors.GetConfig())
	if err != nil {
		logrus.WithError(err).Error("Failed to create kafka producer")
		return err
	}

	app, err := NewApp(settings, producer, db)
	if err != nil {
		producer.AsyncClose()
		logrus.WithError(err).Error("Invalid fault producer configuration")
		return err
	}

	serveErr := server.StartServer(server.GetConfig().Port, app.Router)

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		logrus.WithError(err).Warn("Publisher did not flush before timeout")
	}

	return serveErr
}
