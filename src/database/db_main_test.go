package database

import (
	"testing"

	"faultproducer/src/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
)

func TestInitMainDBSQLite(t *testing.T) {
	db, err := InitMainDB(Config{
		Driver:          "sqlite",
		DatabaseURLMain: "file::memory:?cache=shared",
		GormLogLevel:    1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	assert.True(t, db.Migrator().HasTable(&model.DeliveryFailure{}))
	assert.True(t, db.Migrator().HasIndex(&model.DeliveryFailure{}, "DeliveryID"))
}

func TestInitMainDBRejectsUnknownDriver(t *testing.T) {
	_, err := InitMainDB(Config{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestCloseNil(t *testing.T) {
	assert.NoError(t, Close(nil))
}

func TestOpenDBClosesPoolWhenMigrationFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	// no query is expected, so the first migration statement fails
	mock.ExpectClose()

	dial := postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true})
	db, err := openDB(dial, Config{Driver: "postgres", GormLogLevel: 1})

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.NoError(t, mock.ExpectationsWereMet())
}
