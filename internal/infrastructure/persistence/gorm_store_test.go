package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockGormStore creates a GormStore with a mocked SQL connection
func newMockGormStore(t *testing.T) (*GormStore, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStore(gormDB), mock, mockDB
}

func TestGormStore_Get(t *testing.T) {
	t.Run("returns value for existing key", func(t *testing.T) {
		store, mock, mockDB := newMockGormStore(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"key", "value"}).
			AddRow("competency:activities", `[]`)

		mock.ExpectQuery(`SELECT \* FROM "kv_entries" WHERE key = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("competency:activities", 1).
			WillReturnRows(rows)

		value, ok, err := store.Get(context.Background(), "competency:activities")

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[]`, value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports missing key without error", func(t *testing.T) {
		store, mock, mockDB := newMockGormStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "kv_entries" WHERE key = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("unknown", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		value, ok, err := store.Get(context.Background(), "unknown")

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		store, mock, mockDB := newMockGormStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "kv_entries" WHERE key = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("competency:activities", 1).
			WillReturnError(errors.New("connection reset"))

		_, ok, err := store.Get(context.Background(), "competency:activities")

		assert.Error(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStore_Set(t *testing.T) {
	t.Run("upserts the value", func(t *testing.T) {
		store, mock, mockDB := newMockGormStore(t)
		defer mockDB.Close()

		mock.ExpectExec(`INSERT INTO "kv_entries" .* ON CONFLICT .* DO UPDATE SET .*`).
			WithArgs("competency:activities", `[]`, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := store.Set(context.Background(), "competency:activities", `[]`)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates write errors", func(t *testing.T) {
		store, mock, mockDB := newMockGormStore(t)
		defer mockDB.Close()

		mock.ExpectExec(`INSERT INTO "kv_entries" .* ON CONFLICT .* DO UPDATE SET .*`).
			WithArgs("competency:activities", `[]`, sqlmock.AnyArg()).
			WillReturnError(errors.New("disk full"))

		err := store.Set(context.Background(), "competency:activities", `[]`)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
