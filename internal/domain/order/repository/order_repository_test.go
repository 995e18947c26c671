package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/neoenginex/gemsutopia/internal/domain/order/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func sampleOrder() *model.Order {
	return &model.Order{
		PaymentIntentID: "pi_123",
		Amount:          decimal.NewFromFloat(147.33),
		Currency:        "CAD",
		Status:          model.StatusCompleted,
		CustomerEmail:   "jane@example.com",
	}
}

func TestInsert(t *testing.T) {
	t.Run("new payment id inserts", func(t *testing.T) {
		gdb, dbMock := newMockDB(t)
		repo := NewOrderRepository(gdb)

		dbMock.ExpectBegin()
		dbMock.ExpectQuery(`INSERT INTO "orders" .+ ON CONFLICT \("payment_intent_id"\) DO NOTHING RETURNING`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("order-1"))
		dbMock.ExpectCommit()

		created, err := repo.Insert(sampleOrder())

		assert.NoError(t, err)
		assert.True(t, created)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("conflicting payment id is swallowed by the database", func(t *testing.T) {
		gdb, dbMock := newMockDB(t)
		repo := NewOrderRepository(gdb)

		dbMock.ExpectBegin()
		dbMock.ExpectQuery(`INSERT INTO "orders" .+ ON CONFLICT \("payment_intent_id"\) DO NOTHING RETURNING`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		dbMock.ExpectCommit()

		created, err := repo.Insert(sampleOrder())

		assert.NoError(t, err)
		assert.False(t, created)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestListFiltersByTestFlag(t *testing.T) {
	gdb, dbMock := newMockDB(t)
	repo := NewOrderRepository(gdb)

	dbMock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE is_test_order = \$1`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	dbMock.ExpectQuery(`SELECT \* FROM "orders" WHERE is_test_order = \$1`).
		WithArgs(false, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payment_intent_id", "is_test_order"}).
			AddRow("order-1", "pi_123", false))

	orders, total, err := repo.List(false, 0, 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, "pi_123", orders[0].PaymentIntentID)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
