package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/neoenginex/gemsutopia/internal/domain/discount/model"
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

func TestFindActiveByCodeUppercasesInput(t *testing.T) {
	gdb, dbMock := newMockDB(t)
	repo := NewDiscountRepository(gdb)

	dbMock.ExpectQuery(`SELECT \* FROM "discount_codes" WHERE \(UPPER\(code\) = \$1 AND is_active = \$2\)`).
		WithArgs("SAVE10", true, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "discount_type", "is_active"}).
			AddRow("code-1", "SAVE10", model.TypePercentage, true))

	found, err := repo.FindActiveByCode("save10")

	assert.NoError(t, err)
	assert.Equal(t, "SAVE10", found.Code)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestIncrementUsedCountGuardedByLimit(t *testing.T) {
	gdb, dbMock := newMockDB(t)
	repo := NewDiscountRepository(gdb)

	dbMock.ExpectBegin()
	dbMock.ExpectExec(`UPDATE "discount_codes" SET "used_count"=used_count \+ 1 WHERE \(id = \$1 AND \(usage_limit IS NULL OR used_count < usage_limit\)\)`).
		WithArgs("code-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()

	assert.NoError(t, repo.IncrementUsedCount("code-1"))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestInsertUsage(t *testing.T) {
	t.Run("first usage row inserts", func(t *testing.T) {
		gdb, dbMock := newMockDB(t)
		repo := NewDiscountRepository(gdb)

		dbMock.ExpectBegin()
		dbMock.ExpectQuery(`INSERT INTO "discount_usages" .+ ON CONFLICT \("discount_code_id","order_id"\) DO NOTHING RETURNING`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("usage-1"))
		dbMock.ExpectCommit()

		inserted, err := repo.InsertUsage(&model.DiscountUsage{
			DiscountCodeID: "code-1",
			OrderID:        "order-1",
		})

		assert.NoError(t, err)
		assert.True(t, inserted)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("existing pair reported without error", func(t *testing.T) {
		gdb, dbMock := newMockDB(t)
		repo := NewDiscountRepository(gdb)

		dbMock.ExpectBegin()
		dbMock.ExpectQuery(`INSERT INTO "discount_usages" .+ ON CONFLICT \("discount_code_id","order_id"\) DO NOTHING RETURNING`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		dbMock.ExpectCommit()

		inserted, err := repo.InsertUsage(&model.DiscountUsage{
			DiscountCodeID: "code-1",
			OrderID:        "order-1",
		})

		assert.NoError(t, err)
		assert.False(t, inserted)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
