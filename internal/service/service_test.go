package service

import (
	"testing"

	"go-store-ledger/internal/model"
	"go-store-ledger/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore opens a fresh in-memory session store, the same shape the
// process owns at runtime.
func newTestStore(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Product{}, &model.Transaction{}))
	return db
}

func newTestLedger(t *testing.T) (LedgerService, *gorm.DB) {
	t.Helper()
	db := newTestStore(t)
	ledger := NewLedgerService(repository.NewProductRepo(db), repository.NewTransactionRepo(db), db, nil)
	return ledger, db
}

func mustRegister(t *testing.T, ledger LedgerService, p model.Product) {
	t.Helper()
	require.NoError(t, ledger.RegisterProduct(&p))
}

func productByCode(t *testing.T, db *gorm.DB, code string) model.Product {
	t.Helper()
	var p model.Product
	require.NoError(t, db.First(&p, "code = ?", code).Error)
	return p
}

func transactionsFor(t *testing.T, db *gorm.DB, code string) []model.Transaction {
	t.Helper()
	var txs []model.Transaction
	require.NoError(t, db.Where("product_code = ?", code).Order("created_at ASC").Find(&txs).Error)
	return txs
}
