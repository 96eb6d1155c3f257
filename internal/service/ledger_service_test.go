package service

import (
	"testing"

	"go-store-ledger/internal/model"
	"go-store-ledger/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterProductDerivesRecommended(t *testing.T) {
	ledger, db := newTestLedger(t)

	mustRegister(t, ledger, model.Product{Code: "P1", Name: "Rice Ball", Category: "02", Price: 1200, Quantity: 10})
	mustRegister(t, ledger, model.Product{Code: "P2", Name: "Gum", Category: "55", Price: 500, Quantity: 2})
	mustRegister(t, ledger, model.Product{Code: "P3", Name: "Milk", Category: "39", Price: 1800, Quantity: 4, Recommended: 30})

	assert.Equal(t, 15, productByCode(t, db, "P1").Recommended, "10 * 1.5")
	assert.Equal(t, 5, productByCode(t, db, "P2").Recommended, "floor applies below 5")
	assert.Equal(t, 30, productByCode(t, db, "P3").Recommended, "explicit value kept")
}

func TestRegisterProductAppendsRegistration(t *testing.T) {
	ledger, db := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "P1", Name: "Rice Ball", Category: "02", Price: 1200, Quantity: 10})

	txs := transactionsFor(t, db, "P1")
	require.Len(t, txs, 1)
	assert.Equal(t, model.TxRegister, txs[0].Type)
	assert.Equal(t, 0, txs[0].BeforeQty)
	assert.Equal(t, 10, txs[0].AfterQty)
	assert.Equal(t, 10, txs[0].Quantity)
	assert.NotEmpty(t, txs[0].Weekday)
	assert.NotZero(t, txs[0].Month)
}

func TestRegisterProductDuplicateKey(t *testing.T) {
	ledger, _ := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "P1", Name: "Rice Ball", Category: "02", Quantity: 10})

	err := ledger.RegisterProduct(&model.Product{Code: "P1", Name: "Other", Category: "02", Quantity: 1})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestRegisterProductValidation(t *testing.T) {
	ledger, _ := newTestLedger(t)

	tests := []struct {
		name    string
		product model.Product
	}{
		{"blank code", model.Product{Name: "X", Category: "02", Quantity: 1}},
		{"blank name", model.Product{Code: "P1", Category: "02", Quantity: 1}},
		{"unknown category", model.Product{Code: "P1", Name: "X", Category: "XX", Quantity: 1}},
		{"pseudo category", model.Product{Code: "P1", Name: "X", Category: "00", Quantity: 1}},
		{"negative price", model.Product{Code: "P1", Name: "X", Category: "02", Price: -1, Quantity: 1}},
		{"negative quantity", model.Product{Code: "P1", Name: "X", Category: "02", Quantity: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.product
			err := ledger.RegisterProduct(&p)
			assert.True(t, IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestApplyTransactionMovesStock(t *testing.T) {
	ledger, db := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "P1", Name: "Rice Ball", Category: "02", Quantity: 10})

	after, err := ledger.ApplyTransaction("P1", model.TxInbound, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, after)

	after, err = ledger.ApplyTransaction("P1", model.TxSale, 3)
	require.NoError(t, err)
	assert.Equal(t, 12, after)

	after, err = ledger.ApplyTransaction("P1", model.TxDisposal, 2)
	require.NoError(t, err)
	assert.Equal(t, 10, after)

	assert.Equal(t, 10, productByCode(t, db, "P1").Quantity)
}

func TestApplyTransactionClampsAtZero(t *testing.T) {
	ledger, db := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "P1", Name: "Rice Ball", Category: "02", Quantity: 3})

	after, err := ledger.ApplyTransaction("P1", model.TxSale, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, after)

	txs := transactionsFor(t, db, "P1")
	last := txs[len(txs)-1]
	assert.Equal(t, 3, last.BeforeQty)
	assert.Equal(t, 0, last.AfterQty)
	assert.Equal(t, 10, last.Quantity, "records the requested magnitude")
}

// Every successful mutation appends exactly one ledger entry whose
// before/after pair matches the product around the call.
func TestApplyTransactionLedgerConsistency(t *testing.T) {
	ledger, db := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "P1", Name: "Rice Ball", Category: "02", Quantity: 10})

	steps := []struct {
		txType model.TransactionType
		qty    int
	}{
		{model.TxInbound, 7},
		{model.TxSale, 4},
		{model.TxSale, 20},
		{model.TxInbound, 6},
		{model.TxDisposal, 1},
	}
	for _, step := range steps {
		before := productByCode(t, db, "P1").Quantity
		after, err := ledger.ApplyTransaction("P1", step.txType, step.qty)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, after, 0, "on-hand never negative")

		txs := transactionsFor(t, db, "P1")
		last := txs[len(txs)-1]
		assert.Equal(t, before, last.BeforeQty)
		assert.Equal(t, after, last.AfterQty)
		assert.Equal(t, after, productByCode(t, db, "P1").Quantity)
	}

	// one REGISTER plus one entry per step
	assert.Len(t, transactionsFor(t, db, "P1"), len(steps)+1)
}

func TestApplyTransactionUnknownCode(t *testing.T) {
	ledger, db := newTestLedger(t)

	_, err := ledger.ApplyTransaction("NOPE", model.TxInbound, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	db.Model(&model.Transaction{}).Count(&count)
	assert.Zero(t, count, "no entry appended on failure")
}

func TestApplyTransactionRejectsBadInput(t *testing.T) {
	ledger, _ := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "P1", Name: "Rice Ball", Category: "02", Quantity: 10})

	_, err := ledger.ApplyTransaction("P1", model.TxSale, 0)
	assert.True(t, IsValidation(err))

	_, err = ledger.ApplyTransaction("P1", model.TxAdjust, 5)
	assert.True(t, IsValidation(err), "direct adjustments have their own operation")

	_, err = ledger.ApplyTransaction("P1", "UNKNOWN", 5)
	assert.True(t, IsValidation(err))
}

func TestSetQuantityDirect(t *testing.T) {
	ledger, db := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "P1", Name: "Rice Ball", Category: "02", Quantity: 10})

	after, err := ledger.SetQuantityDirect("P1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, after)

	txs := transactionsFor(t, db, "P1")
	last := txs[len(txs)-1]
	assert.Equal(t, model.TxAdjust, last.Type)
	assert.Equal(t, 10, last.BeforeQty)
	assert.Equal(t, 4, last.AfterQty)
	assert.Equal(t, 6, last.Quantity, "magnitude of the negative delta")

	_, err = ledger.SetQuantityDirect("P1", -1)
	assert.True(t, IsValidation(err))

	_, err = ledger.SetQuantityDirect("NOPE", 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBulkSetRecommended(t *testing.T) {
	ledger, db := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "P1", Name: "A", Category: "53", Quantity: 4})
	mustRegister(t, ledger, model.Product{Code: "P2", Name: "B", Category: "53", Quantity: 10})
	mustRegister(t, ledger, model.Product{Code: "P3", Name: "C", Category: "39", Quantity: 100})

	count, err := ledger.BulkSetRecommended("53", 2.0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, 8, productByCode(t, db, "P1").Recommended)
	assert.Equal(t, 20, productByCode(t, db, "P2").Recommended)
	assert.Equal(t, 150, productByCode(t, db, "P3").Recommended, "other category untouched")

	// Not a stock event: the log holds only the three registrations.
	var txCount int64
	db.Model(&model.Transaction{}).Count(&txCount)
	assert.EqualValues(t, 3, txCount)
}

func TestBulkSetRecommendedFloor(t *testing.T) {
	ledger, db := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "P1", Name: "A", Category: "53", Quantity: 2})

	_, err := ledger.BulkSetRecommended("53", 1.5)
	require.NoError(t, err)
	assert.Equal(t, 5, productByCode(t, db, "P1").Recommended)
}

func TestBulkSetRecommendedValidation(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, err := ledger.BulkSetRecommended("XX", 2.0)
	assert.True(t, IsValidation(err))

	_, err = ledger.BulkSetRecommended("53", 0)
	assert.True(t, IsValidation(err))
}

func TestListProductsFilters(t *testing.T) {
	ledger, _ := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "8801111", Name: "Tuna Rice Ball", Category: "03", Quantity: 5})
	mustRegister(t, ledger, model.Product{Code: "8802222", Name: "Cola", Category: "47", Quantity: 5})

	rows, err := ledger.ListProducts(repository.ProductFilter{Category: "03"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rice Ball", rows[0].CategoryLabel)

	rows, err = ledger.ListProducts(repository.ProductFilter{Name: "tuna"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "8801111", rows[0].Code)

	rows, err = ledger.ListProducts(repository.ProductFilter{Code: "2222"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cola", rows[0].Name)
}

func TestResets(t *testing.T) {
	ledger, db := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "P1", Name: "A", Category: "53", Quantity: 4})

	require.NoError(t, ledger.ResetProducts())
	var productCount int64
	db.Model(&model.Product{}).Count(&productCount)
	assert.Zero(t, productCount)

	// The log keeps the registration until it is cleared itself.
	var txCount int64
	db.Model(&model.Transaction{}).Count(&txCount)
	assert.EqualValues(t, 1, txCount)

	require.NoError(t, ledger.ResetTransactions())
	db.Model(&model.Transaction{}).Count(&txCount)
	assert.Zero(t, txCount)
}
