package service

import (
	"bytes"
	"testing"

	"go-store-ledger/internal/excel"
	"go-store-ledger/internal/model"
	"go-store-ledger/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestImporter(t *testing.T, db *gorm.DB, policy ImportPolicy) ImportService {
	t.Helper()
	return NewImportService(repository.NewProductRepo(db), db, nil, policy)
}

func workbook(t *testing.T, headers []string, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	data, err := excel.BuildWorkbook(headers, rows)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestImportMissingRequiredColumn(t *testing.T) {
	ledger, db := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "P1", Name: "Keep Me", Category: "53", Quantity: 7})
	importer := newTestImporter(t, db, ImportPolicy{})

	file := workbook(t, []string{"code", "price"}, [][]interface{}{{"P2", 100}})
	report, err := importer.Reconcile(file, "53", ModeMerge)

	assert.True(t, IsValidation(err))
	assert.Equal(t, StateRejected, report.State)

	// Existing table untouched.
	var count int64
	db.Model(&model.Product{}).Count(&count)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, 7, productByCode(t, db, "P1").Quantity)
}

func TestImportEmptyFile(t *testing.T) {
	_, db := newTestLedger(t)
	importer := newTestImporter(t, db, ImportPolicy{})

	file := workbook(t, []string{"code", "name"}, nil)
	report, err := importer.Reconcile(file, "53", ModeMerge)

	assert.True(t, IsValidation(err))
	assert.Equal(t, StateRejected, report.State)
}

func TestImportReplaceMode(t *testing.T) {
	ledger, db := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "OLD", Name: "Old", Category: "53", Quantity: 1})
	importer := newTestImporter(t, db, ImportPolicy{})

	file := workbook(t,
		[]string{"code", "name", "price", "quantity"},
		[][]interface{}{
			{"N1", "New One", 1000, 10},
			{"N2", "New Two", 2000, 20},
		})
	report, err := importer.Reconcile(file, "53", ModeReplace)
	require.NoError(t, err)

	assert.Equal(t, StateApplied, report.State)
	assert.Equal(t, 2, report.Inserted)

	var count int64
	db.Model(&model.Product{}).Count(&count)
	assert.EqualValues(t, 2, count, "old table discarded")

	_, err = repository.NewProductRepo(db).FindByCode("OLD")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestImportMergeOverwrite(t *testing.T) {
	ledger, db := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "P1", Name: "Old Name", Category: "53", Price: 100, Quantity: 1})
	importer := newTestImporter(t, db, ImportPolicy{OverwriteExisting: true})

	file := workbook(t,
		[]string{"code", "name", "price", "quantity"},
		[][]interface{}{
			{"P1", "New Name", 500, 9},
			{"P2", "Brand New", 700, 3},
		})
	report, err := importer.Reconcile(file, "53", ModeMerge)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Updated)

	var count int64
	db.Model(&model.Product{}).Count(&count)
	assert.EqualValues(t, 2, count, "original length + 1")

	p1 := productByCode(t, db, "P1")
	assert.Equal(t, "New Name", p1.Name)
	assert.EqualValues(t, 500, p1.Price)
	assert.Equal(t, 9, p1.Quantity)
}

func TestImportMergeSkip(t *testing.T) {
	ledger, db := newTestLedger(t)
	mustRegister(t, ledger, model.Product{Code: "P1", Name: "Old Name", Category: "53", Price: 100, Quantity: 1})
	importer := newTestImporter(t, db, ImportPolicy{OverwriteExisting: false})

	file := workbook(t,
		[]string{"code", "name", "quantity"},
		[][]interface{}{
			{"P1", "New Name", 9},
			{"P2", "Brand New", 3},
		})
	report, err := importer.Reconcile(file, "53", ModeMerge)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, "Old Name", productByCode(t, db, "P1").Name, "skip policy leaves the row alone")
}

func TestImportCoercionAndDefaults(t *testing.T) {
	_, db := newTestLedger(t)
	importer := newTestImporter(t, db, ImportPolicy{})

	file := workbook(t,
		[]string{"code", "name", "price", "carryover"},
		[][]interface{}{
			{"8801234567890.0", "Rice Ball", "", 10}, // legacy quantity alias, blank price
			{"", "No Code", 100, 5},                  // dropped
			{"P3", "   ", 100, 5},                    // dropped
			{"P4", "Gum", "abc", 2},                  // bad price coerced to 0
		})
	report, err := importer.Reconcile(file, "", ModeMerge)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Parsed)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 2, report.Dropped)
	assert.NotEmpty(t, report.RowErrors)

	ball := productByCode(t, db, "8801234567890")
	assert.Equal(t, 10, ball.Quantity, "carryover column read as quantity")
	assert.EqualValues(t, 0, ball.Price)
	assert.Equal(t, 15, ball.Recommended, "defaulted from quantity")
	assert.Equal(t, model.CategoryDefault, ball.Category, "catch-all category stamped")

	gum := productByCode(t, db, "P4")
	assert.EqualValues(t, 0, gum.Price)
	assert.Equal(t, 5, gum.Recommended)
}

func TestImportStrictRowsRejectsBatch(t *testing.T) {
	_, db := newTestLedger(t)
	importer := newTestImporter(t, db, ImportPolicy{StrictRows: true})

	file := workbook(t,
		[]string{"code", "name", "price"},
		[][]interface{}{
			{"P1", "Fine", 100},
			{"P2", "Broken", "not-a-number"},
		})
	report, err := importer.Reconcile(file, "53", ModeMerge)

	assert.True(t, IsValidation(err))
	assert.Equal(t, StateRejected, report.State)

	var count int64
	db.Model(&model.Product{}).Count(&count)
	assert.Zero(t, count, "nothing applied")
}

func TestImportUnknownCategoryAndMode(t *testing.T) {
	_, db := newTestLedger(t)
	importer := newTestImporter(t, db, ImportPolicy{})

	file := workbook(t, []string{"code", "name"}, [][]interface{}{{"P1", "X"}})
	_, err := importer.Reconcile(file, "XX", ModeMerge)
	assert.True(t, IsValidation(err))

	file = workbook(t, []string{"code", "name"}, [][]interface{}{{"P1", "X"}})
	_, err = importer.Reconcile(file, "53", ImportMode("upsert"))
	assert.True(t, IsValidation(err))
}

func TestImportDuplicateCodesWithinFile(t *testing.T) {
	_, db := newTestLedger(t)
	importer := newTestImporter(t, db, ImportPolicy{OverwriteExisting: true})

	file := workbook(t,
		[]string{"code", "name", "quantity"},
		[][]interface{}{
			{"P1", "First", 5},
			{"P1", "Second", 9},
		})
	report, err := importer.Reconcile(file, "53", ModeMerge)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Dropped)
	assert.Equal(t, "First", productByCode(t, db, "P1").Name)
}
