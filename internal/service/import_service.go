package service

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-store-ledger/internal/excel"
	"go-store-ledger/internal/model"
	"go-store-ledger/internal/repository"
	"go-store-ledger/internal/ws"

	"gorm.io/gorm"
)

type ImportMode string

const (
	ModeReplace ImportMode = "replace"
	ModeMerge   ImportMode = "merge"
)

// ImportState tracks a single import/apply cycle. Nothing survives across
// cycles; a rejected upload leaves the tables exactly as they were.
type ImportState string

const (
	StateIdle       ImportState = "Idle"
	StateFileParsed ImportState = "FileParsed"
	StateValidated  ImportState = "Validated"
	StateApplied    ImportState = "Applied"
	StateRejected   ImportState = "Rejected"
)

// Spreadsheet column names. Carryover is the legacy alias some store exports
// still use for the quantity column.
const (
	colCode        = "code"
	colName        = "name"
	colPrice       = "price"
	colQuantity    = "quantity"
	colCarryover   = "carryover"
	colRecommended = "recommended"
)

// RowError is one row that needed coercion or was dropped.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportReport is the batch outcome handed back to the caller so it can show
// partial success/failure counts.
type ImportReport struct {
	State     ImportState `json:"state"`
	Category  string      `json:"category"`
	Mode      ImportMode  `json:"mode"`
	Parsed    int         `json:"parsed"`
	Inserted  int         `json:"inserted"`
	Updated   int         `json:"updated"`
	Skipped   int         `json:"skipped"`
	Dropped   int         `json:"dropped"`
	RowErrors []RowError  `json:"row_errors,omitempty"`
}

// ImportPolicy is the revision-dependent behavior made explicit: whether
// merge overwrites matching codes and whether bad rows reject the batch.
type ImportPolicy struct {
	OverwriteExisting bool
	StrictRows        bool
	DefaultCategory   string
}

type ImportService interface {
	Reconcile(r io.Reader, category string, mode ImportMode) (*ImportReport, error)
}

type importService struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
	policy      ImportPolicy
}

func NewImportService(pRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub, policy ImportPolicy) ImportService {
	if policy.DefaultCategory == "" {
		policy.DefaultCategory = model.CategoryDefault
	}
	return &importService{
		productRepo: pRepo,
		db:          db,
		wsHub:       hub,
		policy:      policy,
	}
}

// Reconcile runs one import cycle: parse, validate, apply. Validation
// failures reject the batch before anything is written.
func (s *importService) Reconcile(r io.Reader, category string, mode ImportMode) (*ImportReport, error) {
	report := &ImportReport{State: StateIdle, Mode: mode}

	if mode != ModeReplace && mode != ModeMerge {
		report.State = StateRejected
		return report, validationf("unknown import mode '%s'", mode)
	}

	if category == "" {
		category = s.policy.DefaultCategory
	}
	if !model.IsAssignableCategory(category) {
		report.State = StateRejected
		return report, validationf("unknown category '%s'", category)
	}
	report.Category = category

	sheet, err := excel.ParseSheet(r)
	if err != nil {
		report.State = StateRejected
		return report, validationf("unreadable workbook: %v", err)
	}
	report.State = StateFileParsed

	if len(sheet.Rows) == 0 {
		report.State = StateRejected
		return report, validationf("file has no data rows")
	}
	var missing []string
	for _, required := range []string{colCode, colName} {
		if sheet.HeaderIndex(required) < 0 {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		report.State = StateRejected
		return report, validationf("missing required columns: %s", strings.Join(missing, ", "))
	}

	products, err := s.normalizeRows(sheet, category, report)
	if err != nil {
		report.State = StateRejected
		return report, err
	}
	if len(products) == 0 {
		report.State = StateRejected
		return report, validationf("no valid rows after filtering")
	}
	report.State = StateValidated

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if mode == ModeReplace {
			if err := s.productRepo.DeleteAll(tx); err != nil {
				return err
			}
			for i := range products {
				if err := tx.Create(&products[i]).Error; err != nil {
					return err
				}
			}
			report.Inserted = len(products)
			return nil
		}

		for i := range products {
			var existing model.Product
			err := tx.First(&existing, "code = ?", products[i].Code).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&products[i]).Error; err != nil {
					return err
				}
				report.Inserted++
			case err != nil:
				return err
			case s.policy.OverwriteExisting:
				existing.Name = products[i].Name
				existing.Category = products[i].Category
				existing.Price = products[i].Price
				existing.Quantity = products[i].Quantity
				existing.Recommended = products[i].Recommended
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				report.Updated++
			default:
				report.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		report.State = StateRejected
		// Counts from the rolled-back attempt would mislead the caller.
		report.Inserted, report.Updated, report.Skipped = 0, 0, 0
		return report, err
	}

	report.State = StateApplied
	if s.wsHub != nil {
		go s.wsHub.PublishStockUpdate("import_applied",
			fmt.Sprintf("imported %d products into %s", report.Inserted+report.Updated, model.CategoryLabel(category)),
			report)
	}
	return report, nil
}

// normalizeRows applies the documented coercion: cells to trimmed strings or
// numbers, blank numerics to 0, blank code/name rows dropped, recommended
// defaulted from quantity.
func (s *importService) normalizeRows(sheet *excel.Sheet, category string, report *ImportReport) ([]model.Product, error) {
	quantityCol := colQuantity
	if sheet.HeaderIndex(colQuantity) < 0 && sheet.HeaderIndex(colCarryover) >= 0 {
		quantityCol = colCarryover
	}

	var products []model.Product
	seen := make(map[string]bool)

	for i := range sheet.Rows {
		rowNum := i + 2 // 1-based, after the header row
		report.Parsed++

		code := coerceString(sheet.Cell(i, colCode))
		name := coerceString(sheet.Cell(i, colName))
		if code == "" || name == "" {
			report.Dropped++
			report.RowErrors = append(report.RowErrors, RowError{Row: rowNum, Reason: "blank code or name"})
			continue
		}
		if seen[code] {
			report.Dropped++
			report.RowErrors = append(report.RowErrors, RowError{Row: rowNum, Reason: fmt.Sprintf("duplicate code '%s' in file", code)})
			continue
		}
		seen[code] = true

		price, err := coerceNumber(sheet.Cell(i, colPrice))
		if err != nil {
			if s.policy.StrictRows {
				return nil, validationf("row %d: bad price value", rowNum)
			}
			report.RowErrors = append(report.RowErrors, RowError{Row: rowNum, Reason: "bad price value, defaulted to 0"})
		}
		quantity, err := coerceNumber(sheet.Cell(i, quantityCol))
		if err != nil {
			if s.policy.StrictRows {
				return nil, validationf("row %d: bad quantity value", rowNum)
			}
			report.RowErrors = append(report.RowErrors, RowError{Row: rowNum, Reason: "bad quantity value, defaulted to 0"})
		}
		recommended, err := coerceNumber(sheet.Cell(i, colRecommended))
		if err != nil {
			if s.policy.StrictRows {
				return nil, validationf("row %d: bad recommended value", rowNum)
			}
			report.RowErrors = append(report.RowErrors, RowError{Row: rowNum, Reason: "bad recommended value, defaulted to 0"})
		}

		if quantity < 0 {
			quantity = 0
		}
		rec := int(recommended)
		if rec <= 0 {
			rec = model.DefaultRecommended(int(quantity))
		}

		products = append(products, model.Product{
			Code:        code,
			Name:        name,
			Category:    category,
			Price:       int64(price),
			Quantity:    int(quantity),
			Recommended: rec,
		})
	}

	return products, nil
}

// coerceString trims and strips the trailing ".0" spreadsheet engines attach
// to numeric-looking cells, so barcodes survive the round trip.
func coerceString(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, ".0") {
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return strings.TrimSuffix(v, ".0")
		}
	}
	return v
}

// coerceNumber parses a numeric cell, 0 for blank. A non-nil error means the
// cell held garbage; the value is still usable as the 0 default.
func coerceNumber(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}
