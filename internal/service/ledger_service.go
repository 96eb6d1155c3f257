package service

import (
	"errors"
	"fmt"
	"time"

	"go-store-ledger/internal/model"
	"go-store-ledger/internal/repository"
	"go-store-ledger/internal/ws"
	"go-store-ledger/pkg/validator"

	"gorm.io/gorm"
)

// ProductRow is a product annotated with its category display label, the
// shape listings and exports work with.
type ProductRow struct {
	model.Product
	CategoryLabel string `json:"category_label"`
}

type LedgerService interface {
	RegisterProduct(req *model.Product) error
	ApplyTransaction(code string, txType model.TransactionType, quantity int) (int, error)
	SetQuantityDirect(code string, newQuantity int) (int, error)
	BulkSetRecommended(category string, multiplier float64) (int, error)
	ListProducts(filter repository.ProductFilter) ([]ProductRow, error)
	ListTransactions(filter repository.TransactionFilter) ([]model.Transaction, error)
	ResetProducts() error
	ResetTransactions() error
}

type ledgerService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	wsHub           *ws.Hub
}

func NewLedgerService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub) LedgerService {
	return &ledgerService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		db:              db,
		wsHub:           hub,
	}
}

// publish emits a dashboard event without blocking the caller. Tests wire a
// nil hub.
func (s *ledgerService) publish(action, message string, data interface{}) {
	if s.wsHub == nil {
		return
	}
	go s.wsHub.PublishStockUpdate(action, message, data)
}

func (s *ledgerService) RegisterProduct(req *model.Product) error {
	// Recommended defaults before tag validation so a zero value never
	// trips gte checks downstream.
	if req.Recommended <= 0 {
		req.Recommended = model.DefaultRecommended(req.Quantity)
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return validationf("field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, err := s.productRepo.FindByCode(req.Code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return ErrDuplicateKey
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}

		entry := &model.Transaction{
			Type:        model.TxRegister,
			ProductCode: req.Code,
			ProductName: req.Name,
			Quantity:    req.Quantity,
			BeforeQty:   0,
			AfterQty:    req.Quantity,
		}
		entry.StampTime(time.Now())
		if err := s.transactionRepo.Append(tx, entry); err != nil {
			return err
		}

		s.publish("product_registered",
			fmt.Sprintf("registered '%s' with %d on hand", req.Name, req.Quantity), req)
		return nil
	})
}

// ApplyTransaction moves stock by a typed delta: +quantity for INBOUND,
// -quantity for SALE/DISPOSAL, the result clamped at zero. Exactly one ledger
// entry is appended alongside the product write.
func (s *ledgerService) ApplyTransaction(code string, txType model.TransactionType, quantity int) (int, error) {
	sign := txType.Sign()
	if sign == 0 || txType == model.TxRegister {
		return 0, validationf("transaction type '%s' cannot be applied here", txType)
	}
	if quantity <= 0 {
		return 0, validationf("quantity must be greater than 0")
	}

	var after int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "code = ?", code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		before := product.Quantity
		after = before + sign*quantity
		if after < 0 {
			after = 0
		}

		if err := s.productRepo.UpdateStock(tx, code, after); err != nil {
			return err
		}

		entry := &model.Transaction{
			Type:        txType,
			ProductCode: product.Code,
			ProductName: product.Name,
			Quantity:    quantity,
			BeforeQty:   before,
			AfterQty:    after,
		}
		entry.StampTime(time.Now())
		if err := s.transactionRepo.Append(tx, entry); err != nil {
			return err
		}

		s.publish("transaction_applied",
			fmt.Sprintf("%s %d units of '%s' (%d -> %d)", txType, quantity, product.Name, before, after),
			entry)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return after, nil
}

// SetQuantityDirect overwrites the on-hand count, recording an ADJUST entry
// whose magnitude is the absolute difference.
func (s *ledgerService) SetQuantityDirect(code string, newQuantity int) (int, error) {
	if newQuantity < 0 {
		return 0, validationf("quantity must not be negative")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "code = ?", code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		before := product.Quantity
		if err := s.productRepo.UpdateStock(tx, code, newQuantity); err != nil {
			return err
		}

		delta := newQuantity - before
		if delta < 0 {
			delta = -delta
		}
		entry := &model.Transaction{
			Type:        model.TxAdjust,
			ProductCode: product.Code,
			ProductName: product.Name,
			Quantity:    delta,
			BeforeQty:   before,
			AfterQty:    newQuantity,
		}
		entry.StampTime(time.Now())
		if err := s.transactionRepo.Append(tx, entry); err != nil {
			return err
		}

		s.publish("quantity_adjusted",
			fmt.Sprintf("set '%s' to %d on hand (was %d)", product.Name, newQuantity, before),
			entry)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newQuantity, nil
}

// BulkSetRecommended recalculates recommended levels for a whole category.
// Recommended is not a stock event, so no ledger entries are written.
func (s *ledgerService) BulkSetRecommended(category string, multiplier float64) (int, error) {
	if !model.IsAssignableCategory(category) {
		return 0, validationf("unknown category '%s'", category)
	}
	if multiplier <= 0 {
		return 0, validationf("multiplier must be greater than 0")
	}

	products, err := s.productRepo.FindByCategory(category)
	if err != nil {
		return 0, err
	}

	for i := range products {
		rec := int(float64(products[i].Quantity) * multiplier)
		if rec < model.RecommendedFloor {
			rec = model.RecommendedFloor
		}
		products[i].Recommended = rec
		if err := s.productRepo.Save(&products[i]); err != nil {
			return 0, err
		}
	}

	if len(products) > 0 {
		s.publish("recommended_updated",
			fmt.Sprintf("recalculated recommended stock for %d products in %s", len(products), model.CategoryLabel(category)),
			nil)
	}
	return len(products), nil
}

func (s *ledgerService) ListProducts(filter repository.ProductFilter) ([]ProductRow, error) {
	products, err := s.productRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	rows := make([]ProductRow, len(products))
	for i, p := range products {
		rows[i] = ProductRow{Product: p, CategoryLabel: model.CategoryLabel(p.Category)}
	}
	return rows, nil
}

func (s *ledgerService) ListTransactions(filter repository.TransactionFilter) ([]model.Transaction, error) {
	return s.transactionRepo.FindAll(filter)
}

func (s *ledgerService) ResetProducts() error {
	if err := s.productRepo.DeleteAll(nil); err != nil {
		return err
	}
	s.publish("products_reset", "product table cleared", nil)
	return nil
}

func (s *ledgerService) ResetTransactions() error {
	if err := s.transactionRepo.DeleteAll(); err != nil {
		return err
	}
	s.publish("transactions_reset", "transaction log cleared", nil)
	return nil
}
