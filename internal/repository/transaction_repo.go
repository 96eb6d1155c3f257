package repository

import (
	"time"

	"go-store-ledger/internal/model"

	"gorm.io/gorm"
)

// TransactionFilter narrows log listings; zero values mean no constraint.
type TransactionFilter struct {
	Types []model.TransactionType
	From  time.Time
	To    time.Time
}

// MovementData is one sales-vs-disposal aggregate bucket, keyed by weekday
// name or month number depending on the query.
type MovementData struct {
	Bucket   string `json:"bucket"`
	Sold     int64  `json:"sold"`
	Disposed int64  `json:"disposed"`
}

// CategorySales is total sold quantity for one category, via the product's
// current category assignment.
type CategorySales struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Sold     int64  `json:"sold"`
}

// PeriodSummary is the headline numbers for a date range.
type PeriodSummary struct {
	TransactionCount int64   `json:"transaction_count"`
	TotalSold        int64   `json:"total_sold"`
	TotalDisposed    int64   `json:"total_disposed"`
	DisposalRate     float64 `json:"disposal_rate"`
}

type TransactionRepository interface {
	Append(tx *gorm.DB, transaction *model.Transaction) error
	FindAll(filter TransactionFilter) ([]model.Transaction, error)
	GetWeekdayMovement() ([]MovementData, error)
	GetMonthlyMovement() ([]MovementData, error)
	GetCategorySales() ([]CategorySales, error)
	GetPeriodSummary(from, to time.Time) (*PeriodSummary, error)
	DeleteAll() error
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Append(tx *gorm.DB, transaction *model.Transaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(transaction).Error
}

func (r *transactionRepo) FindAll(filter TransactionFilter) ([]model.Transaction, error) {
	q := r.db.Model(&model.Transaction{}).Order("created_at DESC")
	if len(filter.Types) > 0 {
		q = q.Where("type IN ?", filter.Types)
	}
	if !filter.From.IsZero() {
		q = q.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("created_at <= ?", filter.To)
	}

	var transactions []model.Transaction
	err := q.Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) GetWeekdayMovement() ([]MovementData, error) {
	return r.movement("weekday")
}

func (r *transactionRepo) GetMonthlyMovement() ([]MovementData, error) {
	return r.movement("month")
}

// movement aggregates sale and disposal quantities by the stamped weekday or
// month column.
func (r *transactionRepo) movement(column string) ([]MovementData, error) {
	rows, err := r.db.Model(&model.Transaction{}).
		Select(column + ` as bucket,
			COALESCE(SUM(CASE WHEN type = 'SALE' THEN quantity ELSE 0 END), 0) as sold,
			COALESCE(SUM(CASE WHEN type = 'DISPOSAL' THEN quantity ELSE 0 END), 0) as disposed`).
		Where("type IN ?", []model.TransactionType{model.TxSale, model.TxDisposal}).
		Group(column).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MovementData
	for rows.Next() {
		var data MovementData
		if err := rows.Scan(&data.Bucket, &data.Sold, &data.Disposed); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, nil
}

func (r *transactionRepo) GetCategorySales() ([]CategorySales, error) {
	rows, err := r.db.Model(&model.Transaction{}).
		Select(`products.category as category,
			COALESCE(SUM(transactions.quantity), 0) as sold`).
		Joins("JOIN products ON products.code = transactions.product_code").
		Where("transactions.type = ?", model.TxSale).
		Group("products.category").
		Order("sold DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []CategorySales
	for rows.Next() {
		var data CategorySales
		if err := rows.Scan(&data.Category, &data.Sold); err != nil {
			return nil, err
		}
		data.Label = model.CategoryLabel(data.Category)
		results = append(results, data)
	}
	return results, nil
}

func (r *transactionRepo) GetPeriodSummary(from, to time.Time) (*PeriodSummary, error) {
	var summary PeriodSummary

	if err := r.db.Model(&model.Transaction{}).
		Where("created_at BETWEEN ? AND ?", from, to).
		Count(&summary.TransactionCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Transaction{}).
		Where("type = ? AND created_at BETWEEN ? AND ?", model.TxSale, from, to).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&summary.TotalSold).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Transaction{}).
		Where("type = ? AND created_at BETWEEN ? AND ?", model.TxDisposal, from, to).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&summary.TotalDisposed).Error; err != nil {
		return nil, err
	}

	if moved := summary.TotalSold + summary.TotalDisposed; moved > 0 {
		summary.DisposalRate = float64(summary.TotalDisposed) / float64(moved) * 100
	}
	return &summary, nil
}

func (r *transactionRepo) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&model.Transaction{}).Error
}
