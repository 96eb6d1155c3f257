package repository

import (
	"strings"

	"go-store-ledger/internal/model"

	"gorm.io/gorm"
)

// ProductFilter narrows listings; zero values mean no constraint. Code and
// Name are case-insensitive substring matches.
type ProductFilter struct {
	Category string
	Code     string
	Name     string
}

// CategoryComposition is one aggregate row of the per-category dashboard
// table.
type CategoryComposition struct {
	Category         string  `json:"category"`
	Label            string  `json:"label"`
	ProductCount     int64   `json:"product_count"`
	TotalStock       int64   `json:"total_stock"`
	MeanStock        float64 `json:"mean_stock"`
	TotalRecommended int64   `json:"total_recommended"`
}

// DashboardStats is the overview header of the dashboard.
type DashboardStats struct {
	TotalProducts int64 `json:"total_products"`
	TotalStock    int64 `json:"total_stock"`
	StockValue    int64 `json:"stock_value"`
	LowStockCount int64 `json:"low_stock_count"`
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(filter ProductFilter) ([]model.Product, error)
	FindByCode(code string) (*model.Product, error)
	FindByCategory(category string) ([]model.Product, error)
	Save(product *model.Product) error
	UpdateStock(tx *gorm.DB, code string, newQuantity int) error
	GetCategoryComposition() ([]CategoryComposition, error)
	GetDashboardStats() (*DashboardStats, error)
	Count() (int64, error)
	DeleteAll(tx *gorm.DB) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(filter ProductFilter) ([]model.Product, error) {
	q := r.db.Model(&model.Product{}).Order("created_at ASC")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Code != "" {
		q = q.Where("code LIKE ?", "%"+filter.Code+"%")
	}
	if filter.Name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}

	var products []model.Product
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByCode(code string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByCategory(category string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("category = ?", category).Order("created_at ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Save(product *model.Product) error {
	return r.db.Save(product).Error
}

// UpdateStock takes the enclosing *gorm.DB (tx) so the product write and the
// ledger append land in the same transaction.
func (r *productRepo) UpdateStock(tx *gorm.DB, code string, newQuantity int) error {
	return tx.Model(&model.Product{}).
		Where("code = ?", code).
		Update("quantity", newQuantity).Error
}

func (r *productRepo) GetCategoryComposition() ([]CategoryComposition, error) {
	var results []CategoryComposition

	rows, err := r.db.Model(&model.Product{}).
		Select(`
			category,
			COUNT(*) as product_count,
			COALESCE(SUM(quantity), 0) as total_stock,
			COALESCE(AVG(quantity), 0) as mean_stock,
			COALESCE(SUM(recommended), 0) as total_recommended
		`).
		Group("category").
		Order("category ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data CategoryComposition
		if err := rows.Scan(&data.Category, &data.ProductCount, &data.TotalStock, &data.MeanStock, &data.TotalRecommended); err != nil {
			return nil, err
		}
		data.Label = model.CategoryLabel(data.Category)
		results = append(results, data)
	}

	return results, nil
}

func (r *productRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	r.db.Model(&model.Product{}).Count(&stats.TotalProducts)
	r.db.Model(&model.Product{}).Select("COALESCE(SUM(quantity), 0)").Scan(&stats.TotalStock)
	r.db.Model(&model.Product{}).Select("COALESCE(SUM(quantity * price), 0)").Scan(&stats.StockValue)
	r.db.Model(&model.Product{}).Where("quantity < recommended").Count(&stats.LowStockCount)

	return &stats, nil
}

func (r *productRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) DeleteAll(tx *gorm.DB) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Where("1 = 1").Delete(&model.Product{}).Error
}
