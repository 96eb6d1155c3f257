package model

// Product is one row of the store's inventory table. Code is the business
// key (barcode); quantity only moves through ledger transactions, except for
// full-table resets and spreadsheet imports.
type Product struct {
	BaseModel
	Code        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category    string `gorm:"type:varchar(2);not null;index" json:"category" validate:"required,category_code"`
	Price       int64  `gorm:"default:0" json:"price" validate:"gte=0"`
	Quantity    int    `gorm:"default:0" json:"quantity" validate:"gte=0"`
	Recommended int    `gorm:"default:0" json:"recommended" validate:"gte=0"`
}

// RecommendedFloor is the minimum auto-derived recommended quantity.
const RecommendedFloor = 5

// DefaultRecommended derives a recommended quantity from the current stock
// when none was supplied: max(quantity * 1.5, 5), truncated.
func DefaultRecommended(quantity int) int {
	rec := int(float64(quantity) * 1.5)
	if rec < RecommendedFloor {
		return RecommendedFloor
	}
	return rec
}

// Shortage is how far the product sits below its recommended level, 0 when
// stocked at or above it.
func (p *Product) Shortage() int {
	if p.Quantity >= p.Recommended {
		return 0
	}
	return p.Recommended - p.Quantity
}
