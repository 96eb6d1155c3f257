package model

import "time"

type TransactionType string

const (
	TxInbound  TransactionType = "INBOUND"
	TxSale     TransactionType = "SALE"
	TxDisposal TransactionType = "DISPOSAL"
	TxAdjust   TransactionType = "ADJUST"
	TxRegister TransactionType = "REGISTER"
)

// Sign returns the stock direction of the type: +1 for inbound/registration,
// -1 for sale/disposal, 0 for direct adjustment.
func (t TransactionType) Sign() int {
	switch t {
	case TxInbound, TxRegister:
		return 1
	case TxSale, TxDisposal:
		return -1
	}
	return 0
}

// Transaction is one append-only ledger entry. ProductName is a snapshot so
// the log stays readable after a table reset; Quantity is the unsigned
// magnitude of the change, direction recoverable from BeforeQty/AfterQty.
// Weekday and Month are stamped at append time for the report aggregates.
type Transaction struct {
	BaseModel
	Type        TransactionType `gorm:"type:varchar(10);not null;index" json:"type" validate:"required,tx_type"`
	ProductCode string          `gorm:"type:varchar(50);not null;index" json:"product_code" validate:"required"`
	ProductName string          `gorm:"type:varchar(255)" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity" validate:"gte=0"`
	BeforeQty   int             `gorm:"not null" json:"before_qty"`
	AfterQty    int             `gorm:"not null" json:"after_qty"`
	Weekday     string          `gorm:"type:varchar(10)" json:"weekday"`
	Month       int             `json:"month"`
}

// StampTime fills the derived weekday/month columns from the given moment.
func (t *Transaction) StampTime(now time.Time) {
	t.Weekday = now.Weekday().String()
	t.Month = int(now.Month())
}
