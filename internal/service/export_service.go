package service

import (
	"time"

	"go-store-ledger/internal/excel"
	"go-store-ledger/internal/repository"
)

// ExportService renders the current tables as styled xlsx downloads.
type ExportService interface {
	ProductsWorkbook() ([]byte, error)
	TransactionsWorkbook() ([]byte, error)
	OrderSheetWorkbook(priority string) ([]byte, error)
	TemplateWorkbook() ([]byte, error)
}

type exportService struct {
	ledger  LedgerService
	reports ReportService
}

func NewExportService(ledger LedgerService, reports ReportService) ExportService {
	return &exportService{ledger: ledger, reports: reports}
}

func (s *exportService) ProductsWorkbook() ([]byte, error) {
	products, err := s.ledger.ListProducts(repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	headers := []string{"code", "name", "category", "category_label", "price", "quantity", "recommended", "updated_at"}
	rows := make([][]interface{}, len(products))
	for i, p := range products {
		rows[i] = []interface{}{
			p.Code, p.Name, p.Category, p.CategoryLabel,
			p.Price, p.Quantity, p.Recommended,
			p.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return excel.BuildWorkbook(headers, rows)
}

func (s *exportService) TransactionsWorkbook() ([]byte, error) {
	transactions, err := s.ledger.ListTransactions(repository.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	headers := []string{"timestamp", "type", "code", "name", "quantity", "before", "after", "weekday", "month"}
	rows := make([][]interface{}, len(transactions))
	for i, t := range transactions {
		rows[i] = []interface{}{
			t.CreatedAt.Format("2006-01-02 15:04:05"), string(t.Type),
			t.ProductCode, t.ProductName,
			t.Quantity, t.BeforeQty, t.AfterQty,
			t.Weekday, t.Month,
		}
	}
	return excel.BuildWorkbook(headers, rows)
}

// OrderSheetWorkbook renders the reorder list as a ready-to-send order form:
// shortage becomes the order quantity, with date and note columns for the
// person placing it.
func (s *exportService) OrderSheetWorkbook(priority string) ([]byte, error) {
	items, err := s.reports.ReorderList(priority)
	if err != nil {
		return nil, err
	}

	orderDate := time.Now().Format("2006-01-02")
	headers := []string{"priority", "code", "name", "category", "on_hand", "recommended", "order_qty", "order_date", "note"}
	rows := make([][]interface{}, len(items))
	for i, item := range items {
		rows[i] = []interface{}{
			item.Priority, item.Code, item.Name, item.CategoryLabel,
			item.Quantity, item.Recommended, item.Shortage,
			orderDate, "",
		}
	}
	return excel.BuildWorkbook(headers, rows)
}

// TemplateWorkbook is the blank upload form with two sample rows.
func (s *exportService) TemplateWorkbook() ([]byte, error) {
	headers := []string{"code", "name", "price", "quantity", "recommended"}
	rows := [][]interface{}{
		{"8801234567890", "Tuna Mayo Rice Ball", 1200, 10, 20},
		{"8801234567891", "Bulgogi Rice Ball", 1300, 15, 25},
	}
	return excel.BuildWorkbook(headers, rows)
}
