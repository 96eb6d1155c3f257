package service

import (
	"sort"
	"strconv"
	"time"

	"go-store-ledger/internal/model"
	"go-store-ledger/internal/repository"
)

// Reorder priority buckets, from the store's ordering screen.
const (
	PriorityCritical = "critical" // out of stock
	PriorityHigh     = "high"     // shortage >= 20
	PriorityMedium   = "medium"   // shortage >= 10
	PriorityLow      = "low"
)

// ReorderItem is one product below its recommended level.
type ReorderItem struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	CategoryLabel string `json:"category_label"`
	Quantity      int    `json:"quantity"`
	Recommended   int    `json:"recommended"`
	Shortage      int    `json:"shortage"`
	Priority      string `json:"priority"`
}

type ReportService interface {
	ReorderList(priority string) ([]ReorderItem, error)
	CategoryComposition() ([]repository.CategoryComposition, error)
	WeekdayMovement() ([]repository.MovementData, error)
	MonthlyMovement() ([]repository.MovementData, error)
	CategorySales() ([]repository.CategorySales, error)
	DashboardStats() (*repository.DashboardStats, error)
	PeriodSummary(from, to time.Time) (*repository.PeriodSummary, error)
}

type reportService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
}

func NewReportService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository) ReportService {
	return &reportService{productRepo: pRepo, transactionRepo: tRepo}
}

// ComputeReorderList returns every product short of its recommended level,
// sorted by shortage descending. The sort is stable so ties keep table order.
// Pure over its input; no side effects.
func ComputeReorderList(products []model.Product) []ReorderItem {
	var items []ReorderItem
	for _, p := range products {
		shortage := p.Shortage()
		if shortage <= 0 {
			continue
		}
		items = append(items, ReorderItem{
			Code:          p.Code,
			Name:          p.Name,
			Category:      p.Category,
			CategoryLabel: model.CategoryLabel(p.Category),
			Quantity:      p.Quantity,
			Recommended:   p.Recommended,
			Shortage:      shortage,
			Priority:      reorderPriority(p.Quantity, shortage),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Shortage > items[j].Shortage
	})
	return items
}

func reorderPriority(quantity, shortage int) string {
	switch {
	case quantity == 0:
		return PriorityCritical
	case shortage >= 20:
		return PriorityHigh
	case shortage >= 10:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func (s *reportService) ReorderList(priority string) ([]ReorderItem, error) {
	products, err := s.productRepo.FindAll(repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	items := ComputeReorderList(products)
	if priority == "" {
		return items, nil
	}

	filtered := items[:0]
	for _, item := range items {
		if item.Priority == priority {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (s *reportService) CategoryComposition() ([]repository.CategoryComposition, error) {
	return s.productRepo.GetCategoryComposition()
}

// WeekdayMovement returns sales-vs-disposal per weekday, Monday first, with
// zero rows for quiet days so the chart axis stays complete.
func (s *reportService) WeekdayMovement() ([]repository.MovementData, error) {
	raw, err := s.transactionRepo.GetWeekdayMovement()
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]repository.MovementData, len(raw))
	for _, data := range raw {
		byDay[data.Bucket] = data
	}

	week := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	ordered := make([]repository.MovementData, 0, len(week))
	for _, day := range week {
		if data, ok := byDay[day]; ok {
			ordered = append(ordered, data)
		} else {
			ordered = append(ordered, repository.MovementData{Bucket: day})
		}
	}
	return ordered, nil
}

func (s *reportService) MonthlyMovement() ([]repository.MovementData, error) {
	raw, err := s.transactionRepo.GetMonthlyMovement()
	if err != nil {
		return nil, err
	}

	sort.Slice(raw, func(i, j int) bool {
		a, _ := strconv.Atoi(raw[i].Bucket)
		b, _ := strconv.Atoi(raw[j].Bucket)
		return a < b
	})
	return raw, nil
}

func (s *reportService) CategorySales() ([]repository.CategorySales, error) {
	return s.transactionRepo.GetCategorySales()
}

func (s *reportService) DashboardStats() (*repository.DashboardStats, error) {
	return s.productRepo.GetDashboardStats()
}

func (s *reportService) PeriodSummary(from, to time.Time) (*repository.PeriodSummary, error) {
	return s.transactionRepo.GetPeriodSummary(from, to)
}
