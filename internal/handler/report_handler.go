package handler

import (
	"time"

	"go-store-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetReorderList returns products below their recommended level, worst first.
// Query params: priority (critical|high|medium|low)
func (h *ReportHandler) GetReorderList(c *fiber.Ctx) error {
	items, err := h.service.ReorderList(c.Query("priority"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute reorder list"})
	}
	return c.JSON(fiber.Map{"count": len(items), "data": items})
}

func (h *ReportHandler) GetCategoryComposition(c *fiber.Ctx) error {
	stats, err := h.service.CategoryComposition()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch category composition"})
	}
	return c.JSON(stats)
}

func (h *ReportHandler) GetWeekdayMovement(c *fiber.Ctx) error {
	data, err := h.service.WeekdayMovement()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch weekday movement"})
	}
	return c.JSON(data)
}

func (h *ReportHandler) GetMonthlyMovement(c *fiber.Ctx) error {
	data, err := h.service.MonthlyMovement()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch monthly movement"})
	}
	return c.JSON(data)
}

func (h *ReportHandler) GetCategorySales(c *fiber.Ctx) error {
	data, err := h.service.CategorySales()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch category sales"})
	}
	return c.JSON(data)
}

func (h *ReportHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.DashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}

// GetPeriodSummary returns headline numbers for a date range.
// Query params: from, to (YYYY-MM-DD, default last 30 days)
func (h *ReportHandler) GetPeriodSummary(c *fiber.Ctx) error {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if q := c.Query("from"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid 'from' date"})
		}
		from = parsed
	}
	if q := c.Query("to"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid 'to' date"})
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	summary, err := h.service.PeriodSummary(from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch period summary"})
	}
	return c.JSON(summary)
}
