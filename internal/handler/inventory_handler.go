package handler

import (
	"strings"
	"time"

	"go-store-ledger/internal/model"
	"go-store-ledger/internal/repository"
	"go-store-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.LedgerService
}

func NewInventoryHandler(s service.LedgerService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Code:     c.Query("code"),
		Name:     c.Query("name"),
	}

	products, err := h.service.ListProducts(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"count": len(products), "data": products})
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.RegisterProduct(&product); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product registered", "data": product})
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *InventoryHandler) SetQuantity(c *fiber.Ctx) error {
	code := c.Params("code")

	var req setQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	after, err := h.service.SetQuantityDirect(code, req.Quantity)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Quantity adjusted", "quantity": after})
}

type bulkRecommendedRequest struct {
	Category   string  `json:"category"`
	Multiplier float64 `json:"multiplier"`
}

func (h *InventoryHandler) BulkSetRecommended(c *fiber.Ctx) error {
	var req bulkRecommendedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	count, err := h.service.BulkSetRecommended(req.Category, req.Multiplier)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Recommended quantities updated", "updated": count})
}

type createTransactionRequest struct {
	Code     string                `json:"code"`
	Type     model.TransactionType `json:"type"`
	Quantity int                   `json:"quantity"`
}

func (h *InventoryHandler) CreateTransaction(c *fiber.Ctx) error {
	var req createTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	after, err := h.service.ApplyTransaction(req.Code, req.Type, req.Quantity)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "quantity": after})
}

func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	filter := repository.TransactionFilter{}

	if types := c.Query("types"); types != "" {
		for _, t := range strings.Split(types, ",") {
			filter.Types = append(filter.Types, model.TransactionType(strings.ToUpper(strings.TrimSpace(t))))
		}
	}
	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid 'from' date"})
		}
		filter.From = parsed
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid 'to' date"})
		}
		// Inclusive end of day
		filter.To = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	transactions, err := h.service.ListTransactions(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"count": len(transactions), "data": transactions})
}

func (h *InventoryHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(model.CategoryList())
}

func (h *InventoryHandler) ResetProducts(c *fiber.Ctx) error {
	if err := h.service.ResetProducts(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"message": "Product table cleared"})
}

func (h *InventoryHandler) ResetTransactions(c *fiber.Ctx) error {
	if err := h.service.ResetTransactions(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"message": "Transaction log cleared"})
}
