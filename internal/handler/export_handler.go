package handler

import (
	"fmt"
	"time"

	"go-store-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	service service.ExportService
}

func NewExportHandler(s service.ExportService) *ExportHandler {
	return &ExportHandler{service: s}
}

func sendWorkbook(c *fiber.Ctx, prefix string, data []byte) error {
	filename := fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func (h *ExportHandler) Products(c *fiber.Ctx) error {
	data, err := h.service.ProductsWorkbook()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build product export"})
	}
	return sendWorkbook(c, "inventory", data)
}

func (h *ExportHandler) Transactions(c *fiber.Ctx) error {
	data, err := h.service.TransactionsWorkbook()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build transaction export"})
	}
	return sendWorkbook(c, "transactions", data)
}

func (h *ExportHandler) OrderSheet(c *fiber.Ctx) error {
	data, err := h.service.OrderSheetWorkbook(c.Query("priority"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build order sheet"})
	}
	return sendWorkbook(c, "order_sheet", data)
}

func (h *ExportHandler) Template(c *fiber.Ctx) error {
	data, err := h.service.TemplateWorkbook()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build template"})
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory_upload_template.xlsx"`)
	return c.Send(data)
}
