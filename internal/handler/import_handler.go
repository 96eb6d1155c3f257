package handler

import (
	"go-store-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ImportHandler struct {
	service service.ImportService
}

func NewImportHandler(s service.ImportService) *ImportHandler {
	return &ImportHandler{service: s}
}

// Upload runs one import cycle from a multipart form.
// Form fields: file (xlsx), category (optional), mode (replace|merge, default merge)
func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Missing 'file' upload"})
	}

	mode := service.ImportMode(c.FormValue("mode", string(service.ModeMerge)))
	category := c.FormValue("category")

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Unreadable upload"})
	}
	defer file.Close()

	report, err := h.service.Reconcile(file, category, mode)
	if err != nil {
		// The report still carries the rejection state and row detail.
		status := fiber.StatusUnprocessableEntity
		if !service.IsValidation(err) {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error(), "report": report})
	}

	return c.JSON(fiber.Map{"message": "Import applied", "report": report})
}
