package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"docshelf/internal/category"
	"docshelf/internal/service"
)

type numberPreview struct {
	Category       category.Key `json:"category"`
	DocumentNumber string       `json:"document_number"`
}

// PreviewDocumentNumber returns the number the next upload of ?category= would get today.
func PreviewDocumentNumber(mgr service.DocumentManager, cats *category.Registry, now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat := category.Key(c.Query("category"))
		if !cats.Valid(cat) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_CATEGORY", "unknown category")
		}
		return c.JSON(numberPreview{Category: cat, DocumentNumber: mgr.GenerateDocumentNumber(cat, now())})
	}
}

// StageUpload holds a batch for confirmation. Staging again replaces the batch.
func StageUpload(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, cat, err := uploadForm(c)
		if err != nil {
			return writeFormError(c, err)
		}
		if err := mgr.StageUpload(files, cat); err != nil {
			return writeServiceError(c, err, "")
		}
		view, _ := mgr.Pending()
		return c.Status(fiber.StatusCreated).JSON(view)
	}
}

func GetPendingUpload(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, ok := mgr.Pending()
		if !ok {
			return writeServiceError(c, service.ErrNothingPending, "")
		}
		return c.JSON(view)
	}
}

func ConfirmPendingUpload(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		created, err := mgr.ConfirmPendingUpload(c.UserContext())
		return writeUploadResult(c, created, err)
	}
}

func CancelUpload(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mgr.CancelUpload()
		return c.SendStatus(fiber.StatusNoContent)
	}
}
