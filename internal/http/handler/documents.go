package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"docshelf/internal/category"
	"docshelf/internal/model"
	"docshelf/internal/service"
)

type documentList struct {
	Items []model.Document `json:"items"`
	Total int              `json:"total"`
}

type uploadResponse struct {
	Data   []model.Document `json:"data"`
	Errors []string         `json:"errors,omitempty"`
}

// ListDocuments applies the q, category and tag query parameters as the active filter and
// returns the documents passing it.
func ListDocuments(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mgr.SetFilter(service.Filter{
			Query:    c.Query("q"),
			Category: c.Query("category", category.All),
			Tag:      c.Query("tag", service.AllTags),
		})
		docs := mgr.Visible()
		return c.JSON(documentList{Items: docs, Total: len(docs)})
	}
}

// UploadDocuments uploads the multipart "files" under "category". Some files failing yields
// 207 with the created documents and one message per failure.
func UploadDocuments(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, cat, err := uploadForm(c)
		if err != nil {
			return writeFormError(c, err)
		}
		created, err := mgr.ConfirmUpload(c.UserContext(), files, cat)
		return writeUploadResult(c, created, err)
	}
}

func writeUploadResult(c *fiber.Ctx, created []model.Document, err error) error {
	if err != nil && len(created) == 0 {
		return writeServiceError(c, err, "UPLOAD_FAILED")
	}
	if err != nil {
		return c.Status(fiber.StatusMultiStatus).JSON(uploadResponse{Data: created, Errors: errorMessages(err)})
	}
	return c.Status(fiber.StatusCreated).JSON(uploadResponse{Data: created})
}

func GetDocument(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := mgr.Get(c.Params("id"))
		if err != nil {
			return writeServiceError(c, err, "")
		}
		return c.JSON(doc)
	}
}

// UpdateDocument replaces the description.
func UpdateDocument(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req patchRequest
		if fe := parseBody(c, &req); fe != nil {
			return writeFormError(c, fe)
		}
		doc, err := mgr.UpdateDocument(c.UserContext(), c.Params("id"), model.DocumentPatch{Description: req.Description})
		if err != nil {
			return writeServiceError(c, err, "SAVE_FAILED")
		}
		return c.JSON(doc)
	}
}

// DeleteDocument answers 204 for unknown ids too.
func DeleteDocument(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := mgr.DeleteDocument(c.UserContext(), c.Params("id")); err != nil {
			return writeServiceError(c, err, "SAVE_FAILED")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func AddTag(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req tagRequest
		if fe := parseBody(c, &req); fe != nil {
			return writeFormError(c, fe)
		}
		doc, err := mgr.AddTag(c.UserContext(), c.Params("id"), req.Tag)
		if err != nil {
			return writeServiceError(c, err, "SAVE_FAILED")
		}
		return c.JSON(doc)
	}
}

func RemoveTag(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tag, err := url.PathUnescape(c.Params("tag"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_TAG", "invalid tag")
		}
		doc, err := mgr.RemoveTag(c.UserContext(), c.Params("id"), tag)
		if err != nil {
			return writeServiceError(c, err, "SAVE_FAILED")
		}
		return c.JSON(doc)
	}
}

// AddLink attaches a reference URL. An empty title defaults to the URL.
func AddLink(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req linkRequest
		if fe := parseBody(c, &req); fe != nil {
			return writeFormError(c, fe)
		}
		doc, err := mgr.AddLink(c.UserContext(), c.Params("id"), req.URL, req.Title)
		if err != nil {
			return writeServiceError(c, err, "SAVE_FAILED")
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

func RemoveLink(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := mgr.RemoveLink(c.UserContext(), c.Params("id"), c.Params("linkId"))
		if err != nil {
			return writeServiceError(c, err, "SAVE_FAILED")
		}
		return c.JSON(doc)
	}
}

// OpenDocument opens the file through the active strategy.
func OpenDocument(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := mgr.OpenDocument(c.UserContext(), c.Params("id")); err != nil {
			return writeServiceError(c, err, "OPEN_FAILED")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func SelectDocument(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := mgr.Select(c.Params("id"))
		if err != nil {
			return writeServiceError(c, err, "")
		}
		return c.JSON(doc)
	}
}

func GetSelection(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, ok := mgr.Selected()
		if !ok {
			return writeError(c, fiber.StatusNotFound, "NO_SELECTION", "no document is selected")
		}
		return c.JSON(doc)
	}
}

func ClearSelection(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mgr.ClearSelection()
		return c.SendStatus(fiber.StatusNoContent)
	}
}
