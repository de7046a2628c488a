package handler

import (
	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"

	"docshelf/internal/service"
	"docshelf/internal/strategy"
)

type stats struct {
	Documents      int    `json:"documents"`
	TotalSize      int64  `json:"total_size"`
	TotalSizeHuman string `json:"total_size_human"`
}

type storageStatus struct {
	Active    string   `json:"active"`
	Available []string `json:"available"`
	Busy      bool     `json:"busy"`
}

// ListCategories returns every category with its document count.
func ListCategories(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"items": mgr.CategoryStats()})
	}
}

// ListTags returns the distinct tags in first-seen order.
func ListTags(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"items": mgr.AllTags()})
	}
}

func Stats(mgr service.DocumentManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		size := mgr.TotalSize()
		return c.JSON(stats{
			Documents:      len(mgr.Documents()),
			TotalSize:      size,
			TotalSizeHuman: humanize.IBytes(uint64(max(size, 0))),
		})
	}
}

func GetStorage(mgr service.DocumentManager, reg *strategy.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(storageStatus{Active: mgr.StrategyName(), Available: reg.Names(), Busy: mgr.Busy()})
	}
}

// SetStorage switches the manager to another configured strategy and reloads from it.
// Documents held by the previous strategy are not carried over.
func SetStorage(mgr service.DocumentManager, reg *strategy.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req storageRequest
		if fe := parseBody(c, &req); fe != nil {
			return writeFormError(c, fe)
		}
		s, ok := reg.Get(req.Strategy)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "UNKNOWN_STRATEGY", "strategy is not configured")
		}
		if err := mgr.SetStrategy(c.UserContext(), req.Strategy, s); err != nil {
			return writeServiceError(c, err, "LOAD_FAILED")
		}
		return c.JSON(storageStatus{Active: mgr.StrategyName(), Available: reg.Names(), Busy: mgr.Busy()})
	}
}
