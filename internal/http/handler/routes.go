package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"docshelf/internal/category"
	"docshelf/internal/service"
	"docshelf/internal/strategy"
)

// Deps are the collaborators the routes are built on.
type Deps struct {
	Manager    service.DocumentManager
	Strategies *strategy.Registry
	Categories *category.Registry
	// DB is pinged by /health; nil when no database is configured.
	DB  Pinger
	Now func() time.Time
}

// RegisterRoutes attaches the document shell routes to app.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.Categories == nil {
		d.Categories = category.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	mgr := d.Manager

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	docs := app.Group("/documents")
	docs.Get("/", ListDocuments(mgr))
	docs.Post("/", UploadDocuments(mgr))
	docs.Get("/:id", GetDocument(mgr))
	docs.Patch("/:id", UpdateDocument(mgr))
	docs.Delete("/:id", DeleteDocument(mgr))
	docs.Post("/:id/tags", AddTag(mgr))
	docs.Delete("/:id/tags/:tag", RemoveTag(mgr))
	docs.Post("/:id/links", AddLink(mgr))
	docs.Delete("/:id/links/:linkId", RemoveLink(mgr))
	docs.Post("/:id/open", OpenDocument(mgr))
	docs.Post("/:id/select", SelectDocument(mgr))

	app.Get("/selection", GetSelection(mgr))
	app.Delete("/selection", ClearSelection(mgr))

	app.Get("/document-number", PreviewDocumentNumber(mgr, d.Categories, d.Now))

	app.Post("/uploads", StageUpload(mgr))
	app.Get("/uploads", GetPendingUpload(mgr))
	app.Post("/uploads/confirm", ConfirmPendingUpload(mgr))
	app.Delete("/uploads", CancelUpload(mgr))

	app.Get("/categories", ListCategories(mgr))
	app.Get("/tags", ListTags(mgr))
	app.Get("/stats", Stats(mgr))

	app.Get("/storage", GetStorage(mgr, d.Strategies))
	app.Put("/storage", SetStorage(mgr, d.Strategies))
}
