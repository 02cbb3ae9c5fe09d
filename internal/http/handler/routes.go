package handler

import (
	"github.com/gofiber/fiber/v2"

	"docregistro/internal/service"
)

// FixedUploadName is the file name /requests/documents always reports back.
const FixedUploadName = "myPhoto.jpg"

// Dependencies are the collaborators the routes are wired to.
type Dependencies struct {
	// DB is nil when the catalog runs on the in-memory fixture.
	DB      Pinger
	Docs    service.DocumentService
	Catalog service.CatalogService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/", Hello())
	app.Post("/", Acknowledge())

	app.Get("/health", HealthCheck(deps.DB))
	app.Get("/healthz", LivenessProbe())

	app.Post("/send", SendFile(deps.Docs))

	requests := app.Group("/requests")
	requests.Post("/documents", UploadDocument(deps.Docs, service.KindDocument, FixedUploadName))
	requests.Get("/documents", ListRequestDocuments(deps.Docs, "requestId"))
	requests.Delete("/documents/:documentId?", DeleteDocument(deps.Docs))

	registro := app.Group("/api/registro")
	registro.Get("/cat_docs/:catId?", ListCatalog(deps.Catalog))

	registro.Post("/solicitud-documents", UploadDocument(deps.Docs, service.KindDocument, ""))
	registro.Get("/solicitud-documents", ListRequestDocuments(deps.Docs, "id_solicitud"))
	registro.Delete("/solicitud-documents/:documentId?", DeleteDocument(deps.Docs))

	registro.Post("/solicitud-images", UploadDocument(deps.Docs, service.KindImage, ""))
	registro.Get("/solicitud-images", ListRequestPhotos(deps.Docs, "id_solicitud"))

	registro.Get("/photos/:photoId?", GetPhoto(deps.Docs))
	registro.Delete("/photos/:photoId?", DeletePhoto(deps.Docs))
}
