package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/auth"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/documents"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/settings"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/templates"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	DocumentUC *documents.DocumentUseCase
	PDFUC      *documents.PDFUseCase
	TemplateUC *templates.TemplateUseCase
	SettingsUC *settings.SettingsUseCase
	JWTSecret  string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (require Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Documents
	docs := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.PDFUC)
	docs.Post("/", documentHandler.Create)
	docs.Get("/", documentHandler.List)
	docs.Get("/:id", documentHandler.GetByID)
	docs.Get("/:id/pdf", documentHandler.DownloadPDF)
	docs.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleOffice), documentHandler.Delete)

	// Templates (editing restricted to admin/office; technicians can read)
	tpls := protected.Group("/templates")
	templateHandler := NewTemplateHandler(deps.TemplateUC)
	tpls.Get("/", templateHandler.List)
	tpls.Get("/fields/:type", templateHandler.AvailableFields)
	tpls.Get("/default/:type", templateHandler.Default)
	tpls.Get("/:id", templateHandler.GetByID)
	tpls.Post("/", RequireRole(entity.RoleAdmin, entity.RoleOffice), templateHandler.Create)
	tpls.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleOffice), templateHandler.Update)
	tpls.Post("/:id/default", RequireRole(entity.RoleAdmin, entity.RoleOffice), templateHandler.SetDefault)
	tpls.Delete("/:id", RequireRole(entity.RoleAdmin), templateHandler.Delete)

	// Company settings (write restricted to admin)
	settingsGroup := protected.Group("/settings")
	settingsHandler := NewCompanySettingsHandler(deps.SettingsUC)
	settingsGroup.Get("/", settingsHandler.Get)
	settingsGroup.Put("/", RequireRole(entity.RoleAdmin), settingsHandler.Save)
}
