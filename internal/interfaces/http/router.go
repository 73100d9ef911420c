// Package http expone la API REST con Fiber: rutas, middlewares de
// autenticación (JWT) y autorización por rol, y el mapeo de errores de
// dominio a códigos HTTP.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velia-co/crm-api/internal/application/auth"
	"github.com/velia-co/crm-api/internal/application/billing"
	"github.com/velia-co/crm-api/internal/application/catalog"
	"github.com/velia-co/crm-api/internal/application/crm"
	"github.com/velia-co/crm-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *crm.CompanyUseCase
	ContactUC    *crm.ContactUseCase
	PipelineUC   *crm.PipelineUseCase
	DealUC       *crm.DealUseCase
	ProductUC    *catalog.ProductUseCase
	InvoiceUC    *billing.CreateInvoiceUseCase
	CreditNoteUC *billing.CreateCreditNoteUseCase
	QuoteUC      *billing.QuoteUseCase
	ExportUC     *billing.ExportUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies: el alta es pública (onboarding), la consulta requiere token
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", AuthMiddleware(deps.JWTSecret), companyHandler.List)
	companies.Get("/:id", AuthMiddleware(deps.JWTSecret), companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Contacts (protegido, cualquier rol)
	contacts := protected.Group("/contacts")
	contactHandler := NewContactHandler(deps.ContactUC)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/", contactHandler.Search)
	contacts.Get("/:id", contactHandler.GetByID)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Delete("/:id", RequireRole(entity.RoleAdmin), contactHandler.Delete)

	// Products (protegido; escritura solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Pipelines y tablero kanban (protegido; deals para admin y ventas)
	pipelines := protected.Group("/pipelines")
	pipelineHandler := NewPipelineHandler(deps.PipelineUC)
	dealHandler := NewDealHandler(deps.DealUC)
	pipelines.Post("/", RequireRole(entity.RoleAdmin), pipelineHandler.Create)
	pipelines.Get("/", pipelineHandler.List)
	pipelines.Get("/:id", pipelineHandler.GetByID)
	pipelines.Get("/:id/board", dealHandler.Board)

	deals := protected.Group("/deals", RequireRole(entity.RoleAdmin, entity.RoleVentas))
	deals.Post("/", dealHandler.Create)
	deals.Patch("/:id/move", dealHandler.Move)
	deals.Patch("/:id/status", dealHandler.UpdateStatus)

	// Quotes (protegido, admin y ventas; conversión también facturación)
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.ExportUC)
	quotes.Post("/", RequireRole(entity.RoleAdmin, entity.RoleVentas), quoteHandler.Create)
	quotes.Get("/", quoteHandler.Search)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Get("/:id/pdf", quoteHandler.GeneratePDF)
	quotes.Post("/:id/convert", RequireRole(entity.RoleAdmin, entity.RoleFacturacion), quoteHandler.Convert)

	// Invoices (protegido; emisión solo admin y facturación)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.ExportUC)
	invoices.Post("/", RequireRole(entity.RoleAdmin, entity.RoleFacturacion), invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.Search)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.GeneratePDF)
	invoices.Get("/:id/xml", invoiceHandler.GenerateXML)

	// Credit notes (protegido; emisión solo admin y facturación)
	creditNotes := protected.Group("/credit-notes")
	creditNoteHandler := NewCreditNoteHandler(deps.CreditNoteUC, deps.ExportUC)
	creditNotes.Post("/", RequireRole(entity.RoleAdmin, entity.RoleFacturacion), creditNoteHandler.Create)
	creditNotes.Get("/", creditNoteHandler.Search)
	creditNotes.Get("/:id", creditNoteHandler.GetByID)
	creditNotes.Get("/:id/pdf", creditNoteHandler.GeneratePDF)
	creditNotes.Get("/:id/xml", creditNoteHandler.GenerateXML)
}
