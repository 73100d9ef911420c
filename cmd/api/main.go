package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/velia-co/crm-api/internal/application/auth"
	appbilling "github.com/velia-co/crm-api/internal/application/billing"
	"github.com/velia-co/crm-api/internal/application/catalog"
	"github.com/velia-co/crm-api/internal/application/crm"
	infrapdf "github.com/velia-co/crm-api/internal/infrastructure/pdf"
	"github.com/velia-co/crm-api/internal/infrastructure/postgres"
	"github.com/velia-co/crm-api/internal/infrastructure/ubl"
	httpRouter "github.com/velia-co/crm-api/internal/interfaces/http"
	"github.com/velia-co/crm-api/pkg/config"
	"github.com/velia-co/crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	pipelineRepo := postgres.NewPipelineRepository(pool)
	dealRepo := postgres.NewDealRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := crm.NewCompanyUseCase(companyRepo)
	contactUC := crm.NewContactUseCase(customerRepo)
	pipelineUC := crm.NewPipelineUseCase(pipelineRepo)
	dealUC := crm.NewDealUseCase(dealRepo, pipelineRepo, customerRepo, txRunner, crm.Defaults{
		DefaultPipelineID: cfg.CRM.DefaultPipelineID,
	})
	productUC := catalog.NewProductUseCase(productRepo)

	assembler := appbilling.NewDocumentAssembler(customerRepo, productRepo, appbilling.Defaults{
		Prefix:           cfg.Billing.Prefix,
		ResolutionNumber: cfg.Billing.ResolutionNumber,
	})
	invoiceUC := appbilling.NewCreateInvoiceUseCase(txRunner, documentRepo, assembler)
	creditNoteUC := appbilling.NewCreateCreditNoteUseCase(txRunner, documentRepo, assembler)
	quoteUC := appbilling.NewQuoteUseCase(txRunner, documentRepo, assembler)
	exportUC := appbilling.NewExportUseCase(
		documentRepo, companyRepo,
		infrapdf.NewMarotoPDFGenerator(),
		ubl.NewXMLBuilder(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Velia CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		ContactUC:    contactUC,
		PipelineUC:   pipelineUC,
		DealUC:       dealUC,
		ProductUC:    productUC,
		InvoiceUC:    invoiceUC,
		CreditNoteUC: creditNoteUC,
		QuoteUC:      quoteUC,
		ExportUC:     exportUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
