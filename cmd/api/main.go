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

	"github.com/jhoicas/nibso-dashboard/internal/application/analytics"
	"github.com/jhoicas/nibso-dashboard/internal/application/auth"
	"github.com/jhoicas/nibso-dashboard/internal/application/inventory"
	"github.com/jhoicas/nibso-dashboard/internal/application/loyalty"
	"github.com/jhoicas/nibso-dashboard/internal/application/ports"
	"github.com/jhoicas/nibso-dashboard/internal/application/pos"
	"github.com/jhoicas/nibso-dashboard/internal/application/promotion"
	"github.com/jhoicas/nibso-dashboard/internal/application/receipt"
	"github.com/jhoicas/nibso-dashboard/internal/application/sales"
	"github.com/jhoicas/nibso-dashboard/internal/application/usecase"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	infraai "github.com/jhoicas/nibso-dashboard/internal/infrastructure/ai"
	"github.com/jhoicas/nibso-dashboard/internal/infrastructure/kafka"
	"github.com/jhoicas/nibso-dashboard/internal/infrastructure/kvstore"
	"github.com/jhoicas/nibso-dashboard/internal/infrastructure/logistics"
	"github.com/jhoicas/nibso-dashboard/internal/infrastructure/metrics"
	"github.com/jhoicas/nibso-dashboard/internal/infrastructure/netprobe"
	infrapdf "github.com/jhoicas/nibso-dashboard/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/nibso-dashboard/internal/interfaces/http"
	"github.com/jhoicas/nibso-dashboard/pkg/config"
	"github.com/jhoicas/nibso-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Backend).
		Str("vertical", cfg.Business.Vertical).
		Msg("iniciando aplicación")

	profile, err := entity.NewBusinessProfile(cfg.Business.Name, cfg.Business.Vertical,
		cfg.Business.TaxRate, cfg.Business.CurrencySymbol, cfg.Business.StockPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("perfil de negocio")
	}

	ctx := context.Background()
	opened, err := kvstore.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de datos")
	}
	defer opened.Close()
	store := opened.Store

	invLedger, err := inventory.NewLedger(ctx, store)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar inventario")
	}
	catalog, err := promotion.NewCatalog(ctx, store)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar promociones")
	}
	registry, err := loyalty.NewRegistry(ctx, store)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar miembros")
	}
	salesLedger, err := sales.NewLedger(ctx, store)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar ventas diarias")
	}
	journal, err := sales.NewJournal(ctx, store)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar diario de ventas")
	}

	authUC, err := auth.NewAuthUseCase(ctx, store, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cargar usuarios")
	}
	if created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	} else if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
	}

	// Logística: store local (consultable por /api/shipments) o Kafka
	var (
		shipments      ports.ShipmentCreator
		shipmentLister ports.ShipmentLister
	)
	switch cfg.Logistics.Backend {
	case "kafka":
		pub, err := kafka.NewShipmentPublisher(cfg.Logistics.KafkaBrokers, cfg.Logistics.ShipmentsTopic, log.Component("logistics"))
		if err != nil {
			log.Fatal().Err(err).Msg("productor Kafka")
		}
		defer pub.Close()
		shipments = pub
	default:
		st, err := logistics.NewShipmentStore(ctx, store)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar envíos")
		}
		shipments, shipmentLister = st, st
	}

	// Texto generado por IA (recibos, insights)
	aiTimeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	var textGen ports.TextGenerator
	switch cfg.AI.Provider {
	case "anthropic":
		textGen = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	default:
		textGen = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	}
	probe := netprobe.New(cfg.Connectivity.ProbeAddr, time.Duration(cfg.Connectivity.TimeoutMS)*time.Millisecond)
	receipts := receipt.NewService(textGen, probe, profile, aiTimeout, log.Component("receipt"))
	aiUC := usecase.NewAIUseCase(textGen, probe, salesLedger, profile, aiTimeout)

	prom := metrics.New("nibso")
	terminals := pos.NewTerminals(pos.Deps{
		Inventory:  invLedger,
		Promotions: catalog,
		Loyalty:    registry,
		Sales:      salesLedger,
		Journal:    journal,
		Shipments:  shipments,
		Receipts:   receipts,
		Observer:   prom,
		Profile:    profile,
		Log:        log.Component("pos"),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: aiTimeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), prom))

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe la especificación generada)
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Nibso Dashboard API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "vertical": profile.Vertical})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Inventory:     invLedger,
		Replenishment: inventory.NewReplenishmentUseCase(invLedger, journal),
		Promotions:    catalog,
		Loyalty:       registry,
		Terminals:     terminals,
		Sales: httpRouter.SalesHandlerDeps{
			Ledger:  salesLedger,
			Journal: journal,
			Dashboard: analytics.NewDashboardUseCase(analytics.Sources{
				Sales: salesLedger, Top: journal, Stock: invLedger,
			}),
			AI:       aiUC,
			PDF:      infrapdf.NewReceiptPDFGenerator(profile),
			Receipts: receipts,
		},
		Shipments: shipmentLister,
		Metrics:   prom.Handler(),
		JWTSecret: cfg.JWT.Secret,
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
