package main

import (
	"context"
	"log"

	"contas/internal/domain/catalog"
	"contas/internal/domain/credit"
	"contas/internal/domain/debit"
	"contas/internal/domain/instrument"
	"contas/internal/domain/notification"
	"contas/internal/domain/report"
	"contas/internal/domain/supplier"
	"contas/internal/domain/user"
	"contas/internal/infrastructure/firebase"
	"contas/internal/infrastructure/postgres"
	"contas/internal/infrastructure/redis"
	httphandlers "contas/internal/interfaces/http"
	"contas/internal/shared/auth"
	"contas/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB    *postgres.DB
	Cache *redis.Cache

	// Handlers
	AuthHandler         *httphandlers.AuthHandler
	SupplierHandler     *httphandlers.SupplierHandler
	CatalogHandler      *httphandlers.CatalogHandler
	InstrumentHandler   *httphandlers.InstrumentHandler
	DebitHandler        *httphandlers.DebitHandler
	CreditHandler       *httphandlers.CreditHandler
	ReportHandler       *httphandlers.ReportHandler
	NotificationHandler *httphandlers.NotificationHandler

	// Auth
	JWT *auth.JWT

	// Services (for the scheduler)
	DebitService        *debit.Service
	NotificationService *notification.Service
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	supplierRepo := postgres.NewSupplierRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	instrumentRepo := postgres.NewInstrumentRepository(db)
	debitRepo := postgres.NewDebitRepository(db)
	creditRepo := postgres.NewCreditRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Optional Redis cache for the lookup catalog
	var cache *redis.Cache
	var catalogCache catalog.Cache
	if cfg.Redis.Enabled {
		cache, err = redis.NewCache(cfg.Redis.Addr, cfg.Redis.TTL)
		if err != nil {
			log.Printf("Warning: Redis unavailable, catalog cache disabled: %v", err)
		} else {
			catalogCache = cache
			log.Println("Connected to Redis")
		}
	}

	// Domain services
	userService := user.NewService(userRepo)
	supplierService := supplier.NewService(supplierRepo)
	catalogService := catalog.NewService(catalogRepo, catalogCache)
	instrumentService := instrument.NewService(instrumentRepo)
	debitService := debit.NewService(debitRepo, supplierRepo, catalogRepo)
	creditService := credit.NewService(creditRepo)
	reportService := report.NewService(reportRepo, supplierRepo, debitRepo)

	// Optional Firebase messenger for overdue alerts
	var messenger notification.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		fcmClient, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, notificationRepo.DeactivateToken)
		if err != nil {
			log.Printf("Warning: Firebase unavailable, push alerts disabled: %v", err)
		} else {
			messenger = fcmClient
			log.Println("Firebase messaging initialized")
		}
	}
	notificationService := notification.NewService(notificationRepo, messenger)

	jwt := auth.NewJWT(cfg.JWT.Secret)

	return &Dependencies{
		DB:                  db,
		Cache:               cache,
		AuthHandler:         httphandlers.NewAuthHandler(userService, jwt),
		SupplierHandler:     httphandlers.NewSupplierHandler(supplierService),
		CatalogHandler:      httphandlers.NewCatalogHandler(catalogService),
		InstrumentHandler:   httphandlers.NewInstrumentHandler(instrumentService),
		DebitHandler:        httphandlers.NewDebitHandler(debitService),
		CreditHandler:       httphandlers.NewCreditHandler(creditService),
		ReportHandler:       httphandlers.NewReportHandler(reportService),
		NotificationHandler: httphandlers.NewNotificationHandler(notificationService),
		JWT:                 jwt,
		DebitService:        debitService,
		NotificationService: notificationService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.Cache != nil {
		d.Cache.Close()
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
