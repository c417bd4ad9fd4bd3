package main

import (
	"log"
	"net/http"

	httphandlers "contas/internal/interfaces/http"
	"contas/internal/shared/config"
	"contas/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/api/users/me", authMiddleware(http.HandlerFunc(deps.AuthHandler.HandleMe)))

	mux.Handle("/api/suppliers/", authMiddleware(http.HandlerFunc(deps.SupplierHandler.HandleSuppliers)))
	mux.Handle("/api/suppliers/{id}", authMiddleware(http.HandlerFunc(deps.SupplierHandler.HandleSupplierByID)))

	mux.Handle("/api/catalog/payment-forms", authMiddleware(http.HandlerFunc(deps.CatalogHandler.HandlePaymentForms)))
	mux.Handle("/api/catalog/document-types", authMiddleware(http.HandlerFunc(deps.CatalogHandler.HandleDocumentTypes)))
	mux.Handle("/api/catalog/card-brands", authMiddleware(http.HandlerFunc(deps.CatalogHandler.HandleCardBrands)))
	mux.Handle("/api/catalog/statuses", authMiddleware(http.HandlerFunc(deps.CatalogHandler.HandleStatuses)))
	mux.Handle("/api/catalog/credit-types", authMiddleware(http.HandlerFunc(deps.CatalogHandler.HandleCreditTypes)))

	mux.Handle("/api/instruments/", authMiddleware(http.HandlerFunc(deps.InstrumentHandler.HandleInstruments)))
	mux.Handle("/api/instruments/{id}", authMiddleware(http.HandlerFunc(deps.InstrumentHandler.HandleInstrumentByID)))

	mux.Handle("/api/debits/launches", authMiddleware(http.HandlerFunc(deps.DebitHandler.HandleLaunches)))
	mux.Handle("/api/debits/installments", authMiddleware(http.HandlerFunc(deps.DebitHandler.HandleInstallments)))
	mux.Handle("/api/debits/installments/{id}", authMiddleware(http.HandlerFunc(deps.DebitHandler.HandleInstallmentByID)))
	mux.Handle("/api/debits/installments/{id}/settle", authMiddleware(http.HandlerFunc(deps.DebitHandler.HandleSettle)))
	mux.Handle("/api/debits/sweep", authMiddleware(http.HandlerFunc(deps.DebitHandler.HandleSweep)))

	mux.Handle("/api/credits/", authMiddleware(http.HandlerFunc(deps.CreditHandler.HandleCredits)))
	mux.Handle("/api/credits/{id}", authMiddleware(http.HandlerFunc(deps.CreditHandler.HandleCreditByID)))

	mux.Handle("/api/reports/statement", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleStatement)))
	mux.Handle("/api/reports/monthly", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleMonthlyDebits)))
	mux.Handle("/api/reports/summary", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleSummary)))
	mux.Handle("/api/reports/suppliers/{id}", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleSupplierReport)))

	mux.Handle("/api/notifications/register-device", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandleRegisterDevice)))

	// Apply global middleware
	var inner http.Handler = middleware.Tracing(mux)
	if cfg.Telemetry.Enabled {
		inner = middleware.Telemetry(inner)
	}
	handler := middleware.Logging(middleware.RequestID(middleware.CORS(cfg.Server.AllowedHosts)(inner)))

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
