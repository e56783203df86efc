package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	analyticsapp "practice-cloud/internal/analytics/application"
	analyticshttp "practice-cloud/internal/analytics/interfaces/http"
	"practice-cloud/internal/audit"
	"practice-cloud/internal/auth"
	finapp "practice-cloud/internal/finance/application"
	financerepo "practice-cloud/internal/finance/infrastructure/postgres"
	invoicingapp "practice-cloud/internal/invoicing/application"
	invoicinghttp "practice-cloud/internal/invoicing/interfaces/http"
	"practice-cloud/internal/observability/metrics"
	reconcileapp "practice-cloud/internal/reconciliation/application"
	reconcilehttp "practice-cloud/internal/reconciliation/interfaces/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	settings, err := finapp.LoadSettings()
	if err != nil {
		logger.Fatalf("settings error: %v", err)
	}

	recordRepo, err := financerepo.NewRecordRepository(db, cfg.AccountID)
	if err != nil {
		logger.Fatalf("record repo error: %v", err)
	}

	paymentService, err := finapp.NewPaymentService(recordRepo)
	if err != nil {
		logger.Fatalf("payment service error: %v", err)
	}
	invoiceService, err := finapp.NewInvoiceService(recordRepo)
	if err != nil {
		logger.Fatalf("invoice service error: %v", err)
	}

	dashboardService, err := analyticsapp.NewDashboardService(recordRepo, settings)
	if err != nil {
		logger.Fatalf("dashboard service error: %v", err)
	}
	dashboardHandler, err := analyticshttp.NewHandler(dashboardService)
	if err != nil {
		logger.Fatalf("dashboard handler error: %v", err)
	}

	reconcileService, err := reconcileapp.NewService(recordRepo, paymentService)
	if err != nil {
		logger.Fatalf("reconciliation service error: %v", err)
	}
	reconcileHandler, err := reconcilehttp.NewHandler(reconcileService, auditRepo)
	if err != nil {
		logger.Fatalf("reconciliation handler error: %v", err)
	}

	invoicingService, err := invoicingapp.NewService(recordRepo, invoiceService)
	if err != nil {
		logger.Fatalf("invoicing service error: %v", err)
	}
	invoicingHandler, err := invoicinghttp.NewHandler(invoicingService, auditRepo)
	if err != nil {
		logger.Fatalf("invoicing handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/dashboard", dashboardHandler)
	mux.Handle("/api/v1/dashboard/month", dashboardHandler)
	mux.Handle("/api/v1/reports/annual", dashboardHandler)
	mux.Handle("/api/v1/reconciliation/statement", reconcileHandler)
	mux.Handle("/api/v1/reconciliation/match", reconcileHandler)
	mux.Handle("/api/v1/reconciliation/confirm", reconcileHandler)
	mux.Handle("/api/v1/reconciliation/pending", reconcileHandler)
	mux.Handle("/api/v1/invoices", invoicingHandler)
	mux.Handle("/api/v1/invoices/", invoicingHandler)
	mux.Handle("/api/v1/invoices/pending", invoicingHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
	AccountID   string
	JWTSecret   string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		AccountID:   getenvDefault("ACCOUNT_ID", ""),
		JWTSecret:   getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.AccountID == "" {
		log.Fatal("ACCOUNT_ID is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
