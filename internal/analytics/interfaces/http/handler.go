package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"practice-cloud/internal/analytics/application"
	"practice-cloud/internal/analytics/interfaces"
	"practice-cloud/internal/observability/metrics"
)

// Handler provides the dashboard and annual report HTTP endpoints.
type Handler struct {
	service *application.DashboardService
}

// NewHandler constructs a handler.
func NewHandler(service *application.DashboardService) (*Handler, error) {
	if service == nil {
		return nil, errors.New("analytics handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP handles /api/v1/dashboard and /api/v1/reports/annual.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/dashboard":
		h.handleDashboard(w, r)
	case "/api/v1/dashboard/month":
		h.handleMonth(w, r)
	case "/api/v1/reports/annual":
		h.handleAnnualReport(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	year, err := yearQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	started := time.Now()
	dashboard, err := h.service.Dashboard(r.Context(), year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.ObserveDashboardCompute(time.Since(started))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dashboard)
}

func (h *Handler) handleMonth(w http.ResponseWriter, r *http.Request) {
	year, err := yearQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "month must be 1-12", http.StatusBadRequest)
		return
	}

	result, err := h.service.MonthMetrics(r.Context(), year, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (h *Handler) handleAnnualReport(w http.ResponseWriter, r *http.Request) {
	year, err := yearQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	report, err := h.service.AnnualReport(r.Context(), year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(report)
	case "pdf":
		data, err := interfaces.BuildAnnualReportPDF(report)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		metrics.IncReportExport("pdf")
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=annual-report-%d.pdf", year))
		_, _ = w.Write(data)
	case "xlsx":
		data, err := interfaces.BuildAnnualReportXLSX(report)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		metrics.IncReportExport("xlsx")
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=annual-report-%d.xlsx", year))
		_, _ = w.Write(data)
	default:
		http.Error(w, "format must be json, pdf or xlsx", http.StatusBadRequest)
	}
}

func yearQuery(r *http.Request) (int, error) {
	value := r.URL.Query().Get("year")
	if value == "" {
		return time.Now().Year(), nil
	}
	year, err := strconv.Atoi(value)
	if err != nil || year < 1 {
		return 0, errors.New("year must be a positive integer")
	}
	return year, nil
}
