package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "practice_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	statementParseTotal   *prometheus.CounterVec
	statementParseEntries prometheus.Histogram

	reconcileRunsTotal  *prometheus.CounterVec
	reconcileProposals  prometheus.Counter
	reconcileLatency    *prometheus.HistogramVec
	paymentApplications *prometheus.CounterVec

	invoiceOpsTotal *prometheus.CounterVec

	dashboardComputeLatency prometheus.Histogram
	reportExportTotal       *prometheus.CounterVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		statementParseTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_parse_total",
				Help: "Total bank statement parses by result",
			},
			[]string{"result"},
		)
		statementParseEntries = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "statement_parse_entries",
				Help:    "Credit entries extracted per parsed statement",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
			},
		)

		reconcileRunsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reconcile_runs_total",
				Help: "Total reconciliation runs by result",
			},
			[]string{"result"},
		)
		reconcileProposals = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "reconcile_proposals_total",
				Help: "Total payment confirmations proposed by the matcher",
			},
		)
		reconcileLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "reconcile_latency_seconds",
				Help:    "Reconciliation run latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		paymentApplications = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "payment_applications_total",
				Help: "Total payment confirmation applications by outcome",
			},
			[]string{"outcome"},
		)

		invoiceOpsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "invoice_operations_total",
				Help: "Total invoice confirm/void operations by operation and result",
			},
			[]string{"operation", "result"},
		)

		dashboardComputeLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "dashboard_compute_latency_seconds",
				Help:    "Dashboard aggregation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		)
		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total annual report exports by format",
			},
			[]string{"format"},
		)

		prometheus.MustRegister(
			statementParseTotal,
			statementParseEntries,
			reconcileRunsTotal,
			reconcileProposals,
			reconcileLatency,
			paymentApplications,
			invoiceOpsTotal,
			dashboardComputeLatency,
			reportExportTotal,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveStatementParse records one parse attempt and, on success, the
// number of entries extracted.
func ObserveStatementParse(result string, entries int) {
	if result == "" {
		result = resultSuccess
	}
	if statementParseTotal != nil {
		statementParseTotal.WithLabelValues(result).Inc()
	}
	if result == resultSuccess && statementParseEntries != nil {
		statementParseEntries.Observe(float64(entries))
	}
}

// ObserveReconcileRun records one reconciliation run with its proposal
// count and latency.
func ObserveReconcileRun(result string, proposals int, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if reconcileRunsTotal != nil {
		reconcileRunsTotal.WithLabelValues(result).Inc()
	}
	if reconcileLatency != nil {
		reconcileLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
	if result == resultSuccess && reconcileProposals != nil && proposals > 0 {
		reconcileProposals.Add(float64(proposals))
	}
}

// IncPaymentApplication counts one payment confirmation by outcome
// (applied or skipped by the paid guard).
func IncPaymentApplication(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	if paymentApplications != nil {
		paymentApplications.WithLabelValues(outcome).Inc()
	}
}

// IncInvoiceOperation counts one invoice confirm or void.
func IncInvoiceOperation(operation, result string) {
	if operation == "" {
		operation = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if invoiceOpsTotal != nil {
		invoiceOpsTotal.WithLabelValues(operation, result).Inc()
	}
}

// ObserveDashboardCompute records one dashboard aggregation latency.
func ObserveDashboardCompute(duration time.Duration) {
	if dashboardComputeLatency != nil {
		dashboardComputeLatency.Observe(duration.Seconds())
	}
}

// IncReportExport counts one annual report export.
func IncReportExport(format string) {
	if format == "" {
		format = "unknown"
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError

	PaymentOutcomeApplied = "applied"
	PaymentOutcomeSkipped = "skipped"
)
