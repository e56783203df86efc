package metrics

import (
	"database/sql"
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

func registerDBMetrics(db *sql.DB, logger *log.Logger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "sessions_unpaid",
			Help: "Sessions awaiting payment confirmation",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM sessions WHERE paid = FALSE AND status IN ('completed','unexcused_absence')")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "sessions_uninvoiced",
			Help: "Paid sessions without an invoice number",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM sessions WHERE paid = TRUE AND invoice_number IS NULL AND value > 0")
		},
	))
}

func queryCount(db *sql.DB, logger *log.Logger, query string) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if logger != nil {
			logger.Printf("metrics query failed: %v", err)
		}
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
