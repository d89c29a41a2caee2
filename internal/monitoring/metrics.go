package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketsMinted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_minted_total",
			Help: "Total tickets minted per event and type",
		},
		[]string{"event_id", "ticket_type"},
	)

	ledgerOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Total ledger operations",
		},
		[]string{"operation", "status"},
	)

	pendingTransactions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pending_transactions_total",
			Help: "Current number of transactions waiting to be mined",
		},
	)

	blocksMined = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blocks_mined_total",
			Help: "Total blocks sealed and appended to the chain",
		},
	)

	sealDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "block_seal_duration_seconds",
			Help:    "Duration of proof-of-work sealing",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
	)
)

func RecordMint(eventID, ticketType string) {
	ticketsMinted.WithLabelValues(eventID, ticketType).Inc()
}

func RecordOperation(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ledgerOperations.WithLabelValues(operation, status).Inc()
}

func SetPendingTransactions(n int) {
	pendingTransactions.Set(float64(n))
}

func RecordBlockMined(sealTime time.Duration) {
	blocksMined.Inc()
	sealDuration.Observe(sealTime.Seconds())
}
