package ledger

import (
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "xbooth_ledger"

type metrics struct {
	transactions *prometheus.CounterVec
	instructions *prometheus.CounterVec
	duration     prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		transactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "transactions_total",
				Help:      "Number of submitted transactions by status.",
			},
			[]string{"status"},
		),
		instructions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "instructions_total",
				Help:      "Number of processed instructions by program.",
			},
			[]string{"program"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "transaction_duration_seconds",
				Help:      "Time spent to process and persist a transaction.",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}

	for _, c := range []prometheus.Collector{
		m.transactions, m.instructions, m.duration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) transactionProcessed(status string, start time.Time) {
	m.transactions.WithLabelValues(status).Inc()
	m.duration.Observe(time.Since(start).Seconds())
}

func (m *metrics) instructionProcessed(program string) {
	m.instructions.WithLabelValues(program).Inc()
}

func programName(id solana.PublicKey) string {
	switch {
	case id.Equals(solana.SystemProgramID):
		return "system"
	case id.Equals(solana.TokenProgramID):
		return "token"
	default:
		return id.String()
	}
}
