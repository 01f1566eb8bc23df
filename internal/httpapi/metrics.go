package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the ledger API.
type Metrics struct {
	Calls    *prometheus.CounterVec
	Minted   prometheus.Counter
	Webhooks *prometheus.CounterVec
}

// NewMetrics creates and registers the API metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Calls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "editions_calls_total",
			Help: "Ledger calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		Minted: factory.NewCounter(prometheus.CounterOpts{
			Name: "editions_tokens_minted_total",
			Help: "Tokens minted through the API.",
		}),
		Webhooks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "editions_balance_webhooks_total",
			Help: "Balance callback deliveries by outcome.",
		}, []string{"outcome"}),
	}
}

// observe records one call outcome.
func (m *Metrics) observe(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Calls.WithLabelValues(operation, outcome).Inc()
}
