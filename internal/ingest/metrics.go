package ingest

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels for ingest_records_total.
const (
	outcomeInserted  = "inserted"
	outcomeDuplicate = "duplicate"
	outcomeFailed    = "failed"
)

// Metrics holds the ingestion counters. A nil *Metrics records nothing.
type Metrics struct {
	records *prometheus.CounterVec
	batches prometheus.Counter
}

// NewMetrics registers the ingestion counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_records_total",
				Help: "Ingested records by outcome",
			},
			[]string{"outcome"},
		),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ingest_batches_total",
			Help: "Flushed batches",
		}),
	}
	reg.MustRegister(m.records, m.batches)
	return m
}

func (m *Metrics) failed() {
	if m == nil {
		return
	}
	m.records.WithLabelValues(outcomeFailed).Inc()
}

func (m *Metrics) flushed(res BatchResult) {
	if m == nil {
		return
	}
	m.batches.Inc()
	m.records.WithLabelValues(outcomeInserted).Add(float64(res.Inserted))
	m.records.WithLabelValues(outcomeDuplicate).Add(float64(res.Duplicates))
}
