package simulation

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes benchmark results as Prometheus metrics, labelled by
// filter kind, so long-running or repeated runs can be scraped and graphed.
type Collector struct {
	registry *prometheus.Registry

	inserts           *prometheus.CounterVec
	queries           *prometheus.CounterVec
	falsePositiveRate *prometheus.GaugeVec
	collisionRate     *prometheus.GaugeVec
	filterBytes       *prometheus.GaugeVec
	insertOpsPerSec   *prometheus.GaugeVec
	queryOpsPerSec    *prometheus.GaugeVec
}

// NewCollector builds a Collector on its own registry, keeping benchmark
// metrics separate from any default-registry instrumentation.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	labels := []string{"filter"}
	return &Collector{
		registry: registry,
		inserts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloomlab_inserts_total",
			Help: "Keys inserted per filter kind.",
		}, labels),
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloomlab_queries_total",
			Help: "Membership queries per filter kind.",
		}, labels),
		falsePositiveRate: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bloomlab_false_positive_rate",
			Help: "Empirical false-positive rate of the last run.",
		}, labels),
		collisionRate: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bloomlab_collision_rate",
			Help: "Near-miss variant positive rate of the last run.",
		}, labels),
		filterBytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bloomlab_filter_bytes",
			Help: "Backing storage size per filter kind.",
		}, labels),
		insertOpsPerSec: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bloomlab_insert_ops_per_sec",
			Help: "Insert throughput of the last run.",
		}, labels),
		queryOpsPerSec: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bloomlab_query_ops_per_sec",
			Help: "Query throughput of the last run.",
		}, labels),
	}
}

// ObserveRun records the outcome of one benchmark run.
func (c *Collector) ObserveRun(m Metrics) {
	c.inserts.WithLabelValues(m.Label).Add(float64(m.InsertCount))
	c.queries.WithLabelValues(m.Label).Add(float64(m.QueryCount))
	c.falsePositiveRate.WithLabelValues(m.Label).Set(m.FalsePositiveRate)
	c.collisionRate.WithLabelValues(m.Label).Set(m.CollisionRate)
	c.filterBytes.WithLabelValues(m.Label).Set(float64(m.FilterBytes))
	c.insertOpsPerSec.WithLabelValues(m.Label).Set(m.InsertOpsPerSec)
	c.queryOpsPerSec.WithLabelValues(m.Label).Set(m.QueryOpsPerSec)
}

// Handler serves the collector's registry over HTTP.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Gather exposes the underlying registry for tests.
func (c *Collector) Gather() prometheus.Gatherer {
	return c.registry
}
