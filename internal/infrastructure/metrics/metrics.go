package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "walletconfig"

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	EndpointUp       *prometheus.GaugeVec
	ProbeDuration    *prometheus.HistogramVec
	ProbeFailures    *prometheus.CounterVec
	ConfiguredChains prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EndpointUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "endpoint_up",
			Help:      "Whether the last probe of the chain's RPC endpoint succeeded (1) or not (0).",
		}, []string{"chain_id"}),
		ProbeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_duration_seconds",
			Help:      "Duration of RPC endpoint probes, retries included.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"chain_id"}),
		ProbeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probe_failures_total",
			Help:      "Number of failed RPC endpoint probes.",
		}, []string{"chain_id"}),
		ConfiguredChains: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "configured_chains",
			Help:      "Number of chains in the wallet configuration.",
		}),
	}
	reg.MustRegister(m.EndpointUp, m.ProbeDuration, m.ProbeFailures, m.ConfiguredChains)
	return m
}

// ObserveProbe records the outcome of one endpoint probe.
func (m *Metrics) ObserveProbe(chainID uint64, healthy bool, latency time.Duration) {
	if m == nil {
		return
	}
	label := strconv.FormatUint(chainID, 10)
	m.ProbeDuration.WithLabelValues(label).Observe(latency.Seconds())
	if healthy {
		m.EndpointUp.WithLabelValues(label).Set(1)
		return
	}
	m.EndpointUp.WithLabelValues(label).Set(0)
	m.ProbeFailures.WithLabelValues(label).Inc()
}
