package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics collects the engine's counters and gauges. All methods are safe
// for concurrent use; prometheus collectors handle their own locking.
type Metrics struct {
	updatesApplied  *prometheus.CounterVec
	queueDepth      prometheus.Gauge
	actionsSent     prometheus.Counter
	animationMillis prometheus.Counter
}

// New creates the metric set and registers it with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		updatesApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "game_updates_applied_total",
				Help: "Game updates applied to the table, by update kind",
			},
			[]string{"kind"},
		),
		queueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "game_update_queue_depth",
				Help: "Updates waiting in the sequencer queue",
			},
		),
		actionsSent: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "game_actions_sent_total",
				Help: "Game actions sent to the server",
			},
		),
		animationMillis: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "game_animation_milliseconds_total",
				Help: "Total declared animation time of applied updates",
			},
		),
	}
	reg.MustRegister(m.updatesApplied, m.queueDepth, m.actionsSent, m.animationMillis)
	return m
}

// ObserveUpdate counts one applied update of the given kind.
func (m *Metrics) ObserveUpdate(kind string) {
	m.updatesApplied.WithLabelValues(kind).Inc()
}

// SetQueueDepth records the current sequencer queue length.
func (m *Metrics) SetQueueDepth(depth int) {
	m.queueDepth.Set(float64(depth))
}

// ObserveActionSent counts one outbound game action.
func (m *Metrics) ObserveActionSent() {
	m.actionsSent.Inc()
}

// AddAnimationMillis accumulates declared animation time.
func (m *Metrics) AddAnimationMillis(ms int) {
	m.animationMillis.Add(float64(ms))
}
