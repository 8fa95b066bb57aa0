package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tictactoe"

const ResultDraw = "draw"

// Metrics holds the session counters. A nil *Metrics is valid and records
// nothing, so components can run without a registry.
type Metrics struct {
	registry *prometheus.Registry

	ConnectedPlayers  prometheus.Gauge
	MovesAccepted     prometheus.Counter
	MovesRejected     prometheus.Counter
	RoundsResolved    *prometheus.CounterVec
	Resets            prometheus.Counter
	BroadcastSends    prometheus.Counter
	BroadcastFailures prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ConnectedPlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_players",
			Help:      "Number of occupied player slots",
		}),
		MovesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_accepted_total",
			Help:      "Moves applied to the board",
		}),
		MovesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_rejected_total",
			Help:      "Moves dropped by validation",
		}),
		RoundsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_resolved_total",
			Help:      "Finished rounds by result",
		}, []string{"result"}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Delayed round resets that fired",
		}),
		BroadcastSends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcast_sends_total",
			Help:      "State snapshots delivered to clients",
		}),
		BroadcastFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcast_failures_total",
			Help:      "State snapshots that failed to reach a client",
		}),
	}

	m.registry.MustRegister(
		m.ConnectedPlayers,
		m.MovesAccepted,
		m.MovesRejected,
		m.RoundsResolved,
		m.Resets,
		m.BroadcastSends,
		m.BroadcastFailures,
	)

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (that *Metrics) Handler() http.Handler {
	if that == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(that.registry, promhttp.HandlerOpts{Registry: that.registry})
}

func (that *Metrics) SetConnectedPlayers(count int) {
	if that == nil {
		return
	}
	that.ConnectedPlayers.Set(float64(count))
}

func (that *Metrics) IncMovesAccepted() {
	if that == nil {
		return
	}
	that.MovesAccepted.Inc()
}

func (that *Metrics) IncMovesRejected() {
	if that == nil {
		return
	}
	that.MovesRejected.Inc()
}

// IncRoundsResolved counts a finished round; result is a mark or ResultDraw.
func (that *Metrics) IncRoundsResolved(result string) {
	if that == nil {
		return
	}
	that.RoundsResolved.WithLabelValues(result).Inc()
}

func (that *Metrics) IncResets() {
	if that == nil {
		return
	}
	that.Resets.Inc()
}

func (that *Metrics) IncBroadcastSends() {
	if that == nil {
		return
	}
	that.BroadcastSends.Inc()
}

func (that *Metrics) IncBroadcastFailures() {
	if that == nil {
		return
	}
	that.BroadcastFailures.Inc()
}
