// Package metrics exposes matching-engine activity as Prometheus
// metrics via an events.Observer implementation.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quayside/internal/events"
)

var (
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds the Prometheus metrics tracked for the engine. Order
// and trade counters are labelled by market; the active-order gauge and
// the cancel counter are engine-wide.
type Collector struct {
	OrdersTotal    *prometheus.CounterVec
	OrdersActive   prometheus.Gauge
	CancelsTotal   prometheus.Counter
	TradesTotal    *prometheus.CounterVec
	TradeVolume    *prometheus.CounterVec
	LastTradePrice *prometheus.GaugeVec
}

// GetCollector returns the process-wide singleton collector, creating
// and registering it with the default Prometheus registry on first use.
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

func newCollector() *Collector {
	c := &Collector{
		OrdersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "quayside",
				Subsystem: "orders",
				Name:      "total",
				Help:      "Total number of orders placed, by market and side.",
			},
			[]string{"market", "side"},
		),
		OrdersActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "quayside",
				Subsystem: "orders",
				Name:      "active",
				Help:      "Number of resting orders across all markets, sampled periodically.",
			},
		),
		CancelsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "quayside",
				Subsystem: "orders",
				Name:      "cancels_total",
				Help:      "Total number of successful cancellations.",
			},
		),
		TradesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "quayside",
				Subsystem: "trades",
				Name:      "total",
				Help:      "Total number of match events, by market.",
			},
			[]string{"market"},
		),
		TradeVolume: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "quayside",
				Subsystem: "trades",
				Name:      "volume_total",
				Help:      "Total traded volume, by market.",
			},
			[]string{"market"},
		),
		LastTradePrice: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "quayside",
				Subsystem: "trades",
				Name:      "last_price",
				Help:      "Price of the most recent match, by market.",
			},
			[]string{"market"},
		),
	}

	prometheus.MustRegister(
		c.OrdersTotal,
		c.OrdersActive,
		c.CancelsTotal,
		c.TradesTotal,
		c.TradeVolume,
		c.LastTradePrice,
	)

	return c
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// SetActiveOrders reports the current engine-wide resting order count.
// Unlike the counters below this isn't event-driven: OrderCancelled
// carries no market or fill information, so the only accurate source
// for this gauge is a periodic sample of Engine.OrderCount.
func (c *Collector) SetActiveOrders(n int) {
	c.OrdersActive.Set(float64(n))
}

// Observer is an events.Observer that records order and trade activity
// on a Collector.
type Observer struct {
	collector *Collector
}

// NewObserver wraps collector as an events.Observer.
func NewObserver(collector *Collector) *Observer {
	return &Observer{collector: collector}
}

func (o *Observer) OnNewOrder(evt events.NewOrderEvent) {
	o.collector.OrdersTotal.WithLabelValues(evt.Order.Market, evt.Order.Side.String()).Inc()
}

func (o *Observer) OnOrderCancelled(evt events.CancelEvent) {
	o.collector.CancelsTotal.Inc()
}

func (o *Observer) OnOrderMatched(evt events.MatchEvent) {
	market := evt.Market
	o.collector.TradesTotal.WithLabelValues(market).Inc()
	o.collector.TradeVolume.WithLabelValues(market).Add(float64(evt.Volume))
	o.collector.LastTradePrice.WithLabelValues(market).Set(float64(evt.Price))
}
