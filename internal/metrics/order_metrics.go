package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics は注文まわりのPrometheusメトリクス。
type OrderMetrics struct {
	created       prometheus.Counter
	deleted       prometheus.Counter
	updated       *prometheus.CounterVec
	failed        *prometheus.CounterVec
	itemsPerOrder prometheus.Histogram
	orderAmount   prometheus.Histogram
}

// NewOrderMetrics はregistererに登録して返す（nilならDefaultRegisterer）
func NewOrderMetrics(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &OrderMetrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "restaurant_orders_created_total",
			Help: "Total number of orders created",
		}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "restaurant_orders_deleted_total",
			Help: "Total number of orders deleted",
		}),
		updated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "restaurant_orders_updated_total",
			Help: "Total number of order updates by resulting status",
		}, []string{"status"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "restaurant_order_storage_failures_total",
			Help: "Total number of order operations that failed in storage",
		}, []string{"op"}),
		itemsPerOrder: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "restaurant_order_items_per_order",
			Help:    "Number of line items per created order",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		orderAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "restaurant_order_total_amount",
			Help:    "Total amount of created orders",
			Buckets: []float64{5, 10, 20, 50, 100, 200, 500},
		}),
	}

	m.created = register(registerer, m.created).(prometheus.Counter)
	m.deleted = register(registerer, m.deleted).(prometheus.Counter)
	m.updated = register(registerer, m.updated).(*prometheus.CounterVec)
	m.failed = register(registerer, m.failed).(*prometheus.CounterVec)
	m.itemsPerOrder = register(registerer, m.itemsPerOrder).(prometheus.Histogram)
	m.orderAmount = register(registerer, m.orderAmount).(prometheus.Histogram)

	return m
}

func (m *OrderMetrics) OrderCreated(itemCount int, total float64) {
	m.created.Inc()
	m.itemsPerOrder.Observe(float64(itemCount))
	m.orderAmount.Observe(total)
}

func (m *OrderMetrics) OrderUpdated(status string) {
	m.updated.WithLabelValues(status).Inc()
}

func (m *OrderMetrics) OrderDeleted() {
	m.deleted.Inc()
}

func (m *OrderMetrics) OrderFailed(op string) {
	m.failed.WithLabelValues(op).Inc()
}

// 二重登録なら既存のcollectorを使う
func register(registerer prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := registerer.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}
