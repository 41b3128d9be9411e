// Package metrics exposes Prometheus counters for sales and storage.
package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/vereinskasse/internal/cart"
	"github.com/mmynk/vereinskasse/internal/models"
	"github.com/mmynk/vereinskasse/internal/storage"
)

const namespace = "vereinskasse"

type Metrics struct {
	registry *prometheus.Registry

	ReceiptsCompleted prometheus.Counter
	Revenue           prometheus.Counter
	ItemsSold         prometheus.Counter
	StorageErrors     *prometheus.CounterVec
}

// New creates a private registry with the sales counters and the
// standard Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ReceiptsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipts_completed_total",
			Help:      "Number of completed sales.",
		}),
		Revenue: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_total",
			Help:      "Sum of completed receipt totals in EUR.",
		}),
		ItemsSold: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_sold_total",
			Help:      "Number of units sold across all receipts.",
		}),
		StorageErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_errors_total",
			Help:      "Failed storage operations by collection and operation.",
		}, []string{"collection", "op"}),
	}
}

// Registry returns the registry backing these metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveReceipt records a completed sale.
func (m *Metrics) ObserveReceipt(r models.CompletedReceipt) {
	m.ReceiptsCompleted.Inc()
	m.Revenue.Add(r.Total.InexactFloat64())
	m.ItemsSold.Add(float64(r.ItemCount()))
}

// Sink wraps next so that every completed receipt is counted.
func (m *Metrics) Sink(next cart.ReceiptSink) cart.ReceiptSink {
	return &recordingSink{next: next, metrics: m}
}

type recordingSink struct {
	next    cart.ReceiptSink
	metrics *Metrics
}

func (s *recordingSink) AddReceipt(ctx context.Context, items []models.ReceiptItem) models.CompletedReceipt {
	receipt := s.next.AddReceipt(ctx, items)
	s.metrics.ObserveReceipt(receipt)
	return receipt
}

// InstrumentStore counts failed Load and Save calls on store.
// A missing collection is not a failure.
func (m *Metrics) InstrumentStore(store storage.Store) storage.Store {
	return &instrumentedStore{Store: store, errors: m.StorageErrors}
}

type instrumentedStore struct {
	storage.Store
	errors *prometheus.CounterVec
}

func (s *instrumentedStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.Store.Load(ctx, key)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.errors.WithLabelValues(key, "load").Inc()
	}
	return data, err
}

func (s *instrumentedStore) Save(ctx context.Context, key string, data []byte) error {
	err := s.Store.Save(ctx, key, data)
	if err != nil {
		s.errors.WithLabelValues(key, "save").Inc()
	}
	return err
}
