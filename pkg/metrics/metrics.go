// Package metrics keeps shop counters and process gauges in an embedded time series store.
package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	OrdersPlaced     = "greenbean_orders_placed"
	OrderValue       = "greenbean_order_value"
	ContactDelivered = "greenbean_contact_delivered"
	ContactFailed    = "greenbean_contact_failed"
	ProcessCPU       = "greenbean_process_cpu_percent"
	ProcessMemory    = "greenbean_process_memory_rss"
)

var (
	mu      sync.RWMutex
	storage tstorage.Storage
)

// InitMetrics opens the metric store under <workdir>/data/metrics.
// An empty workdir keeps the data in memory only.
func InitMetrics(workdir string) error {
	opts := []tstorage.Option{
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(7 * 24 * time.Hour),
	}
	if workdir != "" {
		opts = append(opts, tstorage.WithDataPath(filepath.Join(workdir, "data", "metrics")))
	}
	s, err := tstorage.NewStorage(opts...)
	if err != nil {
		return errors.Wrap(err, "open metric storage")
	}
	mu.Lock()
	defer mu.Unlock()
	if storage != nil {
		_ = storage.Close()
	}
	storage = s
	return nil
}

// Close flushes and closes the store
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}

// Inc records one occurrence of an event
func Inc(metric string, labels ...tstorage.Label) {
	Observe(metric, 1, labels...)
}

// Observe records a value at the current time. It is a no-op before InitMetrics.
func Observe(metric string, value float64, labels ...tstorage.Label) {
	mu.RLock()
	defer mu.RUnlock()
	if storage == nil {
		return
	}
	err := storage.InsertRows([]tstorage.Row{{
		Metric:    metric,
		Labels:    labels,
		DataPoint: tstorage.DataPoint{Value: value, Timestamp: time.Now().Unix()},
	}})
	if err != nil {
		zap.L().Warn("metric insert failed", zap.String("metric", metric), zap.Error(err))
	}
}

// Query returns the points of a metric in [start, end)
func Query(metric string, start, end time.Time, labels ...tstorage.Label) ([]*tstorage.DataPoint, error) {
	mu.RLock()
	defer mu.RUnlock()
	if storage == nil {
		return nil, errors.New("metrics not initialized")
	}
	points, err := storage.Select(metric, labels, start.Unix(), end.Unix())
	if errors.Is(err, tstorage.ErrNoDataPoints) {
		return []*tstorage.DataPoint{}, nil
	}
	return points, err
}

// Sum adds up the values of a metric in [start, end)
func Sum(metric string, start, end time.Time, labels ...tstorage.Label) (float64, error) {
	points, err := Query(metric, start, end, labels...)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, p := range points {
		total += p.Value
	}
	return total, nil
}
