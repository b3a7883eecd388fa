package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/greenbean/storefront/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/nakabonne/tstorage"
	"github.com/shopspring/decimal"
)

const maxWindowHours = 7 * 24

type metricsSummary struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	OrdersPlaced     int64           `json:"orders_placed"`
	OrderValue       decimal.Decimal `json:"order_value"`
	ContactDelivered int64           `json:"contact_delivered"`
	ContactFailed    int64           `json:"contact_failed"`
	ProcessCPU       *float64        `json:"process_cpu_percent,omitempty"`
	ProcessMemoryMB  *float64        `json:"process_memory_mb,omitempty"`
}

func (a *api) registerMetricsRoutes(g *echo.Group) {
	g.GET("/metrics", a.metricsSummary)
}

// metricsSummary totals over the last ?hours (default 24, at most the retention window)
func (a *api) metricsSummary(c echo.Context) error {
	hours := 24
	if v := c.QueryParam("hours"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil || h < 1 || h > maxWindowHours {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "hours must be between 1 and 168", v)
		}
		hours = h
	}
	to := time.Now().Add(time.Second)
	from := to.Add(-time.Duration(hours) * time.Hour)

	s := metricsSummary{From: from, To: to}
	var err error
	sum := func(metric string, labels ...tstorage.Label) float64 {
		if err != nil {
			return 0
		}
		var v float64
		v, err = metrics.Sum(metric, from, to, labels...)
		return v
	}
	// contact counters are labelled with the delivery channel
	channel := tstorage.Label{Name: "channel", Value: a.channel}
	s.OrdersPlaced = int64(sum(metrics.OrdersPlaced))
	s.OrderValue = decimal.NewFromFloat(sum(metrics.OrderValue)).Round(2)
	s.ContactDelivered = int64(sum(metrics.ContactDelivered, channel))
	s.ContactFailed = int64(sum(metrics.ContactFailed, channel))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "METRICS_ERROR", "Failed to query metrics", err.Error())
	}
	s.ProcessCPU = latest(metrics.ProcessCPU, from, to)
	s.ProcessMemoryMB = latest(metrics.ProcessMemory, from, to)
	return ok(c, s)
}

func latest(metric string, from, to time.Time) *float64 {
	points, err := metrics.Query(metric, from, to)
	if err != nil || len(points) == 0 {
		return nil
	}
	v := points[len(points)-1].Value
	return &v
}
