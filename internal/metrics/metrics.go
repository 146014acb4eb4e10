// Package metrics exposes Prometheus collectors for HTTP traffic and the print queue.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"printshop/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var histogramBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// Metrics owns its registry so several instances can coexist in tests.
type Metrics struct {
	registry       *prometheus.Registry
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	jobsSubmitted  *prometheus.CounterVec
	pagesSubmitted prometheus.Counter
	statusChanges  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "printshop",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "printshop",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		jobsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "printshop",
			Subsystem: "jobs",
			Name:      "submitted_total",
			Help:      "Print jobs accepted into the queue",
		}, []string{"color"}),
		pagesSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "printshop",
			Subsystem: "jobs",
			Name:      "pages_submitted_total",
			Help:      "Pages times copies of accepted print jobs",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "printshop",
			Subsystem: "jobs",
			Name:      "status_changes_total",
			Help:      "Staff status transitions",
		}, []string{"from", "to"}),
	}
	m.registry.MustRegister(
		m.requestTotal, m.requestLatency, m.jobsSubmitted, m.pagesSubmitted, m.statusChanges,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records one sample per request, labelled by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request.Method,
			"route":  route,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		m.requestTotal.With(labels).Inc()
		m.requestLatency.With(labels).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) JobSubmitted(job *model.PrintJob) {
	color := "bw"
	if job.Color {
		color = "color"
	}
	m.jobsSubmitted.WithLabelValues(color).Inc()
	m.pagesSubmitted.Add(float64(job.Pages * job.Copies))
}

func (m *Metrics) JobStatusChanged(from, to model.JobStatus) {
	m.statusChanges.WithLabelValues(string(from), string(to)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
