// Package prometheus exports bridge counters on a /metrics endpoint.
package prometheus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bnema/gptbridge/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "gptbridge"

type Metrics struct {
	registry *prometheus.Registry

	admissions        *prometheus.CounterVec
	completions       *prometheus.CounterVec
	completionSeconds *prometheus.HistogramVec
	sweeps            prometheus.Counter
	sweptSessions     *prometheus.CounterVec
	activeSessions    prometheus.Gauge
}

var _ ports.Metrics = (*Metrics)(nil)

// New registers the bridge collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		admissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admissions_total",
			Help:      "Admission decisions by outcome",
		}, []string{"outcome"}),
		completions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completions_total",
			Help:      "Completion requests by mode, result and attempts used",
		}, []string{"mode", "result", "attempts"}),
		completionSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_duration_seconds",
			Help:      "Completion latency including the retry wait",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 8),
		}, []string{"mode"}),
		sweeps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeps_total",
			Help:      "Expiry sweeps run",
		}),
		sweptSessions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swept_sessions_total",
			Help:      "Sessions handled by expiry sweeps by result",
		}, []string{"result"}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Sessions currently tracked",
		}),
	}
}

func (m *Metrics) ObserveAdmission(outcome string) {
	m.admissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCompletion(mode string, attempts int, ok bool, elapsed time.Duration) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.completions.WithLabelValues(mode, result, strconv.Itoa(attempts)).Inc()
	m.completionSeconds.WithLabelValues(mode).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveSweep(expired int, notifyFailures int, removeFailures int) {
	m.sweeps.Inc()
	m.sweptSessions.WithLabelValues("expired").Add(float64(expired))
	m.sweptSessions.WithLabelValues("notify_failed").Add(float64(notifyFailures))
	m.sweptSessions.WithLabelValues("remove_failed").Add(float64(removeFailures))
}

func (m *Metrics) ObserveSessions(active int) {
	m.activeSessions.Set(float64(active))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", zap.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve metrics: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics server: %w", err)
		}
		<-errCh
		return nil
	}
}
