// Package metrics exposes the Prometheus metrics listener for the service.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var serviceInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "service_info",
	Help: "Static service identification labels.",
}, []string{"service"})

// MetricsServer serves Prometheus metrics on a dedicated listener, separate
// from the API listener.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server for the named service listening on addr.
// An empty addr disables the listener; ListenAndServe then returns
// immediately.
func New(name, addr string) (*MetricsServer, error) {
	serviceInfo.WithLabelValues(name).Set(1)

	if addr == "" {
		return &MetricsServer{}, nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}, nil
}

// ListenAndServe serves the metrics endpoint until Shutdown is called.
func (s *MetricsServer) ListenAndServe() error {
	if s.srv == nil {
		return nil
	}
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the metrics listener.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
