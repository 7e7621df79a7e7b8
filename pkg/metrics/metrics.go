// Package metrics provides optional Prometheus instrumentation. When the
// registry is not initialized all collectors are nil and every record call
// is a no-op, so instrumented code never branches on configuration.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mu       sync.RWMutex
	registry *prometheus.Registry
)

// InitRegistry creates the process-wide metrics registry with the standard
// Go and process collectors. Call once at startup when metrics are enabled.
func InitRegistry() {
	mu.Lock()
	defer mu.Unlock()

	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IsEnabled reports whether the registry has been initialized.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return registry != nil
}

// GetRegistry returns the process-wide registry, or nil when disabled.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return registry
}

// TeacherOperations counts teacher lifecycle operations by outcome and
// authorization denials. A nil receiver is valid and records nothing.
type TeacherOperations struct {
	operations *prometheus.CounterVec
	authDenied prometheus.Counter
}

// Operation outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeInvalid = "invalid"
)

// NewTeacherOperations creates the operation counters.
// Returns nil when metrics are not enabled.
func NewTeacherOperations() *TeacherOperations {
	if !IsEnabled() {
		return nil
	}

	reg := GetRegistry()
	return &TeacherOperations{
		operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "adminpanel_teacher_operations_total",
				Help: "Total teacher lifecycle operations by operation and outcome",
			},
			[]string{"operation", "outcome"}, // operation: create, delete, rename, set_enabled
		),
		authDenied: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "adminpanel_auth_denied_total",
				Help: "Total requests rejected by the administrator gate",
			},
		),
	}
}

// RecordOperation counts one operation with its outcome.
func (m *TeacherOperations) RecordOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// RecordAuthDenied counts one rejected request.
func (m *TeacherOperations) RecordAuthDenied() {
	if m == nil {
		return
	}
	m.authDenied.Inc()
}
