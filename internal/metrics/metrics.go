package metrics

import "github.com/prometheus/client_golang/prometheus"

type Counter interface {
	Inc(labels ...string)
}

type Counters struct {
	PermissionChecks Counter
	CacheLookups     Counter
	BackendRequests  Counter
	AlertsRaised     Counter
	GrpcRequests     Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func newCounterVec(name, help string, labels []string) *PrometheusCounter {
	return &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: name,
			Help: help,
		}, labels),
	}
}

func NewPrometheusCounter(name, help string, labels []string) *PrometheusCounter {
	c := newCounterVec(name, help, labels)
	prometheus.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func (p *PrometheusCounter) Vec() *prometheus.CounterVec {
	return p.counter
}

type counterSpec struct {
	name   string
	help   string
	labels []string
}

var (
	permissionChecksSpec = counterSpec{"permission_checks_total", "Permission checks by outcome", []string{"result"}}
	cacheLookupsSpec     = counterSpec{"auth_cache_lookups_total", "Token and permission cache lookups", []string{"cache", "result"}}
	backendRequestsSpec  = counterSpec{"backend_requests_total", "Requests sent to the RBAC backend", []string{"method", "status"}}
	alertsRaisedSpec     = counterSpec{"alerts_raised_total", "Alerts derived from recent logs", []string{"type", "level"}}
	grpcRequestsSpec     = counterSpec{"grpc_requests_total", "Analytics gRPC calls by outcome", []string{"method", "status"}}
)

func New() *Counters {
	build := func(s counterSpec) Counter {
		return NewPrometheusCounter(s.name, s.help, s.labels)
	}
	return &Counters{
		PermissionChecks: build(permissionChecksSpec),
		CacheLookups:     build(cacheLookupsSpec),
		BackendRequests:  build(backendRequestsSpec),
		AlertsRaised:     build(alertsRaisedSpec),
		GrpcRequests:     build(grpcRequestsSpec),
	}
}

// NewTestCounters registers the counters on a private registry so tests can build many.
func NewTestCounters() *Counters {
	reg := prometheus.NewRegistry()
	build := func(s counterSpec) Counter {
		c := newCounterVec(s.name, s.help, s.labels)
		reg.MustRegister(c.counter)
		return c
	}
	return &Counters{
		PermissionChecks: build(permissionChecksSpec),
		CacheLookups:     build(cacheLookupsSpec),
		BackendRequests:  build(backendRequestsSpec),
		AlertsRaised:     build(alertsRaisedSpec),
		GrpcRequests:     build(grpcRequestsSpec),
	}
}
