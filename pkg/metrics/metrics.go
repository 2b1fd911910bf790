package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// Methods are safe to call on a nil *Metrics.
type Metrics struct {
	UsersRegistered  prometheus.Counter
	LoginFailures    prometheus.Counter
	LinksCreated     prometheus.Counter
	AliasCollisions  prometheus.Counter
	AliasExhausted   prometheus.Counter
	RedirectLookups  *prometheus.CounterVec
	LinkCacheResults *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UsersRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "linkshort_users_registered_total",
			Help: "Total number of users registered",
		}),
		LoginFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "linkshort_login_failures_total",
			Help: "Total number of rejected logins",
		}),
		LinksCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "linkshort_links_created_total",
			Help: "Total number of short links created",
		}),
		AliasCollisions: f.NewCounter(prometheus.CounterOpts{
			Name: "linkshort_alias_collisions_total",
			Help: "Alias inserts rejected by the unique constraint",
		}),
		AliasExhausted: f.NewCounter(prometheus.CounterOpts{
			Name: "linkshort_alias_exhausted_total",
			Help: "Shorten calls that ran out of alias attempts",
		}),
		RedirectLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "linkshort_redirect_lookups_total",
			Help: "Alias resolutions by outcome",
		}, []string{"outcome"}),
		LinkCacheResults: f.NewCounterVec(prometheus.CounterOpts{
			Name: "linkshort_link_cache_results_total",
			Help: "Link cache lookups by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) IncUsersRegistered() {
	if m != nil {
		m.UsersRegistered.Inc()
	}
}

func (m *Metrics) IncLoginFailures() {
	if m != nil {
		m.LoginFailures.Inc()
	}
}

func (m *Metrics) IncLinksCreated() {
	if m != nil {
		m.LinksCreated.Inc()
	}
}

func (m *Metrics) IncAliasCollisions() {
	if m != nil {
		m.AliasCollisions.Inc()
	}
}

func (m *Metrics) IncAliasExhausted() {
	if m != nil {
		m.AliasExhausted.Inc()
	}
}

// ObserveRedirect records a resolution outcome: found, not_found or error.
func (m *Metrics) ObserveRedirect(outcome string) {
	if m != nil {
		m.RedirectLookups.WithLabelValues(outcome).Inc()
	}
}

// ObserveCache records a cache result: hit, miss or error.
func (m *Metrics) ObserveCache(result string) {
	if m != nil {
		m.LinkCacheResults.WithLabelValues(result).Inc()
	}
}
