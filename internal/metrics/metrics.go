package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salonadmin",
			Name:      "api_requests_total",
			Help:      "Outbound backend requests by endpoint and result.",
		},
		[]string{"endpoint", "result"},
	)

	tokenRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salonadmin",
			Name:      "token_refreshes_total",
			Help:      "Access-token refresh attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(apiRequests, tokenRefreshes)
	})
}

// IncRequest counts one outbound request for an endpoint label.
func IncRequest(endpoint, result string) {
	apiRequests.WithLabelValues(endpoint, result).Inc()
}

// IncRefresh counts one refresh attempt ("ok" or "failed").
func IncRefresh(outcome string) {
	tokenRefreshes.WithLabelValues(outcome).Inc()
}
