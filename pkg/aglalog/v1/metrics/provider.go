package metrics

import "github.com/prometheus/client_golang/prometheus"

// RegistryProvider exposes the registry that holds aglalog dispatch metrics,
// so applications can serve them from their own Prometheus endpoint.
type RegistryProvider interface {
	// Registry returns the Prometheus registry the facade counters live in.
	Registry() *prometheus.Registry
}
