package metrics

import "github.com/kilianp07/taxisim/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// Expose serves /metrics on the API router.
	Expose bool `json:"expose"`
	// Listen starts a dedicated Prometheus server when set.
	Listen string `json:"listen"`
}
