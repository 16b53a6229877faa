package telemetry

import "os"

// Config holds configuration for the tracer
type Config struct {
	// ServiceName is the name of the service
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Enabled determines whether tracing is enabled.
	// When false, a noop tracer is used.
	Enabled bool

	// Endpoint is the OTLP/HTTP collector endpoint (host:port).
	// If empty, spans are recorded but not exported.
	Endpoint string

	// Insecure sends spans over plain HTTP
	Insecure bool

	// SampleRate is the fraction of traces to sample (0.0 to 1.0)
	SampleRate float64
}

// DefaultConfig returns tracing disabled, the usual case for a CLI run.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "promptplay",
		ServiceVersion: "dev",
		SampleRate:     1.0,
	}
}

// ConfigFor enables export when endpoint, or OTEL_EXPORTER_OTLP_ENDPOINT,
// is set.
func ConfigFor(endpoint, version string) Config {
	cfg := DefaultConfig()
	cfg.ServiceVersion = version
	if endpoint == "" {
		endpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	if endpoint != "" {
		cfg.Enabled = true
		cfg.Endpoint = endpoint
		cfg.Insecure = os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true"
	}
	return cfg
}
