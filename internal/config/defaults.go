package config

import "time"

const defaultPort = 8080

var defaultBackend = Backend{
	BaseURL: "http://localhost:5000/api",
	Timeout: 10 * time.Second,
}

var defaultRetry = Retry{
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

var defaultPoll = Poll{
	Interval:    15 * time.Second,
	Stagger:     200 * time.Millisecond,
	SettleDelay: 500 * time.Millisecond,
	PageSize:    10,
}

var defaultKafka = Kafka{
	Topic: "courier-notifications",
}

var defaultRateLimit = RateLimit{
	Limit:  50,
	Window: time.Second,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultBackend returns the default backend settings.
func DefaultBackend() Backend {
	return defaultBackend
}

// DefaultRetry returns the default gateway retry settings.
func DefaultRetry() Retry {
	return defaultRetry
}

// DefaultPoll returns the default refresh scheduling settings.
func DefaultPoll() Poll {
	return defaultPoll
}

// DefaultKafka returns the default Kafka notifier settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRateLimit returns the default facade rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultPprof returns the default pprof settings (disabled).
func DefaultPprof() Pprof {
	return Pprof{}
}
