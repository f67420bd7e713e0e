package pentaauth

import (
	"errors"
	"time"
)

// Config holds engine settings. Start from [DefaultConfig].
type Config struct {
	Session SessionConfig
	Login   LoginConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// SessionConfig controls persistence of the last-known principal.
type SessionConfig struct {
	// StorageKey is the key the principal record is stored under.
	StorageKey string
	// RehydrateOnBuild restores the persisted principal during Build.
	RehydrateOnBuild bool
}

// LoginConfig controls the credential check.
type LoginConfig struct {
	// SimulatedLatency delays the built-in static gateway.
	SimulatedLatency time.Duration
	// Timeout bounds a single credential check. Zero means no bound.
	Timeout time.Duration
	// MaxAttemptsPerSecond enables a token-bucket throttle when > 0.
	MaxAttemptsPerSecond float64
	// Burst is the throttle bucket size.
	Burst int
}

// AuditConfig controls asynchronous audit dispatch.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
	// Transitions also records every session state change as a
	// session.transition event.
	Transitions bool
}

// MetricsConfig controls in-process counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the settings used when none are supplied.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			StorageKey:       "user",
			RehydrateOnBuild: true,
		},
		Login: LoginConfig{
			Burst: 5,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: true,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Session.StorageKey == "" {
		return errors.New("Session StorageKey must not be empty")
	}
	if c.Login.SimulatedLatency < 0 {
		return errors.New("Login SimulatedLatency must be >= 0")
	}
	if c.Login.Timeout < 0 {
		return errors.New("Login Timeout must be >= 0")
	}
	if c.Login.MaxAttemptsPerSecond < 0 {
		return errors.New("Login MaxAttemptsPerSecond must be >= 0")
	}
	if c.Login.MaxAttemptsPerSecond > 0 && c.Login.Burst <= 0 {
		return errors.New("Login Burst must be > 0 when throttling is enabled")
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0")
	}
	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return errors.New("Metrics EnableLatencyHistograms requires Metrics Enabled")
	}
	return nil
}
