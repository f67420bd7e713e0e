package pentaauth

import (
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Session.StorageKey != "user" {
		t.Fatalf("expected storage key %q, got %q", "user", cfg.Session.StorageKey)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name: "empty storage key",
			mutate: func(c *Config) {
				c.Session.StorageKey = ""
			},
			wantValid: false,
		},
		{
			name: "negative latency",
			mutate: func(c *Config) {
				c.Login.SimulatedLatency = -time.Millisecond
			},
			wantValid: false,
		},
		{
			name: "positive latency",
			mutate: func(c *Config) {
				c.Login.SimulatedLatency = time.Second
			},
			wantValid: true,
		},
		{
			name: "negative timeout",
			mutate: func(c *Config) {
				c.Login.Timeout = -time.Second
			},
			wantValid: false,
		},
		{
			name: "throttle without burst",
			mutate: func(c *Config) {
				c.Login.MaxAttemptsPerSecond = 2
				c.Login.Burst = 0
			},
			wantValid: false,
		},
		{
			name: "throttle with burst",
			mutate: func(c *Config) {
				c.Login.MaxAttemptsPerSecond = 2
				c.Login.Burst = 3
			},
			wantValid: true,
		},
		{
			name: "negative rate",
			mutate: func(c *Config) {
				c.Login.MaxAttemptsPerSecond = -1
			},
			wantValid: false,
		},
		{
			name: "audit enabled zero buffer",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = 0
			},
			wantValid: false,
		},
		{
			name: "histograms without metrics",
			mutate: func(c *Config) {
				c.Metrics.Enabled = false
				c.Metrics.EnableLatencyHistograms = true
			},
			wantValid: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantValid && err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
			if !tc.wantValid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Session.StorageKey = ""
	if _, err := New().WithConfig(cfg).Build(); err == nil {
		t.Fatal("expected Build to reject invalid config")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New()
	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}
