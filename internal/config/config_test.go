package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env var: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Unsetenv(key); err != nil {
			t.Errorf("failed to unset env var: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %v, want :8080", cfg.ListenPort)
	}
	if cfg.Store != StoreRedis {
		t.Errorf("Store = %v, want redis", cfg.Store)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout = %v, want 10s", cfg.FetchTimeout)
	}
	if cfg.FetchMaxRedirects != 5 {
		t.Errorf("FetchMaxRedirects = %v, want 5", cfg.FetchMaxRedirects)
	}
	if cfg.TrashTTL != 30*24*time.Hour {
		t.Errorf("TrashTTL = %v, want 720h", cfg.TrashTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	setEnv(t, "MARQUE_STORE", "memory")
	setEnv(t, "MARQUE_LISTEN_PORT", ":9090")
	setEnv(t, "MARQUE_FETCH_TIMEOUT", "3s")
	setEnv(t, "MARQUE_ALLOWED_HOSTS", "marque.domain.ext, api.domain.ext")
	setEnv(t, "MARQUE_TRASH_SWEEP_INTERVAL", "0s")

	cfg := Load()

	if cfg.Store != StoreMemory {
		t.Errorf("Store = %v, want memory", cfg.Store)
	}
	if cfg.ListenPort != ":9090" {
		t.Errorf("ListenPort = %v, want :9090", cfg.ListenPort)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("FetchTimeout = %v, want 3s", cfg.FetchTimeout)
	}
	if len(cfg.AllowedHosts) != 2 || cfg.AllowedHosts[1] != "api.domain.ext" {
		t.Errorf("AllowedHosts = %v, want two trimmed hosts", cfg.AllowedHosts)
	}
	if cfg.TrashSweepInterval != 0 {
		t.Errorf("TrashSweepInterval = %v, want 0", cfg.TrashSweepInterval)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "unknown store backend",
			env:  map[string]string{"MARQUE_STORE": "postgres"},
		},
		{
			name: "import file without user",
			env:  map[string]string{"MARQUE_IMPORT_FILE": "/tmp/export.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				setEnv(t, k, v)
			}
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Load() should have panicked")
				}
			}()
			Load()
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				setEnv(t, tt.key, tt.value)
			}
			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				setEnv(t, tt.key, tt.value)
			}
			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single value",
			input:    "value1",
			expected: []string{"value1"},
		},
		{
			name:     "multiple values with spaces",
			input:    "value1, value2, value3",
			expected: []string{"value1", "value2", "value3"},
		},
		{
			name:     "quoted values",
			input:    `"a.ext", 'b.ext'`,
			expected: []string{"a.ext", "b.ext"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}
