package app

import "testing"

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{"default", &Config{}, "info"},
		{"verbose", &Config{Verbose: true}, "debug"},
		{"quiet", &Config{Quiet: true}, "warn"},
		{"both flags prefer quiet", &Config{Verbose: true, Quiet: true}, "warn"},
		{"configured level", &Config{LogLevel: "error"}, "error"},
		{"verbose beats configured level", &Config{LogLevel: "error", Verbose: true}, "debug"},
		{"flag beats verbose", &Config{levelFlag: "trace", Quiet: true}, "trace"},
		{"flag beats configured level", &Config{levelFlag: "warn", LogLevel: "debug"}, "warn"},
		{"invalid flag falls back", &Config{levelFlag: "loud"}, "info"},
		{"mixed case", &Config{LogLevel: "DEBUG"}, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineLogLevel(tt.config); got != tt.expected {
				t.Errorf("determineLogLevel() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestNewLogger verifies the logger honors the level.
func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{Quiet: true, LogOutput: "discard", LogFormat: "json"})
	if logger.GetLevel().String() != "warn" {
		t.Errorf("level = %s, want warn", logger.GetLevel())
	}
}
