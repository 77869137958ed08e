package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("Expected default level to be info, got %s", cfg.Level)
	}
	if cfg.Pretty {
		t.Error("Expected default pretty to be false")
	}
	if cfg.Output == nil {
		t.Error("Expected default output to be set")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	t.Setenv(EnvPretty, "true")

	cfg := ConfigFromEnv()
	if cfg.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Level)
	}
	if !cfg.Pretty {
		t.Error("Pretty = false, want true")
	}

	t.Setenv(EnvLevel, "")
	t.Setenv(EnvPretty, "not-a-bool")

	cfg = ConfigFromEnv()
	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Pretty {
		t.Error("Pretty = true, want false for unparsable value")
	}
}

func TestSetup(t *testing.T) {
	tests := []struct {
		name  string
		level string
		emit  func(zerolog.Logger, string)
	}{
		{"debug_level", "debug", func(l zerolog.Logger, m string) { l.Debug().Msg(m) }},
		{"info_level", "info", func(l zerolog.Logger, m string) { l.Info().Msg(m) }},
		{"warn_level", "warn", func(l zerolog.Logger, m string) { l.Warn().Msg(m) }},
		{"error_level", "error", func(l zerolog.Logger, m string) { l.Error().Msg(m) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := Setup(Config{Level: tt.level, Output: buf})

			tt.emit(logger, "pagination test message")

			if !strings.Contains(buf.String(), "pagination test message") {
				t.Errorf("Expected output to contain message, got %q", buf.String())
			}
		})
	}
}

func TestSetup_Pretty(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Setup(Config{Level: "info", Pretty: true, Output: buf})

	logger.Info().Msg("pretty message")

	output := buf.String()
	if strings.HasPrefix(output, "{") {
		t.Errorf("Expected console output, got JSON %q", output)
	}
	if !strings.Contains(output, "pretty message") {
		t.Errorf("Expected output to contain message, got %q", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{" trace ", zerolog.TraceLevel},
		{"", zerolog.InfoLevel},
		{"invalid", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: "info", Output: buf})

	logger := NewLogger("paginate")
	logger.Info().Msg("test message")

	output := buf.String()
	if !strings.Contains(output, `"component":"paginate"`) {
		t.Errorf("Expected output to contain component field, got %q", output)
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got %q", output)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: "warn", Output: buf})

	logger := NewLogger("test")
	logger.Debug().Msg("debug message")
	logger.Info().Msg("info message")
	logger.Warn().Msg("warn message")
	logger.Error().Msg("error message")

	output := buf.String()
	for _, dropped := range []string{"debug message", "info message"} {
		if strings.Contains(output, dropped) {
			t.Errorf("%q should be filtered out at warn level", dropped)
		}
	}
	for _, kept := range []string{"warn message", "error message"} {
		if !strings.Contains(output, kept) {
			t.Errorf("%q should be included at warn level", kept)
		}
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	if logger.GetLevel() != zerolog.Disabled {
		t.Errorf("Nop level = %v, want disabled", logger.GetLevel())
	}
}
