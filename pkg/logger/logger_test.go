package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"WARN":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
		"info":  zerolog.InfoLevel,
		"":      zerolog.InfoLevel,
		"trace": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONIncludesService(t *testing.T) {
	t.Setenv("ENV", "")
	var buf bytes.Buffer
	log := newWithWriter(&buf, "info", "json")

	log.Info().Str("component", "test").Msg("hello")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if line["service"] != ServiceName {
		t.Errorf("Expected service %q, got %v", ServiceName, line["service"])
	}
	if line["message"] != "hello" {
		t.Errorf("Expected message 'hello', got %v", line["message"])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	t.Setenv("ENV", "")
	var buf bytes.Buffer
	log := newWithWriter(&buf, "error", "json")

	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Errorf("Expected info line to be filtered, got %q", buf.String())
	}
}
