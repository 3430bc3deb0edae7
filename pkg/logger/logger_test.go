package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_JSONWithServiceFields(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Component(Init(Options{Level: "debug", Output: &buf, Service: "invoice-api", Env: "test"}), "auth")
	log.Debug().Str("user_id", "u-1").Msg("hello")

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	for key, want := range map[string]string{
		"level": "debug", "service": "invoice-api", "env": "test",
		"component": "auth", "user_id": "u-1", "message": "hello",
	} {
		if ev[key] != want {
			t.Errorf("%s = %v, want %q", key, ev[key], want)
		}
	}
	if _, ok := ev["time"]; !ok {
		t.Error("missing timestamp")
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	log := Init(Options{Output: &second, Level: "error"})

	log.Info().Msg("x")
	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected output on the first writer only")
	}
}

func TestReset_AllowsReinit(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Reset()
	log := Init(Options{Output: &second})

	log.Info().Msg("x")
	if first.Len() != 0 || second.Len() == 0 {
		t.Fatalf("expected output on the writer given after Reset")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" info ":  zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
