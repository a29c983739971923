package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "prod", slog.LevelInfo, "weather-dashboard", "1.2.3")

	logger.Info("hello", "city", "London")
	logger.Debug("hidden")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["app"] != "weather-dashboard" || entry["version"] != "1.2.3" || entry["env"] != "prod" {
		t.Errorf("missing static attributes: %v", entry)
	}
	if entry["city"] != "London" {
		t.Errorf("city = %v", entry["city"])
	}
}

func TestNewDevUsesTint(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "dev", slog.LevelDebug, "weather-dashboard", "0.4.1")

	logger.Debug("starting", "port", "8080")

	out := buf.String()
	for _, want := range []string{"starting", "port=", "app=", "weather-dashboard", "version=", "0.4.1", "env=", "dev"} {
		if !strings.Contains(out, want) {
			t.Errorf("dev output missing %q: %q", want, out)
		}
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("dev output should not be JSON: %q", out)
	}
}
