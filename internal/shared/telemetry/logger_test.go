package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestInfoWritesJSONFields(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "info")
	t.Cleanup(func() { Configure(os.Stdout, "info") })

	Info("request", map[string]any{"status": 201, "path": "/api/auth/register"})

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if line["msg"] != "request" || line["path"] != "/api/auth/register" || fmt.Sprint(line["status"]) != "201" {
		t.Fatalf("unexpected log line %v", line)
	}
	if line["level"] != "info" {
		t.Fatalf("level = %v", line["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "warn")
	t.Cleanup(func() { Configure(os.Stdout, "info") })

	Debug("hidden", nil)
	Info("hidden", nil)
	Warn("shown", nil)
	Error("shown", map[string]any{"error": "boom"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
}

func TestConfigureUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "chatty")
	t.Cleanup(func() { Configure(os.Stdout, "info") })

	Debug("hidden", nil)
	Info("shown", nil)
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
