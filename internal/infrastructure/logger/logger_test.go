package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/LavaJover/shvark-escrow-service/internal/config"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(config.LogConfig{LogLevel: "warn", LogFormat: "json"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Info("dropped")
	log.Warn("kept", "order_id", "o-1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("line is not json: %v", err)
	}
	if rec["msg"] != "kept" || rec["order_id"] != "o-1" || rec["service"] != "escrow-service" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestNewWithWriterText(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(config.LogConfig{LogLevel: "debug", LogFormat: "text"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Debug("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Fatalf("expected text output, got %q", buf.String())
	}
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	cases := []config.LogConfig{
		{LogLevel: "loud"},
		{LogFormat: "xml"},
		{LogOutput: "syslog"},
	}
	for _, c := range cases {
		if _, err := New(c); err == nil {
			t.Errorf("expected error for %+v", c)
		}
	}
}
