package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

func TestNewKafkaPublisherValidatesConfig(t *testing.T) {
	if _, err := NewKafkaPublisher(KafkaConfig{OrderTopic: "o", DisputeTopic: "d"}); err == nil {
		t.Fatal("expected error without brokers")
	}
	if _, err := NewKafkaPublisher(KafkaConfig{Brokers: []string{"localhost:9092"}}); err == nil {
		t.Fatal("expected error without topics")
	}
	p, err := NewKafkaPublisher(KafkaConfig{Brokers: []string{"localhost:9092"}, OrderTopic: "o", DisputeTopic: "d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestEncodeKeysByOrder(t *testing.T) {
	msg, err := encode("o-1", domain.OrderEvent{OrderID: "o-1", Status: domain.StatusCompleted})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(msg.Key) != "o-1" {
		t.Fatalf("key = %q", msg.Key)
	}
	var got map[string]any
	if err := json.Unmarshal(msg.Value, &got); err != nil {
		t.Fatalf("value is not json: %v", err)
	}
	if got["status"] != "completed" {
		t.Fatalf("status = %v", got["status"])
	}
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewTextHandler(&buf, nil)))

	_ = p.PublishOrder(context.Background(), domain.OrderEvent{OrderID: "o-1", Status: domain.StatusDisputed})
	_ = p.PublishDispute(context.Background(), domain.DisputeEvent{OrderID: "o-1", Status: domain.DisputeResolved})

	out := buf.String()
	if !strings.Contains(out, "order_id=o-1") || !strings.Contains(out, "status=resolved") {
		t.Fatalf("unexpected log output: %q", out)
	}
}
