package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers      []string
	OrderTopic   string
	DisputeTopic string
	WriteTimeout time.Duration
}

// KafkaPublisher writes engine events keyed by order id so a single
// order's events stay ordered within a partition.
type KafkaPublisher struct {
	writer       *kafka.Writer
	orderTopic   string
	disputeTopic string
}

func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	if cfg.OrderTopic == "" || cfg.DisputeTopic == "" {
		return nil, fmt.Errorf("kafka: order and dispute topics are required")
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			WriteTimeout:           cfg.WriteTimeout,
			AllowAutoTopicCreation: true,
		},
		orderTopic:   cfg.OrderTopic,
		disputeTopic: cfg.DisputeTopic,
	}, nil
}

func (k *KafkaPublisher) Publish(ctx context.Context, topic string, msgs ...domain.Message) error {
	km := make([]kafka.Message, 0, len(msgs))
	now := time.Now()
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Topic: topic,
			Key:   m.Key,
			Value: m.Value,
			Time:  now,
		})
	}
	return k.writer.WriteMessages(ctx, km...)
}

func (k *KafkaPublisher) PublishOrder(ctx context.Context, event domain.OrderEvent) error {
	msg, err := encode(event.OrderID, event)
	if err != nil {
		return err
	}
	return k.Publish(ctx, k.orderTopic, msg)
}

func (k *KafkaPublisher) PublishDispute(ctx context.Context, event domain.DisputeEvent) error {
	msg, err := encode(event.OrderID, event)
	if err != nil {
		return err
	}
	return k.Publish(ctx, k.disputeTopic, msg)
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}

func encode(key string, event any) (domain.Message, error) {
	v, err := json.Marshal(event)
	if err != nil {
		return domain.Message{}, fmt.Errorf("marshal event: %w", err)
	}
	return domain.Message{Key: []byte(key), Value: v}, nil
}
