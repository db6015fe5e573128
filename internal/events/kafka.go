package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/JuniorQuintas/VMA-Chat/internal/domain"
	"github.com/segmentio/kafka-go"
)

// Exporter publishes message.created events for downstream consumers
// (notification pipelines, analytics). The send path treats it as
// best-effort and works with a nil exporter.
type Exporter struct {
	writer *kafka.Writer
}

func NewExporter(brokers []string, topic string) *Exporter {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &Exporter{writer: w}
}

type messageCreated struct {
	ChatID  string          `json:"chat_id"`
	Message *domain.Message `json:"message"`
}

func (e *Exporter) MessageCreated(ctx context.Context, chatID string, m *domain.Message) error {
	b, err := json.Marshal(messageCreated{ChatID: chatID, Message: m})
	if err != nil {
		return err
	}
	return e.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(chatID),
		Value: b,
		Time:  time.Now(),
	})
}

func (e *Exporter) Close() error {
	if e == nil || e.writer == nil {
		return nil
	}
	return e.writer.Close()
}
