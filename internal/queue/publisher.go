package queue

import (
	"context"
	"encoding/json"
	"time"

	"kozsync/internal/config"
	"kozsync/internal/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// PushJob asks the worker to run a batch push for the given staged rows.
type PushJob struct {
	ID          string    `json:"id"`
	ProductIDs  []string  `json:"product_ids"`
	RequestedAt time.Time `json:"requested_at"`
}

type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(cfg *config.Config, logger *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers),
		Topic:        cfg.PushJobsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// EnqueuePush publishes a push job and returns its id.
func (p *Publisher) EnqueuePush(ctx context.Context, productIDs []string) (string, error) {
	job := PushJob{
		ID:          uuid.New().String(),
		ProductIDs:  productIDs,
		RequestedAt: time.Now(),
	}

	value, err := json.Marshal(job)
	if err != nil {
		return "", err
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(job.ID),
		Value: value,
	}); err != nil {
		return "", err
	}

	p.logger.Info("Enqueued push job %s with %d products", job.ID, len(job.ProductIDs))
	return job.ID, nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
