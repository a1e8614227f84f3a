package worker

import (
	"context"
	"encoding/json"
	"time"

	"kozsync/internal/config"
	"kozsync/internal/logger"
	"kozsync/internal/queue"
	"kozsync/internal/worker/processors"

	"github.com/segmentio/kafka-go"
)

type Worker struct {
	config    *config.Config
	logger    *logger.Logger
	reader    *kafka.Reader
	processor *processors.PushProcessor
}

func New(cfg *config.Config, logger *logger.Logger, processor *processors.PushProcessor) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.KafkaBrokers},
		GroupID:        "kozsync-worker",
		Topic:          cfg.PushJobsTopic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config:    cfg,
		logger:    logger,
		reader:    reader,
		processor: processor,
	}
}

func (w *Worker) Start() {
	w.logger.Info("Worker started, waiting for push jobs...")

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			if err == context.DeadlineExceeded {
				continue
			}
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		var job queue.PushJob
		if err := json.Unmarshal(message.Value, &job); err != nil {
			w.logger.Error("Failed to parse push job: %v", err)
			continue
		}

		if err := w.processor.Process(job); err != nil {
			w.logger.Error("Failed to process push job %s: %v", job.ID, err)
			continue
		}
	}
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.reader.Close()
}
