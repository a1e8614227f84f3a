package processors

import (
	"kozsync/internal/logger"
	"kozsync/internal/queue"
	"kozsync/internal/sync"
)

// PushProcessor runs queued batch pushes against the remote store.
type PushProcessor struct {
	pusher *sync.Pusher
	logger *logger.Logger
}

func NewPushProcessor(pusher *sync.Pusher, logger *logger.Logger) *PushProcessor {
	return &PushProcessor{
		pusher: pusher,
		logger: logger,
	}
}

func (pp *PushProcessor) Process(job queue.PushJob) error {
	pp.logger.Info("Processing push job %s (%d products)", job.ID, len(job.ProductIDs))

	report, err := pp.pusher.PushBatch(job.ProductIDs)
	if err != nil {
		return err
	}

	pp.logger.Info("Push job %s done: %d ok, %d failed", job.ID, report.Success, report.Failed)
	for _, detail := range report.Details {
		if !detail.Success {
			pp.logger.Error("Push failed for %s: %s", detail.ID, detail.Error)
		}
	}

	return nil
}
