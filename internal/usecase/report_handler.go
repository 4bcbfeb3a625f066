package usecase

import (
	"context"
	"fmt"
	"sync"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/pkg/logger"
)

// HandlingReportHandler accepts batches of raw handling reports. The batch
// call cannot promise that every report is processed immediately or
// successfully: failures are isolated per report and surface only through
// logs and metrics, never through the batch call itself.
type HandlingReportHandler interface {
	ReceiveHandlingReports(ctx context.Context, reports []entity.HandlingReport)
}

// Report handler strategies
const (
	StrategyInline = "inline"
	StrategyPooled = "pooled"
	StrategyQueued = "queued"
)

// NewHandlingReportHandler builds the report handler for the configured
// strategy. The queued strategy starts its workers immediately; they run
// until ctx is cancelled.
func NewHandlingReportHandler(ctx context.Context, strategy string, processor ReportProcessor, logger logger.Logger, workers, queueSize int) (HandlingReportHandler, error) {
	switch strategy {
	case StrategyInline:
		return NewInlineReportHandler(processor, logger), nil
	case StrategyPooled:
		return NewPooledReportHandler(processor, logger, workers), nil
	case StrategyQueued:
		return NewQueuedReportHandler(ctx, processor, logger, workers, queueSize), nil
	}
	return nil, fmt.Errorf("unknown report strategy %q", strategy)
}

// processReport runs one report through the processor, containing any
// failure (including panics) to that single report.
func processReport(ctx context.Context, processor ReportProcessor, log logger.Logger, report entity.HandlingReport) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic while processing handling report",
				"trackingId", report.TrackingID,
				"panic", r)
		}
	}()
	if err := processor.ProcessReport(ctx, report); err != nil {
		log.Error("Failed to process handling report",
			"trackingId", report.TrackingID,
			"eventType", report.EventType,
			"error", err)
	}
}

// InlineReportHandler processes each report sequentially on the calling
// goroutine before returning.
type InlineReportHandler struct {
	processor ReportProcessor
	logger    logger.Logger
}

// NewInlineReportHandler creates an inline report handler
func NewInlineReportHandler(processor ReportProcessor, logger logger.Logger) *InlineReportHandler {
	return &InlineReportHandler{processor: processor, logger: logger}
}

// ReceiveHandlingReports processes the batch sequentially
func (h *InlineReportHandler) ReceiveHandlingReports(ctx context.Context, reports []entity.HandlingReport) {
	for _, report := range reports {
		processReport(ctx, h.processor, h.logger, report)
	}
}

// PooledReportHandler submits each report to a bounded worker pool. The
// batch call returns once every report is handed to a worker, which may
// block while the pool is saturated.
type PooledReportHandler struct {
	processor ReportProcessor
	logger    logger.Logger
	slots     chan struct{}
	wg        sync.WaitGroup
}

// NewPooledReportHandler creates a pooled report handler with the given
// number of concurrent workers.
func NewPooledReportHandler(processor ReportProcessor, logger logger.Logger, workers int) *PooledReportHandler {
	if workers < 1 {
		workers = 1
	}
	return &PooledReportHandler{
		processor: processor,
		logger:    logger,
		slots:     make(chan struct{}, workers),
	}
}

// ReceiveHandlingReports dispatches each report as an independent unit of
// work and returns once all are accepted. Workers outlive the batch call,
// so they run on a context detached from the caller's cancellation.
func (h *PooledReportHandler) ReceiveHandlingReports(ctx context.Context, reports []entity.HandlingReport) {
	work := context.WithoutCancel(ctx)
	for _, report := range reports {
		h.slots <- struct{}{}
		h.wg.Add(1)
		go func(report entity.HandlingReport) {
			defer func() {
				<-h.slots
				h.wg.Done()
			}()
			processReport(work, h.processor, h.logger, report)
		}(report)
	}
}

// Wait blocks until all dispatched reports have finished processing
func (h *PooledReportHandler) Wait() {
	h.wg.Wait()
}

// QueuedReportHandler pushes reports onto a buffered queue consumed by a
// fixed set of background workers. The batch call returns once all reports
// are enqueued, blocking while the queue is full.
type QueuedReportHandler struct {
	processor ReportProcessor
	logger    logger.Logger
	queue     chan entity.HandlingReport
	wg        sync.WaitGroup
}

// NewQueuedReportHandler creates a queued report handler and starts its
// workers. Workers drain the queue until ctx is cancelled.
func NewQueuedReportHandler(ctx context.Context, processor ReportProcessor, logger logger.Logger, workers, queueSize int) *QueuedReportHandler {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	h := &QueuedReportHandler{
		processor: processor,
		logger:    logger,
		queue:     make(chan entity.HandlingReport, queueSize),
	}
	for i := 0; i < workers; i++ {
		h.wg.Add(1)
		go h.worker(ctx)
	}
	return h
}

func (h *QueuedReportHandler) worker(ctx context.Context) {
	defer h.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case report := <-h.queue:
			processReport(ctx, h.processor, h.logger, report)
		}
	}
}

// ReceiveHandlingReports enqueues the batch and returns
func (h *QueuedReportHandler) ReceiveHandlingReports(ctx context.Context, reports []entity.HandlingReport) {
	for _, report := range reports {
		h.queue <- report
	}
}

// Shutdown waits for the workers to observe the cancelled context
func (h *QueuedReportHandler) Shutdown() {
	h.wg.Wait()
}
