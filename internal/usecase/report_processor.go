package usecase

import (
	"context"
	"time"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/pkg/logger"
	"cargotracker-service/pkg/metrics"
	"cargotracker-service/pkg/utils"
)

// ReportProcessor processes one raw handling report end to end
type ReportProcessor interface {
	ProcessReport(ctx context.Context, report entity.HandlingReport) error
}

// HandlingReportProcessor parses a raw report and dispatches it to the
// handling event service. It performs no business validation of its own.
type HandlingReportProcessor struct {
	parser  *utils.ReportParser
	events  *HandlingEventService
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewHandlingReportProcessor creates a new report processor. Metrics may be
// nil, in which case no counters are published.
func NewHandlingReportProcessor(
	parser *utils.ReportParser,
	events *HandlingEventService,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *HandlingReportProcessor {
	return &HandlingReportProcessor{
		parser:  parser,
		events:  events,
		logger:  logger,
		metrics: metrics,
	}
}

// ProcessReport converts the raw report into a registration command and
// registers it. The returned error is informational; the pipeline logs it
// and moves on.
func (p *HandlingReportProcessor) ProcessReport(ctx context.Context, report entity.HandlingReport) error {
	if p.metrics != nil {
		p.metrics.ReportsReceived.Inc()
	}

	parsed, err := p.parser.Parse(report)
	if err != nil {
		p.countError("parse")
		return err
	}

	start := time.Now()
	result, err := p.events.Register(ctx, RegisterHandlingEventCommand{
		TrackingID:     parsed.TrackingID,
		EventType:      parsed.EventType,
		Location:       parsed.Location,
		VoyageNumber:   parsed.VoyageNumber,
		CompletionTime: parsed.CompletionTime,
	})
	if p.metrics != nil {
		p.metrics.RegistrationDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		p.countError("register")
		return err
	}

	if p.metrics != nil {
		if result.Duplicate {
			p.metrics.DuplicatesIgnored.Inc()
		} else {
			p.metrics.EventsRegistered.Inc()
		}
		if result.MisdirectionRaised {
			p.metrics.MisdirectionsRaised.Inc()
		}
	}

	p.logger.Debug("Handling report processed",
		"trackingId", parsed.TrackingID,
		"eventType", parsed.EventType,
		"duplicate", result.Duplicate)
	return nil
}

func (p *HandlingReportProcessor) countError(operation string) {
	if p.metrics != nil {
		p.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	}
}
