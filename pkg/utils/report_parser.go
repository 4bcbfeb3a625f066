package utils

import (
	"fmt"
	"time"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// Accepted completion time layouts
const (
	TimeLayoutFallback = "2006-01-02 15:04:05"
)

// ParsedReport is a handling report with its fields parsed into domain types.
// Only format-level checks have been applied; references are not yet
// resolved.
type ParsedReport struct {
	TrackingID     entity.TrackingID
	EventType      entity.HandlingEventType
	Location       entity.UNLocode
	VoyageNumber   entity.VoyageNumber
	CompletionTime time.Time
}

// ReportParser turns raw handling reports into parsed reports
type ReportParser struct {
	validate *validator.Validate
	logger   logger.Logger
}

// NewReportParser creates a new report parser
func NewReportParser(logger logger.Logger) *ReportParser {
	return &ReportParser{
		validate: validator.New(),
		logger:   logger,
	}
}

// Parse validates the report's shape and parses its fields. It performs no
// business validation: unknown cargos, locations and voyages pass through
// untouched.
func (p *ReportParser) Parse(report entity.HandlingReport) (ParsedReport, error) {
	if err := p.validate.Struct(report); err != nil {
		p.logger.Debug("Rejected malformed handling report", "trackingId", report.TrackingID, "error", err)
		return ParsedReport{}, fmt.Errorf("malformed handling report: %w", err)
	}

	eventType, err := entity.ParseHandlingEventType(report.EventType)
	if err != nil {
		return ParsedReport{}, err
	}

	completionTime, err := parseCompletionTime(report.CompletionTime)
	if err != nil {
		return ParsedReport{}, err
	}

	return ParsedReport{
		TrackingID:     entity.TrackingID(report.TrackingID),
		EventType:      eventType,
		Location:       entity.UNLocode(report.Location),
		VoyageNumber:   entity.VoyageNumber(report.VoyageNumber),
		CompletionTime: completionTime,
	}, nil
}

func parseCompletionTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(TimeLayoutFallback, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparseable completion time %q", value)
}
