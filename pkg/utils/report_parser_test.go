package utils

import (
	"testing"
	"time"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidReport(t *testing.T) {
	parser := NewReportParser(logger.NewNop())

	parsed, err := parser.Parse(entity.HandlingReport{
		TrackingID:     "ABC123",
		EventType:      "LOAD",
		Location:       "FIHEL",
		VoyageNumber:   "V0001",
		CompletionTime: "2026-03-01T06:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TrackingID("ABC123"), parsed.TrackingID)
	assert.Equal(t, entity.HandlingEventLoad, parsed.EventType)
	assert.Equal(t, entity.UNLocode("FIHEL"), parsed.Location)
	assert.Equal(t, entity.VoyageNumber("V0001"), parsed.VoyageNumber)
	assert.Equal(t, time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC), parsed.CompletionTime.UTC())
}

func TestParseFallbackTimeLayout(t *testing.T) {
	parser := NewReportParser(logger.NewNop())

	parsed, err := parser.Parse(entity.HandlingReport{
		TrackingID:     "ABC123",
		EventType:      "RECEIVE",
		Location:       "FIHEL",
		CompletionTime: "2026-03-01 06:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC), parsed.CompletionTime)
}

func TestParseRejectsMissingFields(t *testing.T) {
	parser := NewReportParser(logger.NewNop())

	_, err := parser.Parse(entity.HandlingReport{
		EventType:      "RECEIVE",
		Location:       "FIHEL",
		CompletionTime: "2026-03-01T06:00:00Z",
	})
	assert.Error(t, err)
}

func TestParseRejectsUnknownEventType(t *testing.T) {
	parser := NewReportParser(logger.NewNop())

	_, err := parser.Parse(entity.HandlingReport{
		TrackingID:     "ABC123",
		EventType:      "TELEPORT",
		Location:       "FIHEL",
		CompletionTime: "2026-03-01T06:00:00Z",
	})
	assert.ErrorIs(t, err, entity.ErrInvalidEvent)
}

func TestParseRejectsBadTime(t *testing.T) {
	parser := NewReportParser(logger.NewNop())

	_, err := parser.Parse(entity.HandlingReport{
		TrackingID:     "ABC123",
		EventType:      "RECEIVE",
		Location:       "FIHEL",
		CompletionTime: "yesterday-ish",
	})
	assert.Error(t, err)
}

// Voyage presence is a business rule, not a format rule: the parser lets a
// RECEIVE with a voyage through and the registration service rejects it.
func TestParseDoesNotEnforceVoyagePairing(t *testing.T) {
	parser := NewReportParser(logger.NewNop())

	parsed, err := parser.Parse(entity.HandlingReport{
		TrackingID:     "ABC123",
		EventType:      "RECEIVE",
		Location:       "FIHEL",
		VoyageNumber:   "V0001",
		CompletionTime: "2026-03-01T06:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VoyageNumber("V0001"), parsed.VoyageNumber)
}
