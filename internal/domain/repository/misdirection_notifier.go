package repository

import (
	"context"

	"cargotracker-service/internal/domain/entity"
)

// MisdirectionNotifier delivers an alert when a cargo's handling diverges
// from its itinerary. Best effort: callers do not depend on the outcome.
type MisdirectionNotifier interface {
	NotifyMisdirection(ctx context.Context, cargo *entity.Cargo, event entity.HandlingEvent) error
}
