package repository

import (
	"context"
	"errors"

	"cargotracker-service/internal/domain/entity"
)

// ErrVoyageNotFound is returned when a voyage number does not resolve
var ErrVoyageNotFound = errors.New("voyage not found")

// VoyageRepository defines the interface for voyage reference data.
// Find returns nil without error when the number is unknown; Require turns
// an unknown number into ErrVoyageNotFound.
type VoyageRepository interface {
	Find(ctx context.Context, number entity.VoyageNumber) (*entity.Voyage, error)
	Require(ctx context.Context, number entity.VoyageNumber) (*entity.Voyage, error)
}
