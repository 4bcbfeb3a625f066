package repository

import (
	"context"
	"errors"

	"cargotracker-service/internal/domain/entity"
)

// ErrLocationNotFound is returned when a UN locode does not resolve
var ErrLocationNotFound = errors.New("location not found")

// LocationRepository defines the interface for location reference data.
// Find returns nil without error when the locode is unknown; Require turns
// an unknown locode into ErrLocationNotFound.
type LocationRepository interface {
	Find(ctx context.Context, locode entity.UNLocode) (*entity.Location, error)
	Require(ctx context.Context, locode entity.UNLocode) (*entity.Location, error)
	ListAll(ctx context.Context) ([]entity.Location, error)
}
