package repository

import (
	"context"
	"errors"

	"cargotracker-service/internal/domain/entity"
)

// ErrCargoNotFound is returned when no cargo exists for a tracking id
var ErrCargoNotFound = errors.New("cargo not found")

// CargoRepository defines the interface for cargo aggregate storage
type CargoRepository interface {
	Find(ctx context.Context, trackingID entity.TrackingID) (*entity.Cargo, error)
	Store(ctx context.Context, cargo *entity.Cargo) error
}
