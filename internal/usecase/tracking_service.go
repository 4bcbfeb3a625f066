package usecase

import (
	"context"
	"fmt"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/internal/domain/repository"
)

// TrackingService answers delivery queries for tracked cargos
type TrackingService struct {
	cargoRepo repository.CargoRepository
}

// NewTrackingService creates a new tracking service
func NewTrackingService(cargoRepo repository.CargoRepository) *TrackingService {
	return &TrackingService{cargoRepo: cargoRepo}
}

// GetDelivery returns the current delivery snapshot for a cargo
func (s *TrackingService) GetDelivery(ctx context.Context, trackingID entity.TrackingID) (entity.Delivery, error) {
	cargo, err := s.cargoRepo.Find(ctx, trackingID)
	if err != nil {
		return entity.Delivery{}, fmt.Errorf("resolving cargo %s: %w", trackingID, err)
	}
	return cargo.Delivery, nil
}
