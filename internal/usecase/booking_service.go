package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/internal/domain/repository"
	"cargotracker-service/pkg/logger"

	"github.com/google/uuid"
)

// BookingService books new cargos and maintains their routing
type BookingService struct {
	cargoRepo    repository.CargoRepository
	locationRepo repository.LocationRepository
	logger       logger.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	cargoRepo repository.CargoRepository,
	locationRepo repository.LocationRepository,
	logger logger.Logger,
) *BookingService {
	return &BookingService{
		cargoRepo:    cargoRepo,
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// BookNewCargo registers a new cargo for transport between two known
// locations and returns it with a freshly assigned tracking id.
func (s *BookingService) BookNewCargo(ctx context.Context, origin, destination entity.UNLocode, arrivalDeadline time.Time) (*entity.Cargo, error) {
	if _, err := s.locationRepo.Require(ctx, origin); err != nil {
		return nil, fmt.Errorf("resolving origin %s: %w", origin, err)
	}
	if _, err := s.locationRepo.Require(ctx, destination); err != nil {
		return nil, fmt.Errorf("resolving destination %s: %w", destination, err)
	}

	spec, err := entity.NewRouteSpecification(origin, destination, arrivalDeadline)
	if err != nil {
		return nil, err
	}

	cargo := entity.NewCargo(nextTrackingID(), spec)
	if err := s.cargoRepo.Store(ctx, cargo); err != nil {
		return nil, fmt.Errorf("storing cargo %s: %w", cargo.TrackingID, err)
	}

	s.logger.Info("Booked new cargo",
		"trackingId", cargo.TrackingID,
		"origin", origin,
		"destination", destination)
	return cargo, nil
}

// AssignToRoute attaches an itinerary produced by the route planner to the
// cargo and re-derives its delivery.
func (s *BookingService) AssignToRoute(ctx context.Context, trackingID entity.TrackingID, itinerary entity.Itinerary) (*entity.Cargo, error) {
	cargo, err := s.cargoRepo.Find(ctx, trackingID)
	if err != nil {
		return nil, fmt.Errorf("resolving cargo %s: %w", trackingID, err)
	}

	cargo.AssignToRoute(itinerary)
	if err := s.cargoRepo.Store(ctx, cargo); err != nil {
		return nil, fmt.Errorf("storing cargo %s: %w", trackingID, err)
	}

	s.logger.Info("Assigned cargo to route",
		"trackingId", trackingID,
		"legs", len(itinerary.Legs),
		"routingStatus", cargo.Delivery.RoutingStatus)
	return cargo, nil
}

// ChangeDestination reroutes the cargo to a new destination
func (s *BookingService) ChangeDestination(ctx context.Context, trackingID entity.TrackingID, destination entity.UNLocode) (*entity.Cargo, error) {
	if _, err := s.locationRepo.Require(ctx, destination); err != nil {
		return nil, fmt.Errorf("resolving destination %s: %w", destination, err)
	}

	cargo, err := s.cargoRepo.Find(ctx, trackingID)
	if err != nil {
		return nil, fmt.Errorf("resolving cargo %s: %w", trackingID, err)
	}

	if err := cargo.ChangeDestination(destination); err != nil {
		return nil, err
	}
	if err := s.cargoRepo.Store(ctx, cargo); err != nil {
		return nil, fmt.Errorf("storing cargo %s: %w", trackingID, err)
	}

	s.logger.Info("Changed cargo destination",
		"trackingId", trackingID,
		"destination", destination)
	return cargo, nil
}

// nextTrackingID derives a short uppercase tracking id from a UUID
func nextTrackingID() entity.TrackingID {
	serial := strings.ToUpper(uuid.NewString()[:8])
	return entity.TrackingID(serial)
}
