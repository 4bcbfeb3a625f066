package usecase

import (
	"context"
	"fmt"
	"time"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/internal/domain/repository"
	"cargotracker-service/pkg/logger"
)

// RegisterHandlingEventCommand carries the parsed fields of one handling
// event registration.
type RegisterHandlingEventCommand struct {
	TrackingID     entity.TrackingID
	EventType      entity.HandlingEventType
	Location       entity.UNLocode
	VoyageNumber   entity.VoyageNumber
	CompletionTime time.Time
}

// RegistrationResult is the outcome of a successful registration call.
// Duplicate marks a suppressed re-registration of an already known event;
// MisdirectionRaised marks a registration that newly flipped the cargo's
// misdirection flag.
type RegistrationResult struct {
	Delivery           entity.Delivery
	Duplicate          bool
	MisdirectionRaised bool
}

// HandlingEventService validates and appends handling events to cargo
// histories. Mutations of the same cargo are serialized through a per-cargo
// lock; different cargos register fully in parallel.
type HandlingEventService struct {
	cargoRepo    repository.CargoRepository
	locationRepo repository.LocationRepository
	voyageRepo   repository.VoyageRepository
	notifier     repository.MisdirectionNotifier
	locks        *cargoLocks
	logger       logger.Logger
}

// NewHandlingEventService creates a new handling event service
func NewHandlingEventService(
	cargoRepo repository.CargoRepository,
	locationRepo repository.LocationRepository,
	voyageRepo repository.VoyageRepository,
	notifier repository.MisdirectionNotifier,
	logger logger.Logger,
) *HandlingEventService {
	return &HandlingEventService{
		cargoRepo:    cargoRepo,
		locationRepo: locationRepo,
		voyageRepo:   voyageRepo,
		notifier:     notifier,
		locks:        newCargoLocks(),
		logger:       logger,
	}
}

// Register resolves the cargo, validates the event's references and
// type/voyage pairing, and appends the event unless an event with the same
// idempotency key is already recorded. The cargo's delivery is re-derived
// and stored before returning. A registration that newly marks the cargo
// misdirected triggers a best-effort notification that never blocks or
// fails the registration itself.
func (s *HandlingEventService) Register(ctx context.Context, cmd RegisterHandlingEventCommand) (*RegistrationResult, error) {
	lock := s.locks.forCargo(cmd.TrackingID)
	lock.Lock()
	defer lock.Unlock()

	cargo, err := s.cargoRepo.Find(ctx, cmd.TrackingID)
	if err != nil {
		return nil, fmt.Errorf("resolving cargo %s: %w", cmd.TrackingID, err)
	}

	if _, err := s.locationRepo.Require(ctx, cmd.Location); err != nil {
		return nil, fmt.Errorf("resolving location %s: %w", cmd.Location, err)
	}
	if cmd.VoyageNumber != "" {
		if _, err := s.voyageRepo.Require(ctx, cmd.VoyageNumber); err != nil {
			return nil, fmt.Errorf("resolving voyage %s: %w", cmd.VoyageNumber, err)
		}
	}

	event, err := entity.NewHandlingEvent(cmd.TrackingID, cmd.EventType, cmd.Location, cmd.VoyageNumber, cmd.CompletionTime, time.Now())
	if err != nil {
		return nil, err
	}

	if cargo.History.Contains(event.Key()) {
		s.logger.Info("Duplicate handling report ignored",
			"trackingId", cmd.TrackingID,
			"eventType", cmd.EventType,
			"location", cmd.Location)
		return &RegistrationResult{Delivery: cargo.Delivery, Duplicate: true}, nil
	}

	wasMisdirected := cargo.Delivery.IsMisdirected
	cargo.HandleEvent(event)
	misdirectionRaised := !wasMisdirected && cargo.Delivery.IsMisdirected

	if err := s.cargoRepo.Store(ctx, cargo); err != nil {
		return nil, fmt.Errorf("storing cargo %s: %w", cmd.TrackingID, err)
	}

	s.logger.Info("Handling event registered",
		"trackingId", cmd.TrackingID,
		"eventType", cmd.EventType,
		"location", cmd.Location,
		"transportStatus", cargo.Delivery.TransportStatus,
		"misdirected", cargo.Delivery.IsMisdirected)

	if misdirectionRaised {
		// Snapshot the aggregate: the notification goroutine outlives the lock.
		snapshot := *cargo
		s.notifyMisdirection(ctx, &snapshot, event)
	}

	return &RegistrationResult{
		Delivery:           cargo.Delivery,
		MisdirectionRaised: misdirectionRaised,
	}, nil
}

// notifyMisdirection emits the alert on its own goroutine so a slow or
// failing notification sink cannot affect the registration.
func (s *HandlingEventService) notifyMisdirection(ctx context.Context, cargo *entity.Cargo, event entity.HandlingEvent) {
	notifyCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.notifier.NotifyMisdirection(notifyCtx, cargo, event); err != nil {
			s.logger.Error("Failed to send misdirection notification",
				"trackingId", cargo.TrackingID,
				"error", err)
		}
	}()
}
