package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/internal/domain/repository"
	"cargotracker-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	helsinki = entity.UNLocode("FIHEL")
	shanghai = entity.UNLocode("CNSHA")
)

func routedCargo(t *testing.T, trackingID entity.TrackingID) *entity.Cargo {
	t.Helper()
	spec, err := entity.NewRouteSpecification(helsinki, shanghai, time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)
	cargo := entity.NewCargo(trackingID, spec)
	cargo.AssignToRoute(entity.Itinerary{Legs: []entity.Leg{{
		VoyageNumber:   "V0001",
		LoadLocation:   helsinki,
		UnloadLocation: shanghai,
	}}})
	return cargo
}

func newTestEventService(t *testing.T, cargos ...*entity.Cargo) (*HandlingEventService, *memCargoRepo, *recordingNotifier) {
	t.Helper()
	cargoRepo := newMemCargoRepo(cargos...)
	notifier := newRecordingNotifier()
	service := NewHandlingEventService(
		cargoRepo,
		newMemLocationRepo(helsinki, shanghai),
		newMemVoyageRepo("V0001"),
		notifier,
		logger.NewNop(),
	)
	return service, cargoRepo, notifier
}

func receiveCommand(trackingID entity.TrackingID, completed time.Time) RegisterHandlingEventCommand {
	return RegisterHandlingEventCommand{
		TrackingID:     trackingID,
		EventType:      entity.HandlingEventReceive,
		Location:       helsinki,
		CompletionTime: completed,
	}
}

func TestRegisterAppendsEventAndDerivesDelivery(t *testing.T) {
	service, cargoRepo, _ := newTestEventService(t, routedCargo(t, "C1"))

	result, err := service.Register(context.Background(), receiveCommand("C1", time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	assert.False(t, result.Duplicate)
	assert.False(t, result.MisdirectionRaised)
	assert.Equal(t, entity.TransportInPort, result.Delivery.TransportStatus)
	assert.Equal(t, helsinki, result.Delivery.LastKnownLocation)

	stored, err := cargoRepo.Find(context.Background(), "C1")
	require.NoError(t, err)
	assert.Len(t, stored.History.Events, 1)
}

func TestRegisterUnknownCargo(t *testing.T) {
	service, _, _ := newTestEventService(t)

	_, err := service.Register(context.Background(), receiveCommand("NOPE", time.Now()))
	assert.ErrorIs(t, err, repository.ErrCargoNotFound)
}

func TestRegisterUnknownLocation(t *testing.T) {
	service, _, _ := newTestEventService(t, routedCargo(t, "C1"))

	cmd := receiveCommand("C1", time.Now())
	cmd.Location = "XXXXX"
	_, err := service.Register(context.Background(), cmd)
	assert.ErrorIs(t, err, repository.ErrLocationNotFound)
}

func TestRegisterUnknownVoyage(t *testing.T) {
	service, _, _ := newTestEventService(t, routedCargo(t, "C1"))

	_, err := service.Register(context.Background(), RegisterHandlingEventCommand{
		TrackingID:     "C1",
		EventType:      entity.HandlingEventLoad,
		Location:       helsinki,
		VoyageNumber:   "V9999",
		CompletionTime: time.Now(),
	})
	assert.ErrorIs(t, err, repository.ErrVoyageNotFound)
}

func TestRegisterInvalidEventPairing(t *testing.T) {
	service, _, _ := newTestEventService(t, routedCargo(t, "C1"))

	// LOAD without a voyage
	_, err := service.Register(context.Background(), RegisterHandlingEventCommand{
		TrackingID:     "C1",
		EventType:      entity.HandlingEventLoad,
		Location:       helsinki,
		CompletionTime: time.Now(),
	})
	assert.ErrorIs(t, err, entity.ErrInvalidEvent)
}

func TestRegisterDuplicateIsSuppressed(t *testing.T) {
	service, cargoRepo, _ := newTestEventService(t, routedCargo(t, "C1"))
	cmd := receiveCommand("C1", time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC))

	first, err := service.Register(context.Background(), cmd)
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	second, err := service.Register(context.Background(), cmd)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)

	stored, err := cargoRepo.Find(context.Background(), "C1")
	require.NoError(t, err)
	assert.Len(t, stored.History.Events, 1)
}

func TestRegisterConcurrentDuplicatesStoreOneEvent(t *testing.T) {
	service, cargoRepo, _ := newTestEventService(t, routedCargo(t, "C1"))
	cmd := receiveCommand("C1", time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Register(context.Background(), cmd)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := cargoRepo.Find(context.Background(), "C1")
	require.NoError(t, err)
	assert.Len(t, stored.History.Events, 1)
}

func TestRegisterMisdirectionRaisesNotificationOnce(t *testing.T) {
	service, _, notifier := newTestEventService(t, routedCargo(t, "C1"))
	base := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)

	// LOAD at the wrong location
	result, err := service.Register(context.Background(), RegisterHandlingEventCommand{
		TrackingID:     "C1",
		EventType:      entity.HandlingEventLoad,
		Location:       shanghai,
		VoyageNumber:   "V0001",
		CompletionTime: base,
	})
	require.NoError(t, err)
	assert.True(t, result.MisdirectionRaised)
	assert.True(t, result.Delivery.IsMisdirected)

	select {
	case <-notifier.signal:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a misdirection notification")
	}

	// Already misdirected: no second notification
	result, err = service.Register(context.Background(), RegisterHandlingEventCommand{
		TrackingID:     "C1",
		EventType:      entity.HandlingEventUnload,
		Location:       shanghai,
		VoyageNumber:   "V0001",
		CompletionTime: base.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.False(t, result.MisdirectionRaised)
	assert.True(t, result.Delivery.IsMisdirected)
	assert.Equal(t, 1, notifier.count())
}

func TestRegisterOutOfOrderEventsReplayChronologically(t *testing.T) {
	service, _, _ := newTestEventService(t, routedCargo(t, "C1"))
	base := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)

	// The UNLOAD dated later arrives first
	_, err := service.Register(context.Background(), RegisterHandlingEventCommand{
		TrackingID:     "C1",
		EventType:      entity.HandlingEventUnload,
		Location:       shanghai,
		VoyageNumber:   "V0001",
		CompletionTime: base.Add(400 * time.Hour),
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), receiveCommand("C1", base))
	require.NoError(t, err)

	result, err := service.Register(context.Background(), RegisterHandlingEventCommand{
		TrackingID:     "C1",
		EventType:      entity.HandlingEventLoad,
		Location:       helsinki,
		VoyageNumber:   "V0001",
		CompletionTime: base.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	// Chronological replay: RECEIVE, LOAD, UNLOAD is itinerary-compliant
	assert.False(t, result.Delivery.IsMisdirected)
	assert.Equal(t, entity.TransportInPort, result.Delivery.TransportStatus)
	assert.Equal(t, shanghai, result.Delivery.LastKnownLocation)
	assert.True(t, result.Delivery.IsUnloadedAtDestination)
}
