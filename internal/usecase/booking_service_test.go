package usecase

import (
	"context"
	"testing"
	"time"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/internal/domain/repository"
	"cargotracker-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBookingService(t *testing.T) (*BookingService, *memCargoRepo) {
	t.Helper()
	cargoRepo := newMemCargoRepo()
	service := NewBookingService(cargoRepo, newMemLocationRepo(helsinki, shanghai), logger.NewNop())
	return service, cargoRepo
}

func TestBookNewCargo(t *testing.T) {
	service, cargoRepo := newTestBookingService(t)

	cargo, err := service.BookNewCargo(context.Background(), helsinki, shanghai, time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)

	assert.Len(t, cargo.TrackingID, 8)
	assert.Equal(t, entity.RoutingNotRouted, cargo.Delivery.RoutingStatus)
	assert.Equal(t, entity.TransportNotReceived, cargo.Delivery.TransportStatus)

	stored, err := cargoRepo.Find(context.Background(), cargo.TrackingID)
	require.NoError(t, err)
	assert.True(t, stored.SameIdentityAs(cargo))
}

func TestBookNewCargoUnknownOrigin(t *testing.T) {
	service, _ := newTestBookingService(t)

	_, err := service.BookNewCargo(context.Background(), "XXXXX", shanghai, time.Now())
	assert.ErrorIs(t, err, repository.ErrLocationNotFound)
}

func TestBookNewCargoSameOriginAndDestination(t *testing.T) {
	service, _ := newTestBookingService(t)

	_, err := service.BookNewCargo(context.Background(), helsinki, helsinki, time.Now())
	assert.ErrorIs(t, err, entity.ErrSameOriginAndDestination)
}

func TestAssignToRoute(t *testing.T) {
	service, _ := newTestBookingService(t)
	booked, err := service.BookNewCargo(context.Background(), helsinki, shanghai, time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)

	cargo, err := service.AssignToRoute(context.Background(), booked.TrackingID, entity.Itinerary{Legs: []entity.Leg{{
		VoyageNumber:   "V0001",
		LoadLocation:   helsinki,
		UnloadLocation: shanghai,
	}}})
	require.NoError(t, err)
	assert.Equal(t, entity.RoutingRouted, cargo.Delivery.RoutingStatus)
}

func TestChangeDestination(t *testing.T) {
	service, _ := newTestBookingService(t)
	booked, err := service.BookNewCargo(context.Background(), helsinki, shanghai, time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)

	cargo, err := service.ChangeDestination(context.Background(), booked.TrackingID, helsinki)
	assert.ErrorIs(t, err, entity.ErrSameOriginAndDestination)
	assert.Nil(t, cargo)
}

func TestGetDelivery(t *testing.T) {
	cargoRepo := newMemCargoRepo(routedCargo(t, "C1"))
	tracking := NewTrackingService(cargoRepo)

	delivery, err := tracking.GetDelivery(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoutingRouted, delivery.RoutingStatus)

	_, err = tracking.GetDelivery(context.Background(), "NOPE")
	assert.ErrorIs(t, err, repository.ErrCargoNotFound)
}
