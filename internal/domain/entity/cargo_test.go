package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCargo(t *testing.T) {
	cargo := NewCargo("001", testSpec(t))

	assert.Equal(t, TrackingID("001"), cargo.TrackingID)
	assert.True(t, cargo.Itinerary.IsEmpty())
	assert.True(t, cargo.History.IsEmpty())
	assert.Equal(t, TransportNotReceived, cargo.Delivery.TransportStatus)
	assert.Equal(t, RoutingNotRouted, cargo.Delivery.RoutingStatus)
	assert.False(t, cargo.Delivery.IsMisdirected)
}

func TestCargoIdentity(t *testing.T) {
	cargo1 := NewCargo("001", testSpec(t))
	cargo2 := NewCargo("001", testSpec(t))
	cargo3 := NewCargo("002", testSpec(t))

	assert.True(t, cargo1.SameIdentityAs(cargo2))
	assert.False(t, cargo1.SameIdentityAs(cargo3))
	assert.False(t, cargo1.SameIdentityAs(nil))
}

func TestCargoAssignToRoute(t *testing.T) {
	cargo := NewCargo("001", testSpec(t))

	cargo.AssignToRoute(oneLegItinerary())

	assert.Equal(t, RoutingRouted, cargo.Delivery.RoutingStatus)
	require.NotNil(t, cargo.Delivery.NextExpectedActivity)
	assert.Equal(t, HandlingEventReceive, cargo.Delivery.NextExpectedActivity.Type)
}

func TestCargoChangeDestination(t *testing.T) {
	cargo := NewCargo("001", testSpec(t))
	cargo.AssignToRoute(oneLegItinerary())
	require.Equal(t, RoutingRouted, cargo.Delivery.RoutingStatus)

	err := cargo.ChangeDestination(hangzhou)
	require.NoError(t, err)

	assert.Equal(t, hangzhou, cargo.RouteSpecification.Destination)
	// The old itinerary no longer satisfies the specification
	assert.Equal(t, RoutingMisrouted, cargo.Delivery.RoutingStatus)
}

func TestCargoChangeDestinationToOriginFails(t *testing.T) {
	cargo := NewCargo("001", testSpec(t))

	err := cargo.ChangeDestination(cargo.RouteSpecification.Origin)
	assert.ErrorIs(t, err, ErrSameOriginAndDestination)
}

func TestCargoHandleEventRederivesDelivery(t *testing.T) {
	cargo := NewCargo("001", testSpec(t))
	cargo.AssignToRoute(oneLegItinerary())

	cargo.HandleEvent(event(t, HandlingEventReceive, helsinki, "", time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)))

	assert.Equal(t, TransportInPort, cargo.Delivery.TransportStatus)
	assert.Equal(t, helsinki, cargo.Delivery.LastKnownLocation)
	assert.Len(t, cargo.History.Events, 1)
}
