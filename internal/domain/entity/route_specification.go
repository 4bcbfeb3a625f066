package entity

import (
	"errors"
	"time"
)

// ErrSameOriginAndDestination is returned when a route specification would
// start and end at the same location.
var ErrSameOriginAndDestination = errors.New("origin and destination must differ")

// RouteSpecification is the contract for a cargo's movement: where it comes
// from, where it must go and by when.
type RouteSpecification struct {
	Origin          UNLocode  `bson:"origin"`
	Destination     UNLocode  `bson:"destination"`
	ArrivalDeadline time.Time `bson:"arrivalDeadline"`
}

// NewRouteSpecification creates a route specification, rejecting identical
// origin and destination.
func NewRouteSpecification(origin, destination UNLocode, arrivalDeadline time.Time) (RouteSpecification, error) {
	if origin == destination {
		return RouteSpecification{}, ErrSameOriginAndDestination
	}
	return RouteSpecification{
		Origin:          origin,
		Destination:     destination,
		ArrivalDeadline: arrivalDeadline,
	}, nil
}

// IsSatisfiedBy reports whether the itinerary actually moves the cargo from
// the specified origin to the specified destination through contiguous legs.
func (s RouteSpecification) IsSatisfiedBy(itinerary Itinerary) bool {
	return !itinerary.IsEmpty() &&
		itinerary.IsContiguous() &&
		s.Origin == itinerary.InitialDepartureLocation() &&
		s.Destination == itinerary.FinalArrivalLocation()
}

// WithDestination returns a copy of the specification routed to a new
// destination.
func (s RouteSpecification) WithDestination(destination UNLocode) (RouteSpecification, error) {
	return NewRouteSpecification(s.Origin, destination, s.ArrivalDeadline)
}
