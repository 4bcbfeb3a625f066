package entity

import "time"

// Cargo is the aggregate root tracked through the system, identified by its
// tracking id. It owns the route specification, the itinerary, the handling
// history and the currently derived delivery snapshot. Every mutation
// re-derives the delivery before returning.
type Cargo struct {
	TrackingID         TrackingID         `bson:"trackingId"`
	RouteSpecification RouteSpecification `bson:"routeSpecification"`
	Itinerary          Itinerary          `bson:"itinerary"`
	History            HandlingHistory    `bson:"history"`
	Delivery           Delivery           `bson:"delivery"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
}

// NewCargo creates a cargo with its initial route specification, an empty
// itinerary and an empty handling history.
func NewCargo(trackingID TrackingID, spec RouteSpecification) *Cargo {
	c := &Cargo{
		TrackingID:         trackingID,
		RouteSpecification: spec,
		CreatedAt:          time.Now(),
	}
	c.deriveDelivery()
	return c
}

// SameIdentityAs reports whether both cargos carry the same tracking id
func (c *Cargo) SameIdentityAs(other *Cargo) bool {
	return other != nil && c.TrackingID == other.TrackingID
}

// AssignToRoute attaches an itinerary produced by the route planner
func (c *Cargo) AssignToRoute(itinerary Itinerary) {
	c.Itinerary = itinerary
	c.deriveDelivery()
}

// ChangeDestination replaces the route specification with one routed to the
// new destination.
func (c *Cargo) ChangeDestination(destination UNLocode) error {
	spec, err := c.RouteSpecification.WithDestination(destination)
	if err != nil {
		return err
	}
	c.RouteSpecification = spec
	c.deriveDelivery()
	return nil
}

// HandleEvent appends a handling event to the history. Duplicate suppression
// and reference validation happen in the registration service; by the time
// an event reaches the aggregate it is trusted.
func (c *Cargo) HandleEvent(event HandlingEvent) {
	c.History = c.History.Append(event)
	c.deriveDelivery()
}

func (c *Cargo) deriveDelivery() {
	c.Delivery = DeriveDelivery(c.RouteSpecification, c.Itinerary, c.History)
	c.UpdatedAt = time.Now()
}
