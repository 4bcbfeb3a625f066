package entity

import (
	"time"
)

// VoyageNumber uniquely identifies a voyage
type VoyageNumber string

// CarrierMovement is one vessel movement from one location to another
type CarrierMovement struct {
	DepartureLocation UNLocode
	ArrivalLocation   UNLocode
	DepartureTime     time.Time
	ArrivalTime       time.Time
}

// Voyage is a uniquely identifiable series of carrier movements. Immutable
// once built; use VoyageBuilder for incremental construction.
type Voyage struct {
	Number    VoyageNumber
	Movements []CarrierMovement
}

// SameIdentityAs reports whether both voyages carry the same voyage number
func (v Voyage) SameIdentityAs(other Voyage) bool {
	return v.Number == other.Number
}

func (v Voyage) String() string {
	return "Voyage " + string(v.Number)
}

// VoyageBuilder accumulates carrier movements for a voyage. Each added
// movement departs from the previous movement's arrival location, so the
// chained-movement invariant holds by construction.
type VoyageBuilder struct {
	number    VoyageNumber
	movements []CarrierMovement
	departure UNLocode
}

// NewVoyageBuilder starts a builder for the given voyage number, departing
// from the given location.
func NewVoyageBuilder(number VoyageNumber, departure UNLocode) *VoyageBuilder {
	return &VoyageBuilder{
		number:    number,
		departure: departure,
	}
}

// AddMovement appends a movement arriving at the given location. The movement
// departs from the previous movement's arrival location.
func (b *VoyageBuilder) AddMovement(arrival UNLocode, departureTime, arrivalTime time.Time) *VoyageBuilder {
	b.movements = append(b.movements, CarrierMovement{
		DepartureLocation: b.departure,
		ArrivalLocation:   arrival,
		DepartureTime:     departureTime,
		ArrivalTime:       arrivalTime,
	})
	b.departure = arrival
	return b
}

// Build returns the completed voyage
func (b *VoyageBuilder) Build() Voyage {
	movements := make([]CarrierMovement, len(b.movements))
	copy(movements, b.movements)
	return Voyage{Number: b.number, Movements: movements}
}
