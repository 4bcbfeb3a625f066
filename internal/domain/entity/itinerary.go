package entity

import "time"

// Leg is one planned segment of an itinerary: board a voyage at the load
// location, leave it at the unload location.
type Leg struct {
	VoyageNumber   VoyageNumber `bson:"voyageNumber"`
	LoadLocation   UNLocode     `bson:"loadLocation"`
	UnloadLocation UNLocode     `bson:"unloadLocation"`
	LoadTime       time.Time    `bson:"loadTime"`
	UnloadTime     time.Time    `bson:"unloadTime"`
}

// Itinerary is the planned sequence of legs moving a cargo from origin to
// destination. An empty itinerary means the cargo is not yet routed.
type Itinerary struct {
	Legs []Leg `bson:"legs"`
}

// IsEmpty reports whether the itinerary has no legs
func (i Itinerary) IsEmpty() bool {
	return len(i.Legs) == 0
}

// InitialDepartureLocation returns the load location of the first leg, or the
// unknown locode for an empty itinerary.
func (i Itinerary) InitialDepartureLocation() UNLocode {
	if i.IsEmpty() {
		return LocationUnknown.UNLocode
	}
	return i.Legs[0].LoadLocation
}

// FinalArrivalLocation returns the unload location of the last leg, or the
// unknown locode for an empty itinerary.
func (i Itinerary) FinalArrivalLocation() UNLocode {
	if i.IsEmpty() {
		return LocationUnknown.UNLocode
	}
	return i.Legs[len(i.Legs)-1].UnloadLocation
}

// FinalArrivalTime returns the unload time of the last leg, or the zero time
// for an empty itinerary.
func (i Itinerary) FinalArrivalTime() time.Time {
	if i.IsEmpty() {
		return time.Time{}
	}
	return i.Legs[len(i.Legs)-1].UnloadTime
}

// IsContiguous reports whether every leg loads where the previous leg
// unloaded.
func (i Itinerary) IsContiguous() bool {
	for n := 1; n < len(i.Legs); n++ {
		if i.Legs[n].LoadLocation != i.Legs[n-1].UnloadLocation {
			return false
		}
	}
	return true
}

// Boundaries expands the itinerary into the expected handling activities, in
// order: RECEIVE at the first load location, LOAD and UNLOAD for each leg,
// and a final CLAIM at the last unload location. Empty for an empty
// itinerary.
func (i Itinerary) Boundaries() []Activity {
	if i.IsEmpty() {
		return nil
	}
	boundaries := make([]Activity, 0, 2*len(i.Legs)+2)
	boundaries = append(boundaries, Activity{
		Type:     HandlingEventReceive,
		Location: i.Legs[0].LoadLocation,
	})
	for _, leg := range i.Legs {
		boundaries = append(boundaries,
			Activity{Type: HandlingEventLoad, Location: leg.LoadLocation, VoyageNumber: leg.VoyageNumber},
			Activity{Type: HandlingEventUnload, Location: leg.UnloadLocation, VoyageNumber: leg.VoyageNumber},
		)
	}
	boundaries = append(boundaries, Activity{
		Type:     HandlingEventClaim,
		Location: i.FinalArrivalLocation(),
	})
	return boundaries
}
