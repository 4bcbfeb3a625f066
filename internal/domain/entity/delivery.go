package entity

import "time"

// TransportStatus describes where a cargo currently is in the transport chain
type TransportStatus string

// Valid transport statuses
const (
	TransportNotReceived    TransportStatus = "NOT_RECEIVED"
	TransportInPort         TransportStatus = "IN_PORT"
	TransportOnboardCarrier TransportStatus = "ONBOARD_CARRIER"
	TransportClaimed        TransportStatus = "CLAIMED"
	TransportUnknown        TransportStatus = "UNKNOWN"
)

// RoutingStatus describes whether a cargo has a usable itinerary
type RoutingStatus string

// Valid routing statuses
const (
	RoutingNotRouted RoutingStatus = "NOT_ROUTED"
	RoutingRouted    RoutingStatus = "ROUTED"
	RoutingMisrouted RoutingStatus = "MISROUTED"
)

// Delivery is the derived snapshot of a cargo's real-world progress. It is
// never constructed directly; DeriveDelivery recomputes it from the route
// specification, the itinerary and the handling history whenever any of the
// three changes.
type Delivery struct {
	TransportStatus         TransportStatus `bson:"transportStatus" json:"transportStatus"`
	LastKnownLocation       UNLocode        `bson:"lastKnownLocation" json:"lastKnownLocation"`
	CurrentVoyage           VoyageNumber    `bson:"currentVoyage,omitempty" json:"currentVoyage,omitempty"`
	RoutingStatus           RoutingStatus   `bson:"routingStatus" json:"routingStatus"`
	IsMisdirected           bool            `bson:"isMisdirected" json:"isMisdirected"`
	IsUnloadedAtDestination bool            `bson:"isUnloadedAtDestination" json:"isUnloadedAtDestination"`
	NextExpectedActivity    *Activity       `bson:"nextExpectedActivity,omitempty" json:"nextExpectedActivity,omitempty"`
	CalculatedAt            time.Time       `bson:"calculatedAt" json:"calculatedAt"`
}

// DeriveDelivery computes the delivery snapshot for a cargo. Pure and
// deterministic apart from the CalculatedAt stamp: identical inputs always
// yield an identical snapshot. The misdirection walk replays the history in
// completion-time order regardless of the order events were registered in.
func DeriveDelivery(spec RouteSpecification, itinerary Itinerary, history HandlingHistory) Delivery {
	d := Delivery{
		TransportStatus:   TransportNotReceived,
		LastKnownLocation: LocationUnknown.UNLocode,
		RoutingStatus:     routingStatus(spec, itinerary),
		CalculatedAt:      time.Now(),
	}

	misdirected, nextBoundary := walkAgainstItinerary(itinerary, history)
	d.IsMisdirected = misdirected

	lastEvent, ok := history.MostRecentlyCompletedEvent()
	if !ok {
		if d.RoutingStatus == RoutingRouted {
			d.NextExpectedActivity = &Activity{Type: HandlingEventReceive, Location: spec.Origin}
		}
		return d
	}

	d.TransportStatus = transportStatus(lastEvent)
	d.LastKnownLocation = lastEvent.Location
	if d.TransportStatus == TransportOnboardCarrier {
		d.CurrentVoyage = lastEvent.VoyageNumber
	}

	d.IsUnloadedAtDestination = lastEvent.Type == HandlingEventUnload &&
		lastEvent.Location == spec.Destination &&
		d.RoutingStatus == RoutingRouted

	if !d.IsMisdirected && !d.IsUnloadedAtDestination && d.TransportStatus != TransportClaimed {
		d.NextExpectedActivity = nextBoundary
	}
	return d
}

func routingStatus(spec RouteSpecification, itinerary Itinerary) RoutingStatus {
	if itinerary.IsEmpty() {
		return RoutingNotRouted
	}
	if spec.IsSatisfiedBy(itinerary) {
		return RoutingRouted
	}
	return RoutingMisrouted
}

func transportStatus(event HandlingEvent) TransportStatus {
	switch event.Type {
	case HandlingEventReceive, HandlingEventUnload, HandlingEventCustoms:
		return TransportInPort
	case HandlingEventLoad:
		return TransportOnboardCarrier
	case HandlingEventClaim:
		return TransportClaimed
	}
	return TransportUnknown
}

// walkAgainstItinerary replays the history in chronological order against the
// itinerary's expected activity boundaries. CUSTOMS is always expected and
// never advances the position. The first event that fails to match the next
// unconsumed boundary marks the cargo misdirected, and misdirection is
// sticky from that point on. The second return is the boundary following the
// last matched one, nil when the itinerary is exhausted or empty.
func walkAgainstItinerary(itinerary Itinerary, history HandlingHistory) (bool, *Activity) {
	boundaries := itinerary.Boundaries()
	pos := 0
	for _, event := range history.EventsByCompletionTime() {
		if event.Type == HandlingEventCustoms {
			continue
		}
		if pos >= len(boundaries) || !event.MatchesActivity(boundaries[pos]) {
			return true, nil
		}
		pos++
	}
	if pos >= len(boundaries) {
		return false, nil
	}
	next := boundaries[pos]
	return false, &next
}
