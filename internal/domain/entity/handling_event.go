package entity

import (
	"errors"
	"fmt"
	"time"
)

// TrackingID uniquely identifies a cargo
type TrackingID string

// HandlingEventType classifies the physical activity performed on a cargo
type HandlingEventType string

// Valid handling event types
const (
	HandlingEventReceive HandlingEventType = "RECEIVE"
	HandlingEventLoad    HandlingEventType = "LOAD"
	HandlingEventUnload  HandlingEventType = "UNLOAD"
	HandlingEventCustoms HandlingEventType = "CUSTOMS"
	HandlingEventClaim   HandlingEventType = "CLAIM"
)

// ParseHandlingEventType parses a handling event type from its string form
func ParseHandlingEventType(s string) (HandlingEventType, error) {
	switch HandlingEventType(s) {
	case HandlingEventReceive, HandlingEventLoad, HandlingEventUnload, HandlingEventCustoms, HandlingEventClaim:
		return HandlingEventType(s), nil
	}
	return "", fmt.Errorf("%w: unknown event type %q", ErrInvalidEvent, s)
}

// RequiresVoyage reports whether events of this type must carry a voyage
func (t HandlingEventType) RequiresVoyage() bool {
	return t == HandlingEventLoad || t == HandlingEventUnload
}

// ProhibitsVoyage reports whether events of this type must not carry a voyage
func (t HandlingEventType) ProhibitsVoyage() bool {
	return !t.RequiresVoyage()
}

// ErrInvalidEvent is returned when an event's type and voyage do not pair up,
// or the type itself is unknown.
var ErrInvalidEvent = errors.New("invalid handling event")

// HandlingEvent is the immutable fact that an activity of a known type was
// performed on a cargo at a location at a completion time. LOAD and UNLOAD
// events are tied to a voyage; the other types are not.
type HandlingEvent struct {
	TrackingID       TrackingID        `bson:"trackingId"`
	Type             HandlingEventType `bson:"type"`
	Location         UNLocode          `bson:"location"`
	VoyageNumber     VoyageNumber      `bson:"voyageNumber,omitempty"`
	CompletionTime   time.Time         `bson:"completionTime"`
	RegistrationTime time.Time         `bson:"registrationTime"`
}

// NewHandlingEvent creates a handling event, enforcing the type/voyage
// pairing rule.
func NewHandlingEvent(trackingID TrackingID, eventType HandlingEventType, location UNLocode, voyageNumber VoyageNumber, completionTime, registrationTime time.Time) (HandlingEvent, error) {
	if eventType.RequiresVoyage() && voyageNumber == "" {
		return HandlingEvent{}, fmt.Errorf("%w: %s requires a voyage", ErrInvalidEvent, eventType)
	}
	if eventType.ProhibitsVoyage() && voyageNumber != "" {
		return HandlingEvent{}, fmt.Errorf("%w: %s must not carry a voyage", ErrInvalidEvent, eventType)
	}
	return HandlingEvent{
		TrackingID:       trackingID,
		Type:             eventType,
		Location:         location,
		VoyageNumber:     voyageNumber,
		CompletionTime:   completionTime,
		RegistrationTime: registrationTime,
	}, nil
}

// EventKey identifies the unique physical fact behind a handling event. Two
// reports describing the same fact collapse to the same key.
type EventKey struct {
	TrackingID     TrackingID
	Type           HandlingEventType
	Location       UNLocode
	VoyageNumber   VoyageNumber
	CompletionTime int64
}

// Key returns the idempotency key for this event
func (e HandlingEvent) Key() EventKey {
	return EventKey{
		TrackingID:     e.TrackingID,
		Type:           e.Type,
		Location:       e.Location,
		VoyageNumber:   e.VoyageNumber,
		CompletionTime: e.CompletionTime.UnixNano(),
	}
}

// Activity is the shape of a handling event without the cargo and times
// attached, used to describe an expected next handling step.
type Activity struct {
	Type         HandlingEventType `bson:"type" json:"type"`
	Location     UNLocode          `bson:"location" json:"location"`
	VoyageNumber VoyageNumber      `bson:"voyageNumber,omitempty" json:"voyageNumber,omitempty"`
}

// MatchesActivity reports whether this event realizes the given activity
func (e HandlingEvent) MatchesActivity(a Activity) bool {
	return e.Type == a.Type && e.Location == a.Location && e.VoyageNumber == a.VoyageNumber
}
