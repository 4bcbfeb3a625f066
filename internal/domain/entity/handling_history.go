package entity

import (
	"sort"
)

// HandlingHistory is the append-only log of handling events for one cargo.
// Events arrive in any order; the chronological view sorts by completion
// time, breaking ties by registration time, so a late-arriving report about
// an earlier activity slots into its proper place.
type HandlingHistory struct {
	Events []HandlingEvent `bson:"events"`
}

// Contains reports whether an event with the given idempotency key was
// already appended.
func (h HandlingHistory) Contains(key EventKey) bool {
	for _, e := range h.Events {
		if e.Key() == key {
			return true
		}
	}
	return false
}

// Append returns a history extended with the given event. The receiver is
// left untouched.
func (h HandlingHistory) Append(event HandlingEvent) HandlingHistory {
	events := make([]HandlingEvent, 0, len(h.Events)+1)
	events = append(events, h.Events...)
	events = append(events, event)
	return HandlingHistory{Events: events}
}

// IsEmpty reports whether any event was recorded
func (h HandlingHistory) IsEmpty() bool {
	return len(h.Events) == 0
}

// EventsByCompletionTime returns the events in chronological order of
// completion, registration time as tiebreak.
func (h HandlingHistory) EventsByCompletionTime() []HandlingEvent {
	events := make([]HandlingEvent, len(h.Events))
	copy(events, h.Events)
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].CompletionTime.Equal(events[j].CompletionTime) {
			return events[i].CompletionTime.Before(events[j].CompletionTime)
		}
		return events[i].RegistrationTime.Before(events[j].RegistrationTime)
	})
	return events
}

// MostRecentlyCompletedEvent returns the event with the latest completion
// time, ties broken by the latest registration time. The second return is
// false for an empty history.
func (h HandlingHistory) MostRecentlyCompletedEvent() (HandlingEvent, bool) {
	if h.IsEmpty() {
		return HandlingEvent{}, false
	}
	ordered := h.EventsByCompletionTime()
	return ordered[len(ordered)-1], true
}
