package entity

// HandlingReport is one raw, unvalidated report of a handling activity as
// submitted by an external party. Field-level parsing turns it into a typed
// registration command; business validation happens later, in the
// registration service.
type HandlingReport struct {
	TrackingID     string `json:"trackingId" validate:"required"`
	EventType      string `json:"eventType" validate:"required"`
	Location       string `json:"location" validate:"required"`
	VoyageNumber   string `json:"voyageNumber,omitempty"`
	CompletionTime string `json:"completionTime" validate:"required"`
}
