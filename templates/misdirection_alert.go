package templates

import (
	"fmt"
	"strings"

	"cargotracker-service/internal/domain/entity"
)

// MisdirectionAlertText builds the human-readable alert sent when a cargo's
// handling diverges from its itinerary.
func MisdirectionAlertText(cargo *entity.Cargo, event entity.HandlingEvent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Cargo %s has been misdirected.\n", cargo.TrackingID)
	if event.VoyageNumber != "" {
		fmt.Fprintf(&b, "Last handling: %s at %s on voyage %s (%s).\n",
			event.Type, event.Location, event.VoyageNumber,
			event.CompletionTime.Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintf(&b, "Last handling: %s at %s (%s).\n",
			event.Type, event.Location,
			event.CompletionTime.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&b, "Planned route: %s to %s, arrival deadline %s.",
		cargo.RouteSpecification.Origin,
		cargo.RouteSpecification.Destination,
		cargo.RouteSpecification.ArrivalDeadline.Format("2006-01-02"))

	return b.String()
}
