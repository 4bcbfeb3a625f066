package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/internal/domain/repository"
	"cargotracker-service/internal/usecase"
	"cargotracker-service/pkg/logger"
)

// Handler exposes the cargo tracking operations over HTTP
type Handler struct {
	reports  usecase.HandlingReportHandler
	booking  *usecase.BookingService
	tracking *usecase.TrackingService
	logger   logger.Logger
}

// NewHandler creates a new REST handler
func NewHandler(
	reports usecase.HandlingReportHandler,
	booking *usecase.BookingService,
	tracking *usecase.TrackingService,
	logger logger.Logger,
) *Handler {
	return &Handler{
		reports:  reports,
		booking:  booking,
		tracking: tracking,
		logger:   logger,
	}
}

// Register mounts the handler's routes on the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /handling-reports", h.receiveHandlingReports)
	mux.HandleFunc("POST /cargos", h.bookCargo)
	mux.HandleFunc("POST /cargos/{trackingId}/route", h.assignToRoute)
	mux.HandleFunc("PUT /cargos/{trackingId}/destination", h.changeDestination)
	mux.HandleFunc("GET /cargos/{trackingId}/delivery", h.getDelivery)
}

type handlingReportBatch struct {
	Reports []entity.HandlingReport `json:"reports"`
}

// receiveHandlingReports accepts a batch of raw reports. The batch is always
// accepted; individual report failures surface through logs and metrics.
func (h *Handler) receiveHandlingReports(w http.ResponseWriter, r *http.Request) {
	var batch handlingReportBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.reports.ReceiveHandlingReports(r.Context(), batch.Reports)

	h.writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"accepted": len(batch.Reports),
	})
}

type bookCargoRequest struct {
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	ArrivalDeadline time.Time `json:"arrivalDeadline"`
}

func (h *Handler) bookCargo(w http.ResponseWriter, r *http.Request) {
	var req bookCargoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cargo, err := h.booking.BookNewCargo(r.Context(),
		entity.UNLocode(req.Origin),
		entity.UNLocode(req.Destination),
		req.ArrivalDeadline)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"trackingId": cargo.TrackingID,
		"delivery":   cargo.Delivery,
	})
}

type assignRouteRequest struct {
	Legs []struct {
		VoyageNumber   string    `json:"voyageNumber"`
		LoadLocation   string    `json:"loadLocation"`
		UnloadLocation string    `json:"unloadLocation"`
		LoadTime       time.Time `json:"loadTime"`
		UnloadTime     time.Time `json:"unloadTime"`
	} `json:"legs"`
}

func (h *Handler) assignToRoute(w http.ResponseWriter, r *http.Request) {
	trackingID := entity.TrackingID(r.PathValue("trackingId"))

	var req assignRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	legs := make([]entity.Leg, 0, len(req.Legs))
	for _, leg := range req.Legs {
		legs = append(legs, entity.Leg{
			VoyageNumber:   entity.VoyageNumber(leg.VoyageNumber),
			LoadLocation:   entity.UNLocode(leg.LoadLocation),
			UnloadLocation: entity.UNLocode(leg.UnloadLocation),
			LoadTime:       leg.LoadTime,
			UnloadTime:     leg.UnloadTime,
		})
	}

	cargo, err := h.booking.AssignToRoute(r.Context(), trackingID, entity.Itinerary{Legs: legs})
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"trackingId": cargo.TrackingID,
		"delivery":   cargo.Delivery,
	})
}

type changeDestinationRequest struct {
	Destination string `json:"destination"`
}

func (h *Handler) changeDestination(w http.ResponseWriter, r *http.Request) {
	trackingID := entity.TrackingID(r.PathValue("trackingId"))

	var req changeDestinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cargo, err := h.booking.ChangeDestination(r.Context(), trackingID, entity.UNLocode(req.Destination))
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"trackingId": cargo.TrackingID,
		"delivery":   cargo.Delivery,
	})
}

func (h *Handler) getDelivery(w http.ResponseWriter, r *http.Request) {
	trackingID := entity.TrackingID(r.PathValue("trackingId"))

	delivery, err := h.tracking.GetDelivery(r.Context(), trackingID)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, delivery)
}

func (h *Handler) writeUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrCargoNotFound):
		h.writeError(w, http.StatusNotFound, "cargo not found")
	case errors.Is(err, repository.ErrLocationNotFound):
		h.writeError(w, http.StatusBadRequest, "unknown location")
	case errors.Is(err, repository.ErrVoyageNotFound):
		h.writeError(w, http.StatusBadRequest, "unknown voyage")
	case errors.Is(err, entity.ErrInvalidEvent), errors.Is(err, entity.ErrSameOriginAndDestination):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Request failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
