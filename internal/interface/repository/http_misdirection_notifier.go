package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/internal/domain/repository"
	"cargotracker-service/pkg/logger"
	"cargotracker-service/templates"
)

// HTTPMisdirectionNotifier posts misdirection alerts to the external
// notification service. Best effort only: the registration path never waits
// on the outcome.
type HTTPMisdirectionNotifier struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewHTTPMisdirectionNotifier creates a new misdirection notifier
func NewHTTPMisdirectionNotifier(logger logger.Logger) repository.MisdirectionNotifier {
	baseURL := os.Getenv("NOTIFY_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9090"
	}

	return &HTTPMisdirectionNotifier{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: os.Getenv("NOTIFY_TOKEN"),
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type misdirectionAlert struct {
	TrackingID        string    `json:"trackingId"`
	EventType         string    `json:"eventType"`
	EventLocation     string    `json:"eventLocation"`
	VoyageNumber      string    `json:"voyageNumber,omitempty"`
	CompletionTime    time.Time `json:"completionTime"`
	LastKnownLocation string    `json:"lastKnownLocation"`
	Message           string    `json:"message"`
}

// NotifyMisdirection posts one alert for the given cargo and event
func (n *HTTPMisdirectionNotifier) NotifyMisdirection(ctx context.Context, cargo *entity.Cargo, event entity.HandlingEvent) error {
	alert := misdirectionAlert{
		TrackingID:        string(cargo.TrackingID),
		EventType:         string(event.Type),
		EventLocation:     string(event.Location),
		VoyageNumber:      string(event.VoyageNumber),
		CompletionTime:    event.CompletionTime,
		LastKnownLocation: string(cargo.Delivery.LastKnownLocation),
		Message:           templates.MisdirectionAlertText(cargo, event),
	}

	jsonData, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/misdirection-alerts", n.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if n.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+n.bearerToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("notification service returned status %d: %v", resp.StatusCode, errorBody)
	}

	n.logger.Info("Misdirection alert sent",
		"trackingId", cargo.TrackingID,
		"eventType", event.Type,
		"eventLocation", event.Location)
	return nil
}
