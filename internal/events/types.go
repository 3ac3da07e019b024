package events

import "time"

// TopicEstimateEvents carries estimate lifecycle events.
const TopicEstimateEvents = "estimate.events"

// Event types published on TopicEstimateEvents.
const (
	EstimateNotified           = "estimate.notified"
	EstimateNotificationFailed = "estimate.notification_failed"
)

// EstimateNotifiedEvent records the outcome of one notification attempt.
// It carries no customer contact details.
type EstimateNotifiedEvent struct {
	Pickup     string    `json:"pickup"`
	Delivery   string    `json:"delivery"`
	DistanceKm string    `json:"distance_km,omitempty"`
	Duration   string    `json:"duration,omitempty"`
	Estimate   string    `json:"estimate"`
	Delivered  bool      `json:"delivered"`
	OccurredAt time.Time `json:"occurred_at"`
}
