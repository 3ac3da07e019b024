package quote

import (
	"encoding/json"
	"time"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/estimate"
	"github.com/google/uuid"
)

// Quote is the transient result of one estimate request. It is never persisted.
type Quote struct {
	ID                    uuid.UUID          `json:"id"`
	CustomerEmail         string             `json:"customer_email"`
	OriginLabel           string             `json:"origin_label"`
	DestinationLabel      string             `json:"destination_label"`
	OneWayDistanceKm      float64            `json:"one_way_distance_km"`
	OneWayDurationSeconds int                `json:"one_way_duration_seconds"`
	FormattedDistance     string             `json:"formatted_distance"`
	FormattedDuration     string             `json:"formatted_duration"`
	EstimateAmount        float64            `json:"estimate_amount"`
	FormattedEstimate     string             `json:"formatted_estimate"`
	Breakdown             estimate.Breakdown `json:"breakdown"`
	CreatedAt             time.Time          `json:"created_at"`
}

// NewQuote derives a Quote from a route and its priced breakdown.
// Empty route labels fall back to the addresses the customer typed.
func NewQuote(in Input, route RouteResult, breakdown estimate.Breakdown, currency *estimate.CurrencyFormatter) *Quote {
	origin := route.OriginLabel
	if origin == "" {
		origin = in.Pickup
	}
	destination := route.DestinationLabel
	if destination == "" {
		destination = in.Delivery
	}

	return &Quote{
		ID:                    uuid.New(),
		CustomerEmail:         in.Email,
		OriginLabel:           origin,
		DestinationLabel:      destination,
		OneWayDistanceKm:      route.OneWayDistanceKm,
		OneWayDurationSeconds: route.OneWayDurationSeconds,
		FormattedDistance:     estimate.FormatDistance(route.OneWayDistanceKm),
		FormattedDuration:     estimate.FormatDuration(route.OneWayDurationSeconds),
		EstimateAmount:        breakdown.Amount,
		FormattedEstimate:     currency.Format(breakdown.Amount),
		Breakdown:             breakdown,
		CreatedAt:             time.Now().UTC(),
	}
}

// Notice converts the quote into the payload sent to the notification service.
func (q *Quote) Notice() Notice {
	return Notice{
		Email:      q.CustomerEmail,
		Pickup:     q.OriginLabel,
		Delivery:   q.DestinationLabel,
		DistanceKm: json.Number(estimate.FormatKm(q.OneWayDistanceKm)),
		Duration:   q.FormattedDuration,
		Estimate:   q.FormattedEstimate,
	}
}
