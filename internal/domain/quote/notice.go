package quote

import "encoding/json"

// Notice is the payload the notification service accepts.
// DistanceKm accepts either a JSON number or a numeric string.
type Notice struct {
	Email      string      `json:"email" validate:"required"`
	Pickup     string      `json:"pickup" validate:"required"`
	Delivery   string      `json:"delivery" validate:"required"`
	DistanceKm json.Number `json:"distanceKm,omitempty"`
	Duration   string      `json:"duration,omitempty"`
	Estimate   string      `json:"estimate" validate:"required"`
}

// HasRequiredFields reports whether every mandatory field is non-empty.
func (n Notice) HasRequiredFields() bool {
	return n.Email != "" && n.Pickup != "" && n.Delivery != "" && n.Estimate != ""
}
