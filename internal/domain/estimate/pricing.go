package estimate

import "fmt"

// Default rates used when no pricing configuration is supplied.
const (
	DefaultPerHour              = 300.0
	DefaultPerKm                = 7.40
	DefaultReturnTripMultiplier = 2.0
	DefaultReturnTripHoursExtra = 2.0
)

// PricingConfig holds the rates used to price a hotshot run.
// It is loaded once at start-up and never mutated afterwards.
type PricingConfig struct {
	PerHour              float64 `mapstructure:"per_hour" json:"per_hour"`
	PerKm                float64 `mapstructure:"per_km" json:"per_km"`
	ReturnTripMultiplier float64 `mapstructure:"return_trip_multiplier" json:"return_trip_multiplier"`
	ReturnTripHoursExtra float64 `mapstructure:"return_trip_hours_extra" json:"return_trip_hours_extra"`
}

// DefaultPricingConfig returns the standard rate card.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		PerHour:              DefaultPerHour,
		PerKm:                DefaultPerKm,
		ReturnTripMultiplier: DefaultReturnTripMultiplier,
		ReturnTripHoursExtra: DefaultReturnTripHoursExtra,
	}
}

// Validate rejects rate cards that could produce a negative fare.
func (c PricingConfig) Validate() error {
	switch {
	case c.PerHour < 0:
		return fmt.Errorf("pricing per_hour cannot be negative: %v", c.PerHour)
	case c.PerKm < 0:
		return fmt.Errorf("pricing per_km cannot be negative: %v", c.PerKm)
	case c.ReturnTripMultiplier < 0:
		return fmt.Errorf("pricing return_trip_multiplier cannot be negative: %v", c.ReturnTripMultiplier)
	case c.ReturnTripHoursExtra < 0:
		return fmt.Errorf("pricing return_trip_hours_extra cannot be negative: %v", c.ReturnTripHoursExtra)
	}
	return nil
}

// FareModel names the fare model that produced the quoted amount.
type FareModel string

const (
	FareModelDistance FareModel = "distance"
	FareModelTime     FareModel = "time"
)

// Breakdown exposes the intermediate values of a fare calculation.
type Breakdown struct {
	BillableKm    float64   `json:"billable_km"`
	BillableHours float64   `json:"billable_hours"`
	DistanceFare  float64   `json:"distance_fare"`
	TimeFare      float64   `json:"time_fare"`
	Amount        float64   `json:"amount"`
	Model         FareModel `json:"model"`
}

// PricingStrategy defines the interface for pricing a one-way route.
type PricingStrategy interface {
	// Calculate prices the round trip implied by a one-way distance and duration.
	Calculate(oneWayDistanceKm float64, oneWayDurationSeconds int) Breakdown
}

// StandardPricingStrategy quotes the cheaper of the distance and time fares.
type StandardPricingStrategy struct {
	config PricingConfig
}

// NewStandardPricingStrategy creates a new StandardPricingStrategy.
func NewStandardPricingStrategy(config PricingConfig) *StandardPricingStrategy {
	return &StandardPricingStrategy{config: config}
}

// Config returns the rate card the strategy prices with.
func (s *StandardPricingStrategy) Config() PricingConfig {
	return s.config
}

// Calculate computes the minimum estimate for a one-way route.
//
// Pricing formula:
//   - Billable km: one-way km x return trip multiplier
//   - Billable hours: one-way hours x return trip multiplier + extra handling hours
//   - Distance fare: billable km x per-km rate
//   - Time fare: billable hours x hourly rate
//   - Quoted amount: the lower of the two fares
func (s *StandardPricingStrategy) Calculate(oneWayDistanceKm float64, oneWayDurationSeconds int) Breakdown {
	cfg := s.config

	billableKm := oneWayDistanceKm * cfg.ReturnTripMultiplier
	billableHours := (float64(oneWayDurationSeconds)/3600)*cfg.ReturnTripMultiplier + cfg.ReturnTripHoursExtra

	b := Breakdown{
		BillableKm:    billableKm,
		BillableHours: billableHours,
		DistanceFare:  billableKm * cfg.PerKm,
		TimeFare:      billableHours * cfg.PerHour,
	}

	// Ties go to the distance fare; the amount is identical either way.
	if b.DistanceFare <= b.TimeFare {
		b.Amount = b.DistanceFare
		b.Model = FareModelDistance
	} else {
		b.Amount = b.TimeFare
		b.Model = FareModelTime
	}
	return b
}

// ComputeEstimate returns the minimum estimate for a one-way route.
// Callers must pass non-negative, finite metrics.
func ComputeEstimate(oneWayDistanceKm float64, oneWayDurationSeconds int, config PricingConfig) float64 {
	return NewStandardPricingStrategy(config).Calculate(oneWayDistanceKm, oneWayDurationSeconds).Amount
}
