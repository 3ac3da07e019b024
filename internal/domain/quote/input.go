package quote

import (
	"regexp"
	"strings"
)

// User-facing validation messages.
const (
	MsgPickupRequired   = "Please enter a pickup location."
	MsgDeliveryRequired = "Please enter a delivery location."
	MsgEmailRequired    = "Please enter your email to receive your estimate."
	MsgEmailInvalid     = "Please enter a valid email address."
)

// emailPattern only requires a non-blank local part and domain around a single @.
// The TLD is optional so "a@b" passes.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+$`)

// IsValidEmail applies the lenient local@domain check.
func IsValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// Input is the raw form submission for one estimate.
type Input struct {
	Pickup   string `json:"pickup"`
	Delivery string `json:"delivery"`
	Email    string `json:"email"`
}

// Normalized returns a copy with surrounding whitespace removed.
func (in Input) Normalized() Input {
	return Input{
		Pickup:   strings.TrimSpace(in.Pickup),
		Delivery: strings.TrimSpace(in.Delivery),
		Email:    strings.TrimSpace(in.Email),
	}
}

// Validate checks the rules in order and returns the first failure.
func (in Input) Validate() error {
	switch {
	case in.Pickup == "":
		return NewValidationError(FieldPickup, MsgPickupRequired)
	case in.Delivery == "":
		return NewValidationError(FieldDelivery, MsgDeliveryRequired)
	case in.Email == "":
		return NewValidationError(FieldEmail, MsgEmailRequired)
	case !IsValidEmail(in.Email):
		return NewValidationError(FieldEmail, MsgEmailInvalid)
	}
	return nil
}
