package domain

import (
	"errors"
	"net/mail"
)

type OrderType string

const (
	OrderTypeDineIn     OrderType = "dine-in"
	OrderTypeOrderAhead OrderType = "order-ahead"
)

type PaymentOption string

const (
	PayAtVenue PaymentOption = "pay-at-venue"
	PayOnline  PaymentOption = "pay-online"
)

// CustomerDetails is entirely user-supplied and not checked against any
// record system beyond shape validation.
type CustomerDetails struct {
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	OrderType     OrderType     `json:"order_type"`
	PreferredTime string        `json:"preferred_time"`
	Notes         string        `json:"notes"`
	PaymentOption PaymentOption `json:"payment_option"`
}

var (
	ErrNameRequired  = errors.New("name is required")
	ErrEmailInvalid  = errors.New("a valid email is required")
	ErrPhoneRequired = errors.New("phone is required")
	ErrTimeRequired  = errors.New("preferred time is required for order-ahead")
)

func (d CustomerDetails) Validate() error {
	if d.Name == "" {
		return ErrNameRequired
	}
	if _, err := mail.ParseAddress(d.Email); err != nil {
		return ErrEmailInvalid
	}
	if d.Phone == "" {
		return ErrPhoneRequired
	}
	if d.OrderType == OrderTypeOrderAhead && d.PreferredTime == "" {
		return ErrTimeRequired
	}
	return nil
}

// DefaultDetails is the form state a fresh checkout starts from.
func DefaultDetails() CustomerDetails {
	return CustomerDetails{
		OrderType:     OrderTypeDineIn,
		PaymentOption: PayAtVenue,
	}
}
