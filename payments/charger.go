package payments

import (
	"context"
	"errors"
)

// ErrChargeDeclined is returned when the gateway refuses the charge (card
// declined, bad token). Anything else the gateway reports is an operational
// error.
var ErrChargeDeclined = errors.New("charge declined")

// Charge is the gateway's record of a completed payment.
type Charge struct {
	ID          string `json:"id"`
	AmountCents int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
}

// Charger creates charges against an external payment gateway. The gateway's
// internals are out of scope; this is the whole delegation surface.
type Charger interface {
	CreateCharge(ctx context.Context, amountCents int64, currency, cardToken string) (*Charge, error)
}
