package fakecharger

import (
	"context"
	"fmt"
	"sync"

	"github.com/taskcart/taskcart/payments"
)

var _ payments.Charger = (*FakeCharger)(nil)

// FakeCharger records charge requests and succeeds unless FailWith is set.
type FakeCharger struct {
	FailWith error

	charges []payments.Charge
	lock    sync.Mutex
}

func NewFakeCharger() *FakeCharger {
	return &FakeCharger{}
}

func (fc *FakeCharger) CreateCharge(_ context.Context, amountCents int64, currency, cardToken string) (*payments.Charge, error) {
	fc.lock.Lock()
	defer fc.lock.Unlock()

	if fc.FailWith != nil {
		return nil, fc.FailWith
	}
	if cardToken == "" {
		return nil, payments.ErrChargeDeclined
	}

	charge := payments.Charge{
		ID:          fmt.Sprintf("ch_%03d", len(fc.charges)+1),
		AmountCents: amountCents,
		Currency:    currency,
		Status:      "succeeded",
	}
	fc.charges = append(fc.charges, charge)
	return &charge, nil
}

// Charges returns a copy of every charge created so far.
func (fc *FakeCharger) Charges() []payments.Charge {
	fc.lock.Lock()
	defer fc.lock.Unlock()

	out := make([]payments.Charge, len(fc.charges))
	copy(out, fc.charges)
	return out
}
