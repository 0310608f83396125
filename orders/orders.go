package orders

import "time"

// Order status values. A failed order keeps its record; the charge attempt
// is part of the audit trail.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusFailed  = "failed"
)

// Item is a priced order line. UnitPriceCents is captured at order time so
// later catalog edits do not rewrite history.
type Item struct {
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type Order struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"account_id"`
	Items      []Item    `json:"items"`
	TotalCents int64     `json:"total_cents"`
	Status     string    `json:"status"`
	ChargeID   string    `json:"charge_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
