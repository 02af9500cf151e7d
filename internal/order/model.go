package order

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodCOD     PaymentMethod = "COD"
	MethodPhonePG PaymentMethod = "PhonePG"
)

// DefaultStatus is the lifecycle label a fresh order carries. Status is
// free-form and only administrators move it; it is independent of whether
// the payment has been confirmed.
const DefaultStatus = "Order Placed"

// Order is the persisted order record. Items and Address are opaque JSON
// blobs owned by the storefront frontend; this subsystem never looks inside
// them.
type Order struct {
	ID            uint            `json:"id"`
	UserID        uint            `json:"userId"`
	Items         json.RawMessage `json:"items"`
	Address       json.RawMessage `json:"address"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Payment       bool            `json:"payment"`
	TransactionID *string         `json:"transactionId,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"date"`
}

// PlaceOrderInput carries the buyer-supplied order fields.
type PlaceOrderInput struct {
	Items   json.RawMessage
	Amount  decimal.Decimal
	Address json.RawMessage
}

// GatewayOrderInput adds the optional mobile number the pay-page flow wants.
type GatewayOrderInput struct {
	PlaceOrderInput
	MobileNumber string
}

// VerifyResult is the outcome of a verification poll. Confirmed=false covers
// both failed and still-pending payments; the gateway does not let this layer
// tell them apart, so callers poll again. Gateway carries the raw gateway
// payload for the frontend.
type VerifyResult struct {
	Confirmed bool
	Gateway   json.RawMessage
}
