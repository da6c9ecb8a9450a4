package models

import "time"

// Subscription mirrors the payment processor's subscription record for a
// user. At most one record per user is considered authoritative. This
// core never writes subscriptions; the processor's backend mutates them
// and the view is refreshed by full refetch, never by merge.
type Subscription struct {
	ID                 string    `bson:"id" json:"id"`
	UserID             string    `bson:"user_id" json:"user_id"`
	CustomerID         string    `bson:"customer_id" json:"customer_id"`
	SubscriptionID     string    `bson:"subscription_id" json:"subscription_id"`
	PriceRef           string    `bson:"price_id" json:"price_id"`
	Status             string    `bson:"status" json:"status"` // processor status, e.g. "active", "trialing"
	CurrentPeriodStart int64     `bson:"current_period_start" json:"current_period_start"`
	CurrentPeriodEnd   int64     `bson:"current_period_end" json:"current_period_end"`
	CancelAtPeriodEnd  bool      `bson:"cancel_at_period_end" json:"cancel_at_period_end"`
	PaymentMethodBrand string    `bson:"payment_method_brand" json:"payment_method_brand,omitempty"`
	PaymentMethodLast4 string    `bson:"payment_method_last4" json:"payment_method_last4,omitempty"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updated_at"`
}

// Order is the historical record of a completed checkout. Immutable and
// read-only from this core's perspective.
type Order struct {
	ID                string    `bson:"id" json:"id"`
	UserID            string    `bson:"user_id" json:"user_id"`
	CheckoutSessionID string    `bson:"checkout_session_id" json:"checkout_session_id"`
	PaymentIntentID   string    `bson:"payment_intent_id" json:"payment_intent_id"`
	AmountSubtotal    int64     `bson:"amount_subtotal" json:"amount_subtotal"`
	AmountTotal       int64     `bson:"amount_total" json:"amount_total"`
	Currency          string    `bson:"currency" json:"currency"`
	PaymentStatus     string    `bson:"payment_status" json:"payment_status"`
	Status            string    `bson:"status" json:"status"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}
