package models

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
)

// Plan describes a purchasable tier. The catalog is fixed at compile
// time; PriceRef is the processor-side price identifier and must be
// unique per entry.
type Plan struct {
	ID          string `json:"id"`
	PriceRef    string `json:"price_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BillingMode string `json:"billing_mode"` // "payment" or "subscription"
	Price       string `json:"price"`
}

// Plans is the static tier catalog, in display order.
var Plans = []Plan{
	{
		ID:          "basic",
		PriceRef:    "",
		Name:        "Basic",
		Description: "Book appointments and browse businesses at no cost.",
		BillingMode: string(stripe.CheckoutSessionModeSubscription),
		Price:       "Free",
	},
	{
		ID:          "premium_monthly",
		PriceRef:    "price_premium_monthly",
		Name:        "Premium",
		Description: "Priority listing, booking analytics and reminder messaging for businesses.",
		BillingMode: string(stripe.CheckoutSessionModeSubscription),
		Price:       "$12.99/month",
	},
	{
		ID:          "premium_yearly",
		PriceRef:    "price_premium_yearly",
		Name:        "Premium (Yearly)",
		Description: "Everything in Premium, billed once a year.",
		BillingMode: string(stripe.CheckoutSessionModeSubscription),
		Price:       "$129.99/year",
	},
	{
		ID:          "class_pass",
		PriceRef:    "price_class_pass",
		Name:        "Class Pass",
		Description: "One-time pass for a beauty masterclass registration.",
		BillingMode: string(stripe.CheckoutSessionModePayment),
		Price:       "$49.00",
	},
}

var (
	plansByID       = make(map[string]Plan, len(Plans))
	plansByPriceRef = make(map[string]Plan, len(Plans))
)

func init() {
	for _, p := range Plans {
		if _, dup := plansByID[p.ID]; dup {
			panic(fmt.Sprintf("models: duplicate plan id %q", p.ID))
		}
		plansByID[p.ID] = p
		if p.PriceRef == "" {
			continue
		}
		if _, dup := plansByPriceRef[p.PriceRef]; dup {
			panic(fmt.Sprintf("models: duplicate plan price ref %q", p.PriceRef))
		}
		plansByPriceRef[p.PriceRef] = p
	}
}

// PlanByID looks a plan up by its internal identifier.
func PlanByID(id string) (Plan, bool) {
	p, ok := plansByID[id]
	return p, ok
}

// PlanByPriceRef looks a plan up by its processor price identifier.
func PlanByPriceRef(priceRef string) (Plan, bool) {
	p, ok := plansByPriceRef[priceRef]
	return p, ok
}

// FreePlan is the default tier for users without a subscription.
func FreePlan() Plan {
	return plansByID["basic"]
}

// UnknownPlan is returned when a subscription references a price the
// catalog does not know. Callers get a descriptor, never an error.
func UnknownPlan(priceRef string) Plan {
	return Plan{
		ID:       "unknown",
		PriceRef: priceRef,
		Name:     "Unknown plan",
		Price:    "N/A",
	}
}
