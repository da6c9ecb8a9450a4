package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanLookups(t *testing.T) {
	plan, ok := PlanByID("premium_monthly")
	require.True(t, ok)
	assert.Equal(t, "price_premium_monthly", plan.PriceRef)

	plan, ok = PlanByPriceRef("price_premium_yearly")
	require.True(t, ok)
	assert.Equal(t, "premium_yearly", plan.ID)

	_, ok = PlanByPriceRef("price_bogus")
	assert.False(t, ok)

	// The free tier has no price ref and must not be reachable by one.
	_, ok = PlanByPriceRef("")
	assert.False(t, ok)
}

func TestPlanCatalogPriceRefsUnique(t *testing.T) {
	seen := make(map[string]string)
	for _, p := range Plans {
		if p.PriceRef == "" {
			continue
		}
		if prev, dup := seen[p.PriceRef]; dup {
			t.Fatalf("price ref %q shared by %q and %q", p.PriceRef, prev, p.ID)
		}
		seen[p.PriceRef] = p.ID
	}
}

func TestFreePlan(t *testing.T) {
	plan := FreePlan()
	assert.Equal(t, "Basic", plan.Name)
	assert.Equal(t, "Free", plan.Price)
}

func TestUnknownPlan(t *testing.T) {
	plan := UnknownPlan("price_gone")
	assert.Equal(t, "unknown", plan.ID)
	assert.Equal(t, "price_gone", plan.PriceRef)
	assert.Equal(t, "Unknown plan", plan.Name)
}
