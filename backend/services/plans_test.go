package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanAllows(t *testing.T) {
	tests := []struct {
		required string
		have     string
		want     bool
	}{
		{PlanFree, PlanFree, true},
		{PlanFree, PlanIndividual, true},
		{PlanFree, PlanBusiness, true},
		{PlanIndividual, PlanFree, false},
		{PlanIndividual, PlanIndividual, true},
		{PlanIndividual, PlanBusiness, true},
		{PlanBusiness, PlanFree, false},
		{PlanBusiness, PlanIndividual, false},
		{PlanBusiness, PlanBusiness, true},
	}

	for _, tt := range tests {
		got := PlanAllows(tt.required, tt.have)
		assert.Equal(t, tt.want, got, "required=%s have=%s", tt.required, tt.have)
	}
}

func TestPlanAllowsUnknownRequiredFailsClosed(t *testing.T) {
	assert.False(t, PlanAllows("premium", PlanBusiness))
}

func TestPlanCatalog(t *testing.T) {
	catalog := PlanCatalog()
	assert.Len(t, catalog, 3)
	assert.Equal(t, PlanFree, catalog[0].ID)
	assert.Equal(t, 0.0, catalog[0].Price)
	assert.True(t, catalog[1].IsPopular)

	for _, p := range catalog {
		assert.True(t, ValidPlan(p.ID))
		assert.NotEmpty(t, p.Features)
	}
	assert.False(t, ValidPlan("premium"))
}
