package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupRisk(t *testing.T) {
	tests := []struct {
		impact Impact
		level  FeasibilityLevel
		want   RiskLevel
	}{
		{ImpactSevere, FeasibilityHigh, RiskCritical},
		{ImpactSevere, FeasibilityVeryLow, RiskLow},
		{ImpactMajor, FeasibilityMedium, RiskMedium},
		{ImpactModerate, FeasibilityLow, RiskLow},
		{ImpactModerate, FeasibilityVeryLow, RiskVeryLow},
		{ImpactNegligible, FeasibilityHigh, RiskVeryLow},
	}

	for _, tt := range tests {
		t.Run(tt.impact.String()+"/"+tt.level.String(), func(t *testing.T) {
			got, err := LookupRisk(tt.impact, tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := LookupRisk(Impact(42), FeasibilityHigh)
	assert.Error(t, err)
}

func TestParseImpact(t *testing.T) {
	got, err := ParseImpact("")
	require.NoError(t, err)
	assert.Equal(t, ImpactNegligible, got)

	got, err = ParseImpact(" Major ")
	require.NoError(t, err)
	assert.Equal(t, ImpactMajor, got)

	got, err = ParseImpact("Catastrophic")
	assert.Error(t, err)
	assert.Equal(t, ImpactSevere, got)
}

func TestDamageScenarioImpactIsMaximum(t *testing.T) {
	ds := NewDamageScenario("DS-1", "Crash")
	ds.Impacts[Operational] = ImpactModerate
	ds.Impacts[Privacy] = ImpactMajor

	assert.Equal(t, ImpactMajor, ds.Impact())
}

func TestAssetSecurityPropertiesInTableOrder(t *testing.T) {
	asset := NewAsset("A-1", "Firmware")
	asset.DamageScenarios[Confidentiality] = []string{"DS-2"}
	asset.DamageScenarios[Availability] = []string{"DS-1"}

	assert.Equal(t, []SecurityProperty{Availability, Confidentiality}, asset.SecurityProperties())
}

func TestThreatScenarioDescription(t *testing.T) {
	ts := ThreatScenario{
		DamageScenarioName: "Vehicle crash",
		AssetName:          "Brake firmware",
		SecurityProperty:   Integrity,
	}

	assert.Equal(t, "Vehicle crash caused by manipulation of Brake firmware", ts.Description())
}
