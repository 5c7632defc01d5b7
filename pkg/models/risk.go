package models

import (
	"fmt"
	"strings"
)

// ImpactCategory is one of the damage dimensions rated per damage scenario.
type ImpactCategory int

const (
	Safety ImpactCategory = iota
	Operational
	Financial
	Privacy
)

// ImpactCategories lists the categories in table column order.
var ImpactCategories = []ImpactCategory{Safety, Operational, Financial, Privacy}

func (c ImpactCategory) String() string {
	switch c {
	case Safety:
		return "Safety"
	case Operational:
		return "Operational"
	case Financial:
		return "Financial"
	case Privacy:
		return "Privacy"
	default:
		return "Unknown"
	}
}

// Impact is the severity of a damage scenario in one category.
type Impact int

const (
	ImpactNegligible Impact = iota
	ImpactModerate
	ImpactMajor
	ImpactSevere
)

func (i Impact) String() string {
	switch i {
	case ImpactNegligible:
		return "Negligible"
	case ImpactModerate:
		return "Moderate"
	case ImpactMajor:
		return "Major"
	case ImpactSevere:
		return "Severe"
	default:
		return "Unknown"
	}
}

// ParseImpact converts an impact cell. An empty cell is Negligible.
// Unknown values return an error together with ImpactSevere so callers
// that continue overestimate rather than underestimate the risk.
func ParseImpact(s string) (Impact, error) {
	switch strings.TrimSpace(s) {
	case "", "Negligible":
		return ImpactNegligible, nil
	case "Moderate":
		return ImpactModerate, nil
	case "Major":
		return ImpactMajor, nil
	case "Severe":
		return ImpactSevere, nil
	default:
		return ImpactSevere, fmt.Errorf("invalid impact rating: %q", s)
	}
}

// RiskLevel is the risk of a threat scenario.
type RiskLevel int

const (
	RiskVeryLow RiskLevel = iota + 1
	RiskLow
	RiskMedium
	RiskHigh
	RiskCritical
)

func (r RiskLevel) String() string {
	switch r {
	case RiskVeryLow:
		return "VeryLow"
	case RiskLow:
		return "Low"
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	case RiskCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

var riskMatrix = map[Impact]map[FeasibilityLevel]RiskLevel{
	ImpactSevere: {
		FeasibilityHigh:    RiskCritical,
		FeasibilityMedium:  RiskHigh,
		FeasibilityLow:     RiskMedium,
		FeasibilityVeryLow: RiskLow,
	},
	ImpactMajor: {
		FeasibilityHigh:    RiskHigh,
		FeasibilityMedium:  RiskMedium,
		FeasibilityLow:     RiskLow,
		FeasibilityVeryLow: RiskVeryLow,
	},
	ImpactModerate: {
		FeasibilityHigh:    RiskMedium,
		FeasibilityMedium:  RiskLow,
		FeasibilityLow:     RiskLow,
		FeasibilityVeryLow: RiskVeryLow,
	},
	ImpactNegligible: {
		FeasibilityHigh:    RiskVeryLow,
		FeasibilityMedium:  RiskVeryLow,
		FeasibilityLow:     RiskVeryLow,
		FeasibilityVeryLow: RiskVeryLow,
	},
}

// LookupRisk combines impact and feasibility level into a risk level.
func LookupRisk(impact Impact, level FeasibilityLevel) (RiskLevel, error) {
	byLevel, ok := riskMatrix[impact]
	if !ok {
		return 0, fmt.Errorf("invalid impact: %d", impact)
	}
	risk, ok := byLevel[level]
	if !ok {
		return 0, fmt.Errorf("invalid feasibility level: %d", level)
	}
	return risk, nil
}
