package models

import (
	"fmt"
	"strings"
)

// ThreatScenario pairs a damage scenario with the attack on an asset's
// security property, rated before and after controls.
type ThreatScenario struct {
	ID                  string           `json:"id" yaml:"id"`
	AssetID             string           `json:"asset_id" yaml:"asset_id"`
	AssetName           string           `json:"asset_name" yaml:"asset_name"`
	DamageScenarioID    string           `json:"damage_scenario_id" yaml:"damage_scenario_id"`
	DamageScenarioName  string           `json:"damage_scenario_name" yaml:"damage_scenario_name"`
	SecurityProperty    SecurityProperty `json:"security_property" yaml:"security_property"`
	AttackTreeID        string           `json:"attack_tree_id" yaml:"attack_tree_id"`
	Impact              Impact           `json:"impact" yaml:"impact"`
	InitialFeasibility  Feasibility      `json:"initial_feasibility" yaml:"initial_feasibility"`
	ResidualFeasibility Feasibility      `json:"residual_feasibility" yaml:"residual_feasibility"`
	InitialRisk         RiskLevel        `json:"initial_risk" yaml:"initial_risk"`
	ResidualRisk        RiskLevel        `json:"residual_risk" yaml:"residual_risk"`
}

// Description reads like "Litigation caused by manipulation of Asset 1".
func (t *ThreatScenario) Description() string {
	return fmt.Sprintf("%s caused by %s of %s", t.DamageScenarioName, strings.ToLower(t.SecurityProperty.AttackDescription()), t.AssetName)
}

