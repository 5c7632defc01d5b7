package output

import (
	"fmt"
	"strings"

	"github.com/smith-xyz/golang-tara/pkg/markdown"
	"github.com/smith-xyz/golang-tara/pkg/models"
	"github.com/smith-xyz/golang-tara/pkg/tara"
)

// ThreatScenarioHeader is the header of the threat scenario table.
var ThreatScenarioHeader = []string{
	"ID", "Asset", "Damage", "Threat", "Threat Scenario", "Impact",
	"Initial Risk", "Risk Handling", "Residual Risk", "Feasibility",
}

// ThreatScenarioGenerator builds the threat scenario document.
type ThreatScenarioGenerator struct {
	analyzer *Analyzer
}

func NewThreatScenarioGenerator(analyzer *Analyzer) *ThreatScenarioGenerator {
	return &ThreatScenarioGenerator{analyzer: analyzer}
}

// Generate rates all threat scenarios of t and returns the document
// together with the scenarios.
func (g *ThreatScenarioGenerator) Generate(t *tara.TARA) (*markdown.Document, []models.ThreatScenario) {
	scenarios := g.analyzer.Analyze(t).ThreatScenarios
	return ThreatScenarioDocument(scenarios), scenarios
}

// ThreatScenarioDocument renders already rated scenarios.
func ThreatScenarioDocument(scenarios []models.ThreatScenario) *markdown.Document {
	return markdown.NewDocumentBuilder().
		WithSection("Threat Scenarios", 1).
		WithTable(threatScenarioTable(scenarios)).
		Build()
}

func threatScenarioTable(scenarios []models.ThreatScenario) *markdown.Table {
	b := markdown.NewTableBuilder().WithHeader(ThreatScenarioHeader...)
	for i := range scenarios {
		ts := &scenarios[i]
		level := ts.ResidualFeasibility.Level()
		b.WithRow(
			ts.ID,
			ts.AssetID,
			ts.DamageScenarioID,
			ts.SecurityProperty.AttackCode(),
			ts.Description(),
			ts.Impact.String(),
			ts.InitialRisk.String(),
			"",
			ts.ResidualRisk.String(),
			fmt.Sprintf("[%s](#%s)", level, strings.ToLower(ts.AttackTreeID)),
		)
	}
	return b.Build()
}
