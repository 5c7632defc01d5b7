// Package output turns a parsed TARA into threat scenarios, markdown
// documents and machine readable exports.
package output

import (
	"fmt"
	"log/slog"

	"github.com/smith-xyz/golang-tara/pkg/attacktree"
	"github.com/smith-xyz/golang-tara/pkg/models"
	"github.com/smith-xyz/golang-tara/pkg/tara"
)

// Analysis is the rated content of a project.
type Analysis struct {
	ThreatScenarios []models.ThreatScenario    `json:"threat_scenarios" yaml:"threat_scenarios"`
	AttackTrees     []*attacktree.ResolvedTree `json:"attack_trees" yaml:"attack_trees"`
}

// Analyzer rates the threat scenarios and resolves the attack trees of a
// project. Problems are logged and rated conservatively so one bad tree
// does not prevent the rest of the report.
type Analyzer struct {
	logger  *slog.Logger
	options []attacktree.Option
}

func NewAnalyzer(logger *slog.Logger, opts ...attacktree.Option) *Analyzer {
	return &Analyzer{logger: logger, options: opts}
}

// Analyze rates every (asset, property, damage scenario) combination
// without controls and with controls, then resolves every attack tree.
func (a *Analyzer) Analyze(t *tara.TARA) *Analysis {
	eval := t.NewEvaluator(a.logger, a.options...)
	threats := t.Threats()

	initial := a.rate(eval, t, threats, false)
	eval.Invalidate()
	residual := a.rate(eval, t, threats, true)

	analysis := &Analysis{}
	for _, threat := range threats {
		treeID := threat.TreeID()
		for _, dsID := range threat.DamageScenarios {
			ts := models.ThreatScenario{
				ID:                  fmt.Sprintf("TS-%d", len(analysis.ThreatScenarios)+1),
				AssetID:             threat.Asset.ID,
				AssetName:           threat.Asset.Name,
				DamageScenarioID:    dsID,
				SecurityProperty:    threat.Property,
				AttackTreeID:        treeID,
				InitialFeasibility:  initial[treeID],
				ResidualFeasibility: residual[treeID],
			}
			if ds, ok := t.DamageScenario(dsID); ok {
				ts.DamageScenarioName = ds.Name
				ts.Impact = ds.Impact()
			} else {
				a.logger.Error("Damage scenario not found, assuming severe impact", "damage_scenario", dsID, "asset", threat.Asset.ID)
				ts.DamageScenarioName = "Unknown"
				ts.Impact = models.ImpactSevere
			}
			ts.InitialRisk = a.risk(ts.Impact, ts.InitialFeasibility)
			ts.ResidualRisk = a.risk(ts.Impact, ts.ResidualFeasibility)
			analysis.ThreatScenarios = append(analysis.ThreatScenarios, ts)
		}
	}

	for _, tree := range t.AttackTrees {
		if tree.Root == nil {
			continue
		}
		resolved, err := eval.Resolve(tree)
		if err != nil {
			a.logger.Error("Failed to resolve attack tree", "tree", tree.ID, "error", err)
			continue
		}
		analysis.AttackTrees = append(analysis.AttackTrees, resolved)
	}
	return analysis
}

// rate evaluates the attack tree of every threat once. Trees that are
// missing or cannot be evaluated get the easiest rating.
func (a *Analyzer) rate(eval *attacktree.Evaluator, t *tara.TARA, threats []tara.Threat, honorControls bool) map[string]models.Feasibility {
	ratings := make(map[string]models.Feasibility, len(threats))
	for _, threat := range threats {
		treeID := threat.TreeID()
		if _, done := ratings[treeID]; done {
			continue
		}
		tree, ok := t.AttackTree(treeID)
		if !ok {
			a.logger.Error("No attack tree found, assuming highest feasibility", "tree", treeID)
			ratings[treeID] = models.Feasibility{}
			continue
		}
		f, err := eval.EvaluateTree(tree, honorControls)
		if err != nil {
			a.logger.Error("Failed to evaluate attack tree, assuming highest feasibility", "tree", treeID,
				"controls", honorControls, "error", err)
			f = models.Feasibility{}
		}
		ratings[treeID] = f
	}
	return ratings
}

func (a *Analyzer) risk(impact models.Impact, f models.Feasibility) models.RiskLevel {
	risk, err := models.LookupRisk(impact, f.Level())
	if err != nil {
		a.logger.Error("Risk lookup failed", "impact", impact.String(), "feasibility", f.Level().String(), "error", err)
		return models.RiskCritical
	}
	return risk
}
