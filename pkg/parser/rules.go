package parser

import (
	"errors"
	"io"
	"log/slog"

	"github.com/smith-xyz/golang-tara/pkg/attacktree"
	"github.com/smith-xyz/golang-tara/pkg/models"
	"github.com/smith-xyz/golang-tara/pkg/tara"
)

// nodeRule checks a single node of the given tree.
type nodeRule func(t *tara.TARA, treeID string, n *attacktree.Node)

// CheckReferences checks that assets only reference existing damage scenarios.
func (p *TaraParser) CheckReferences(t *tara.TARA) {
	for _, asset := range t.Assets {
		for _, property := range asset.SecurityProperties() {
			for _, id := range asset.DamageScenarios[property] {
				obj, ok := t.Registry.Get(id)
				if !ok {
					p.logger.Error("Damage scenario referenced by asset does not exist", "damage_scenario", id, "asset", asset.ID)
					continue
				}
				if _, ok := obj.(*models.DamageScenario); !ok {
					p.logger.Error("ID referenced by asset is not a damage scenario", "id", id, "asset", asset.ID)
				}
			}
		}
	}
}

// CheckAttackTrees checks that every expected tree exists, that the trees
// are well formed and that evaluating them terminates.
func (p *TaraParser) CheckAttackTrees(t *tara.TARA) {
	for _, threat := range t.Threats() {
		if _, ok := t.AttackTree(threat.TreeID()); !ok {
			p.logger.Error("No attack tree found", "tree", threat.TreeID())
		}
	}
	for _, control := range t.Controls {
		id := attacktree.CircumventionTreeID(control.ID)
		if _, ok := t.AttackTree(id); !ok {
			p.logger.Error("No circumvent tree found", "tree", id, "control", control.ID)
		}
	}

	p.checkNodes(t, p.checkInnerNodesHaveChildren, p.checkReferencedTreesExist, p.checkControlsExist)
	p.checkTermination(t)
}

func (p *TaraParser) checkNodes(t *tara.TARA, rules ...nodeRule) {
	for _, tree := range t.AttackTrees {
		if tree.Root == nil {
			p.logger.Error("Attack tree has no root node", "tree", tree.ID)
			continue
		}
		attacktree.Walk(tree.Root, func(n *attacktree.Node, _ int) bool {
			for _, rule := range rules {
				rule(t, tree.ID, n)
			}
			return true
		})
	}
}

func (p *TaraParser) checkInnerNodesHaveChildren(_ *tara.TARA, treeID string, n *attacktree.Node) {
	if (n.Kind == attacktree.KindAnd || n.Kind == attacktree.KindOr) && len(n.Children) == 0 {
		p.logger.Error("Node has no children", "node", n.Name, "kind", n.Kind.String(), "tree", treeID)
	}
}

func (p *TaraParser) checkReferencedTreesExist(t *tara.TARA, treeID string, n *attacktree.Node) {
	if n.Kind != attacktree.KindReference || n.ReferenceID == "" {
		return
	}
	if _, ok := t.AttackTree(n.ReferenceID); !ok {
		p.logger.Error("Node references non-existing tree", "node", n.Name, "tree", treeID, "reference", n.ReferenceID)
	}
}

func (p *TaraParser) checkControlsExist(t *tara.TARA, treeID string, n *attacktree.Node) {
	for _, id := range n.ControlIDs {
		if _, ok := t.Control(id); !ok {
			p.logger.Error("Node references non-existing security control", "node", n.Name, "tree", treeID, "control", id)
		}
	}
}

// checkTermination evaluates every tree with controls to find reference
// cycles. Missing references are already reported by the other rules.
func (p *TaraParser) checkTermination(t *tara.TARA) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	eval := t.NewEvaluator(quiet, p.config.EvaluatorOptions...)
	for _, tree := range t.AttackTrees {
		if tree.Root == nil {
			continue
		}
		_, err := eval.EvaluateTree(tree, true)
		if errors.Is(err, attacktree.ErrCycle) || errors.Is(err, attacktree.ErrDepthExceeded) {
			p.logger.Error("Attack tree cannot be evaluated", "tree", tree.ID, "error", err)
		}
	}
}
