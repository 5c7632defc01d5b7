// Package parser turns the markdown tables of a TARA project into the
// domain model and checks the cross references between them.
package parser

import (
	"errors"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/smith-xyz/golang-tara/pkg/attacktree"
	"github.com/smith-xyz/golang-tara/pkg/markdown"
	"github.com/smith-xyz/golang-tara/pkg/models"
	"github.com/smith-xyz/golang-tara/pkg/utils"
)

// Columns of the attack tree table.
const (
	colName = iota
	colNode
	colElapsedTime
	colExpertise
	colKnowledge
	colWindowOfOpportunity
	colEquipment
	colReasoning
	colControl
	colComment
)

// dashesPerLevel is the number of leading dashes per indentation level.
const dashesPerLevel = 2

var referencePattern = regexp.MustCompile(`^\[(.*?)\]\((.*?)\)`)

// AttackTreeParser builds attack trees from attack tree tables.
type AttackTreeParser struct {
	logger *slog.Logger
}

func NewAttackTreeParser(logger *slog.Logger) *AttackTreeParser {
	return &AttackTreeParser{logger: logger}
}

// Parse builds the tree with the given ID. Structural problems are logged
// and yield a tree without root; row level problems are logged and the
// row is skipped or defaulted.
func (p *AttackTreeParser) Parse(table *markdown.Table, treeID string) *attacktree.Tree {
	logger := p.logger.With("tree", treeID)
	tree := &attacktree.Tree{ID: treeID}

	// stack[d] is the most recent node at depth d.
	var stack []*attacktree.Node
	skipBelow := -1

	for row, n := 0, table.RowCount(); row < n; row++ {
		name, dashes := utils.CountDashPrefix(table.Cell(row, colName))
		name = strings.TrimSpace(name)
		if dashes%dashesPerLevel != 0 {
			logger.Warn("Odd indentation in attack tree, rounding down", "node", name, "dashes", dashes)
		}
		depth := dashes / dashesPerLevel

		if skipBelow >= 0 {
			if depth > skipBelow {
				logger.Debug("Skipping child of skipped row", "node", name)
				continue
			}
			skipBelow = -1
		}

		switch {
		case row == 0 && depth != 0:
			logger.Error("First row of attack tree must be the root node", "node", name)
			return &attacktree.Tree{ID: treeID}
		case depth == 0 && len(stack) > 0:
			logger.Error("Multiple root nodes found in attack tree, only one root node is allowed", "node", name)
			return &attacktree.Tree{ID: treeID}
		case depth > len(stack):
			logger.Error("Invalid indentation in attack tree", "node", name, "levels", depth-len(stack)+1)
			return &attacktree.Tree{ID: treeID}
		}

		node := p.parseNode(logger, table, row, name)
		if node == nil {
			skipBelow = depth
			continue
		}

		stack = stack[:depth]
		if depth > 0 {
			parent := stack[depth-1]
			if parent.Kind != attacktree.KindAnd && parent.Kind != attacktree.KindOr {
				logger.Error("Only AND and OR nodes can have children", "parent", parent.Name, "node", node.Name)
				skipBelow = depth
				continue
			}
			parent.AddChild(node)
		}
		stack = append(stack, node)
	}

	if len(stack) > 0 {
		tree.Root = stack[0]
	}
	return tree
}

func (p *AttackTreeParser) parseNode(logger *slog.Logger, table *markdown.Table, row int, name string) *attacktree.Node {
	var node *attacktree.Node
	switch rowType := table.Cell(row, colNode); rowType {
	case "OR":
		node = attacktree.NewOrNode(name)
	case "AND":
		node = attacktree.NewAndNode(name)
	case "LEAF", "":
		node = attacktree.NewLeafNode(name, p.parseFeasibility(logger, table, row, name))
	case "REF":
		node = attacktree.NewReferenceNode(name, "")
		if m := referencePattern.FindStringSubmatch(name); m != nil {
			node.Name = m[1]
			node.ReferenceID = referenceID(m[2])
		} else {
			logger.Error("Invalid reference node format, expected [name](path/ID.md)", "node", name)
		}
	default:
		logger.Error("Invalid node type found in attack tree", "node", name, "type", rowType)
		return nil
	}

	node.Reasoning = table.Cell(row, colReasoning)
	node.Comment = table.Cell(row, colComment)
	node.ControlIDs = utils.SplitIDs(table.Cell(row, colControl))
	return node
}

// referenceID returns the file name of target without extension.
func referenceID(target string) string {
	base := path.Base(strings.ReplaceAll(target, `\`, "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

func (p *AttackTreeParser) parseFeasibility(logger *slog.Logger, table *markdown.Table, row int, name string) models.Feasibility {
	var f models.Feasibility
	var err error

	f.ElapsedTime, err = models.ParseElapsedTime(table.Cell(row, colElapsedTime))
	reportCode(logger, "elapsed time", name, err)
	f.Expertise, err = models.ParseExpertise(table.Cell(row, colExpertise))
	reportCode(logger, "expertise", name, err)
	f.Knowledge, err = models.ParseKnowledge(table.Cell(row, colKnowledge))
	reportCode(logger, "knowledge", name, err)
	f.WindowOfOpportunity, err = models.ParseWindowOfOpportunity(table.Cell(row, colWindowOfOpportunity))
	reportCode(logger, "window of opportunity", name, err)
	f.Equipment, err = models.ParseEquipment(table.Cell(row, colEquipment))
	reportCode(logger, "equipment", name, err)

	return f
}

// reportCode logs a factor code problem. The parse functions already
// returned the easiest rating.
func reportCode(logger *slog.Logger, factor, node string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, models.ErrEmptyCode):
		logger.Warn("Empty "+factor+" code, defaulting to easiest rating", "node", node)
	default:
		logger.Error("Invalid "+factor+" code", "node", node, "error", err)
	}
}
