package output

import (
	"fmt"
	"strings"

	"github.com/smith-xyz/golang-tara/pkg/attacktree"
	"github.com/smith-xyz/golang-tara/pkg/markdown"
	"github.com/smith-xyz/golang-tara/pkg/tara"
)

// ReportTitle is the level 0 heading of the report.
const ReportTitle = "Threat Analysis And Risk Assessment (TARA) Report"

var (
	summaryHeader = []string{"ID", "Threat Scenario", "Impact", "Feasibility", "Risk"}
	// ResolvedTreeHeader is the header of the resolved attack tree tables.
	ResolvedTreeHeader = []string{"Attack Tree", "Node", "ET", "Ex", "Kn", "WoO", "Eq", "Feasibility", "Reasoning", "Control", "Comment"}
)

// ReportGenerator builds the TARA report.
type ReportGenerator struct {
	analyzer *Analyzer
}

func NewReportGenerator(analyzer *Analyzer) *ReportGenerator {
	return &ReportGenerator{analyzer: analyzer}
}

func (g *ReportGenerator) Generate(t *tara.TARA) *markdown.Document {
	return ReportDocument(g.analyzer.Analyze(t))
}

// ReportDocument renders the report of an analysis: a summary of the
// residual risk per threat scenario followed by every resolved attack tree.
func ReportDocument(a *Analysis) *markdown.Document {
	b := markdown.NewDocumentBuilder().
		WithSection(ReportTitle, 0).
		WithSection("Threat Scenarios", 1)

	summary := markdown.NewTableBuilder().WithHeader(summaryHeader...)
	for i := range a.ThreatScenarios {
		ts := &a.ThreatScenarios[i]
		summary.WithRow(ts.ID, ts.Description(), ts.Impact.String(),
			ts.ResidualFeasibility.Level().String(), ts.ResidualRisk.String())
	}
	b.WithTable(summary.Build())

	b.WithSection("Attack Trees", 1)
	for _, tree := range a.AttackTrees {
		b.WithSection(tree.ID, 2)
		if tree.Description != "" {
			b.WithParagraph(tree.Description)
		}
		b.WithTable(ResolvedTreeTable(tree))
	}
	return b.Build()
}

// ResolvedTreeTable renders a resolved tree in attack tree table layout.
// Inner nodes show their computed factors; REF and CIRC rows link to the
// tree they stand for.
func ResolvedTreeTable(tree *attacktree.ResolvedTree) *markdown.Table {
	b := markdown.NewTableBuilder().WithHeader(ResolvedTreeHeader...)
	tree.Root.Walk(func(n *attacktree.ResolvedNode, depth int) {
		name := n.Name
		if n.TreeID != "" {
			name = fmt.Sprintf("[%s](#%s)", n.Name, n.Anchor())
		}
		if depth > 0 {
			name = strings.Repeat("--", depth) + " " + name
		}
		codes := n.Feasibility.Codes()
		b.WithRow(name, n.Kind.String(), codes[0], codes[1], codes[2], codes[3], codes[4],
			n.Feasibility.Level().String(), n.Reasoning, strings.Join(n.Controls, " "), n.Comment)
	})
	return b.Build()
}
