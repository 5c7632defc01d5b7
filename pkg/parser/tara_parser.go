package parser

import (
	"context"
	"errors"
	"io/fs"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/smith-xyz/golang-tara/pkg/attacktree"
	"github.com/smith-xyz/golang-tara/pkg/markdown"
	"github.com/smith-xyz/golang-tara/pkg/models"
	"github.com/smith-xyz/golang-tara/pkg/registry"
	"github.com/smith-xyz/golang-tara/pkg/tara"
	"github.com/smith-xyz/golang-tara/pkg/utils"
)

// DefaultWorkers bounds concurrent attack tree file reads.
const DefaultWorkers = 8

// Config controls the TaraParser.
type Config struct {
	// Workers is the number of attack tree files read in parallel.
	Workers int
	// EvaluatorOptions are used for the cycle check of all trees.
	EvaluatorOptions []attacktree.Option
}

// TaraParser reads a TARA project directory. Problems are reported
// through the logger so one run reports all of them.
type TaraParser struct {
	reader utils.FileReader
	logger *slog.Logger
	config Config
}

func NewTaraParser(reader utils.FileReader, logger *slog.Logger, config Config) *TaraParser {
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	return &TaraParser{reader: reader, logger: logger, config: config}
}

// Parse reads all input tables and attack trees of dir and checks every
// rule. The returned error is only set for failures that prevent reading
// at all, such as a cancelled context.
func (p *TaraParser) Parse(ctx context.Context, dir string) (*tara.TARA, error) {
	t, err := p.ParseInputs(ctx, dir)
	if err != nil {
		return nil, err
	}
	p.CheckReferences(t)
	p.CheckAttackTrees(t)
	return t, nil
}

// ParseInputs reads and registers the project without the rule checks.
func (p *TaraParser) ParseInputs(ctx context.Context, dir string) (*tara.TARA, error) {
	t := tara.New(dir, p.logger)

	t.Assumptions = extractAssumptions(p.readTable(dir, tara.Assumptions))
	t.DamageScenarios = p.extractDamageScenarios(p.readTable(dir, tara.DamageScenarios))
	t.Assets = extractAssets(p.readTable(dir, tara.Assets))
	t.Controls = extractControls(p.readTable(dir, tara.Controls))

	trees, err := p.parseAttackTrees(ctx, path.Join(dir, tara.AttackTreeDir))
	if err != nil {
		return nil, err
	}
	t.AttackTrees = trees

	register(t.Registry, t.Assumptions)
	register(t.Registry, t.DamageScenarios)
	register(t.Registry, t.Assets)
	register(t.Registry, t.AttackTrees)
	register(t.Registry, t.Controls)
	return t, nil
}

// register adds objects to the registry. Duplicates are logged by the registry.
func register[T registry.Object](reg *registry.Registry, objects []T) {
	for _, obj := range objects {
		_ = reg.Add(obj)
	}
}

// readTable returns the table of the given type or nil.
func (p *TaraParser) readTable(dir string, fileType tara.FileType) *markdown.Table {
	file := path.Join(dir, fileType.Path())
	content, err := p.reader.ReadFile(file)
	if err != nil {
		p.logger.Error("Failed to read input file", "file", file, "error", err)
		return nil
	}
	table := markdown.Parse(content).FindTable(fileType.Header()...)
	if table == nil {
		p.logger.Error(fileType.String()+" table not found in the document", "file", file,
			"expected_header", strings.Join(fileType.Header(), " | "))
	}
	return table
}

func (p *TaraParser) parseAttackTrees(ctx context.Context, dir string) ([]*attacktree.Tree, error) {
	names, err := p.reader.ListMarkdown(dir)
	if errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("Attack tree directory not found", "directory", dir)
		return nil, nil
	}
	if err != nil {
		p.logger.Error("Failed to list attack trees", "directory", dir, "error", err)
		return nil, nil
	}

	treeParser := NewAttackTreeParser(p.logger)
	results := make([]*attacktree.Tree, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.Workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			file := path.Join(dir, name)
			content, err := p.reader.ReadFile(file)
			if err != nil {
				p.logger.Error("Failed to read attack tree", "file", file, "error", err)
				return nil
			}
			doc := markdown.Parse(content)
			table := doc.FindTable(tara.AttackTree.Header()...)
			if table == nil {
				p.logger.Error("No attack tree table found in file, is the table header correct?", "file", name)
				return nil
			}
			tree := treeParser.Parse(table, strings.TrimSuffix(name, ".md"))
			if section := doc.FirstSection(); section != nil && section.Title != tree.ID {
				tree.Description = section.Title
			}
			results[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to parse attack trees: %w", err)
	}

	trees := make([]*attacktree.Tree, 0, len(results))
	for _, tree := range results {
		if tree != nil {
			trees = append(trees, tree)
		}
	}
	return trees, nil
}

// Rows without ID, such as the empty row of a fresh stub, are skipped by
// all extract functions.
func extractAssumptions(table *markdown.Table) []*models.Assumption {
	if table == nil {
		return nil
	}
	assumptions := make([]*models.Assumption, 0, table.RowCount())
	for row, n := 0, table.RowCount(); row < n; row++ {
		if table.Cell(row, 0) == "" {
			continue
		}
		assumptions = append(assumptions, &models.Assumption{
			ID:            table.Cell(row, 0),
			Name:          table.Cell(row, 1),
			SecurityClaim: table.Cell(row, 2),
			Comment:       table.Cell(row, 3),
		})
	}
	return assumptions
}

func (p *TaraParser) extractDamageScenarios(table *markdown.Table) []*models.DamageScenario {
	if table == nil {
		return nil
	}
	scenarios := make([]*models.DamageScenario, 0, table.RowCount())
	for row, n := 0, table.RowCount(); row < n; row++ {
		if table.Cell(row, 0) == "" {
			continue
		}
		ds := models.NewDamageScenario(table.Cell(row, 0), table.Cell(row, 1))
		ds.Reasoning = table.Cell(row, 6)
		ds.Comment = table.Cell(row, 7)
		for i, category := range models.ImpactCategories {
			impact, err := models.ParseImpact(table.Cell(row, 2+i))
			if err != nil {
				p.logger.Error("Invalid impact rating found", "damage_scenario", ds.ID,
					"category", category.String(), "value", table.Cell(row, 2+i))
			}
			ds.Impacts[category] = impact
		}
		scenarios = append(scenarios, ds)
	}
	return scenarios
}

func extractAssets(table *markdown.Table) []*models.Asset {
	if table == nil {
		return nil
	}
	assets := make([]*models.Asset, 0, table.RowCount())
	for row, n := 0, table.RowCount(); row < n; row++ {
		if table.Cell(row, 0) == "" {
			continue
		}
		asset := models.NewAsset(table.Cell(row, 0), table.Cell(row, 1))
		for i, property := range models.SecurityProperties {
			if ids := utils.SplitIDs(table.Cell(row, 2+i)); len(ids) > 0 {
				asset.DamageScenarios[property] = ids
			}
		}
		asset.Reasoning = table.Cell(row, 5)
		asset.Description = table.Cell(row, 6)
		assets = append(assets, asset)
	}
	return assets
}

func extractControls(table *markdown.Table) []*models.SecurityControl {
	if table == nil {
		return nil
	}
	controls := make([]*models.SecurityControl, 0, table.RowCount())
	for row, n := 0, table.RowCount(); row < n; row++ {
		if table.Cell(row, 0) == "" {
			continue
		}
		controls = append(controls, &models.SecurityControl{
			ID:           table.Cell(row, 0),
			Name:         table.Cell(row, 1),
			SecurityGoal: table.Cell(row, 2),
			IsActive:     strings.EqualFold(table.Cell(row, 3), "x"),
		})
	}
	return controls
}
