// Package stubs writes the starting files of a TARA project and one attack
// tree file per expected tree.
package stubs

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/smith-xyz/golang-tara/pkg/attacktree"
	"github.com/smith-xyz/golang-tara/pkg/markdown"
	"github.com/smith-xyz/golang-tara/pkg/tara"
	"github.com/smith-xyz/golang-tara/pkg/utils"
)

//go:embed templates/*.md
var templates embed.FS

// attackTreeLegend explains the codes of the attack tree table.
const attackTreeLegend = `* Node: (OR, AND, LEAF, REF)
* ET: Elapsed Time (1w, 1m, 6m, 3y, >3y)
* Ex: Expertise (L: Layman, P: Proficient, E: Expert, ME: multiple Experts)
* Kn: Knowledge (P: Public, R: Restricted, C: Confidential, SC: strictly Confidential)
* WoO: Window of Opportunity (U: Unlimited, E: Easy, M: Moderate, D: Difficult)
* Eq: Equipment (ST: Standard, SP: Specialized, B: Bespoke, MB: multiple Bespoke)`

// FileStub is a file written when it does not exist yet.
type FileStub struct {
	Path    string
	Content string
}

// ProjectStubs returns the starting files of a project: the prose
// templates and one empty input table per input file.
func ProjectStubs() ([]FileStub, error) {
	entries, err := fs.ReadDir(templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to read stub templates: %w", err)
	}
	var stubs []FileStub
	for _, e := range entries {
		content, err := templates.ReadFile(path.Join("templates", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read stub template %s: %w", e.Name(), err)
		}
		stubs = append(stubs, FileStub{Path: e.Name(), Content: string(content)})
	}
	for _, fileType := range []tara.FileType{tara.Assumptions, tara.Assets, tara.DamageScenarios, tara.Controls} {
		header := fileType.Header()
		table := markdown.NewTableBuilder().WithHeader(header...).WithRow().Build()
		doc := markdown.NewDocumentBuilder().WithSection(fileType.String(), 0).WithTable(table).Build()
		stubs = append(stubs, FileStub{Path: fileType.Path(), Content: markdown.Write(doc)})
	}
	return stubs, nil
}

// InitProject writes every project stub missing in dir and returns the
// written paths. Existing files are never touched.
func InitProject(w utils.FileWriter, logger *slog.Logger, dir string) ([]string, error) {
	stubs, err := ProjectStubs()
	if err != nil {
		return nil, err
	}
	stubs = append(stubs, FileStub{Path: path.Join(tara.AttackTreeDir, ".gitkeep")})
	return writeMissing(w, logger, dir, stubs)
}

func writeMissing(w utils.FileWriter, logger *slog.Logger, dir string, stubs []FileStub) ([]string, error) {
	var written []string
	for _, stub := range stubs {
		file := path.Join(dir, stub.Path)
		if w.Exists(file) {
			logger.Debug("Keeping existing file", "file", file)
			continue
		}
		if err := w.WriteFile(file, stub.Content); err != nil {
			return written, fmt.Errorf("failed to write stub %s: %w", file, err)
		}
		logger.Info("Created stub", "file", file)
		written = append(written, file)
	}
	return written, nil
}

// AttackTreeStubGenerator writes attack tree stubs for all threats and
// circumvention tree stubs for all security controls.
type AttackTreeStubGenerator struct {
	writer utils.FileWriter
	logger *slog.Logger
}

func NewAttackTreeStubGenerator(writer utils.FileWriter, logger *slog.Logger) *AttackTreeStubGenerator {
	return &AttackTreeStubGenerator{writer: writer, logger: logger}
}

// UpdateStubs writes the missing stubs below dir/AttackTrees and returns
// the written paths.
func (g *AttackTreeStubGenerator) UpdateStubs(t *tara.TARA, dir string) ([]string, error) {
	var stubs []FileStub
	for _, threat := range t.Threats() {
		root := threat.Property.AttackDescription() + " of " + threat.Asset.Name
		stubs = append(stubs, attackTreeStub(threat.TreeID(), root))
	}
	for _, control := range t.Controls {
		stubs = append(stubs, attackTreeStub(attacktree.CircumventionTreeID(control.ID), "Circumvent "+control.Name))
	}
	return writeMissing(g.writer, g.logger, dir, stubs)
}

func attackTreeStub(treeID, rootName string) FileStub {
	table := markdown.NewTableBuilder().
		WithHeader(tara.AttackTree.Header()...).
		WithRow(rootName).
		Build()
	doc := markdown.NewDocumentBuilder().
		WithSection(treeID, 0).
		WithParagraph(attackTreeLegend).
		WithTable(table).
		Build()
	return FileStub{
		Path:    path.Join(tara.AttackTreeDir, treeID+".md"),
		Content: markdown.Write(doc),
	}
}
