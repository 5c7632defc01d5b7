package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/smith-xyz/golang-tara/pkg/markdown"
	"github.com/smith-xyz/golang-tara/pkg/output"
	"github.com/smith-xyz/golang-tara/pkg/tara"
	"github.com/smith-xyz/golang-tara/pkg/utils"
	"github.com/smith-xyz/golang-tara/pkg/version"
)

const sampleBundle = "testdata/wallbox.txtar"

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	root := NewRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// extractProject unpacks the sample bundle into a temporary directory
// without the files for which skip returns true.
func extractProject(t *testing.T, skip func(name string) bool) string {
	t.Helper()
	data, err := os.ReadFile(sampleBundle)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, f := range txtar.Parse(data).Files {
		if skip != nil && skip(f.Name) {
			continue
		}
		target := filepath.Join(dir, filepath.FromSlash(f.Name))
		require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o750))
		require.NoError(t, os.WriteFile(target, f.Data, 0o600))
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestInitCreatesProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tara")

	res := run(t, "init", dir)
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Initializing...")
	assert.Contains(t, res.stdout, "02_Assets.md")

	for _, name := range []string{"00_SystemDescription.md", "01_Assumptions.md", "04_Controls.md", "AttackTrees/.gitkeep"} {
		assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(name)))
	}

	res = run(t, "init", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "All files already exist")
}

func TestCheckValidProject(t *testing.T) {
	dir := extractProject(t, nil)

	res := run(t, "check", "--dir", dir)
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "No errors found")
	assert.Contains(t, res.stdout, "Parsed 1 asset(s), 2 damage scenario(s), 1 control(s) and 3 attack tree(s)")
	assert.NotContains(t, res.stdout, "warning")
}

func TestCheckReportsErrors(t *testing.T) {
	dir := extractProject(t, func(name string) bool {
		return name == "AttackTrees/CIRC_C-1.md"
	})

	res := run(t, "check", "--dir", dir)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "error(s)")
	assert.Contains(t, res.stdout, "error(s)")
	assert.Contains(t, res.stderr, "No circumvent tree found")
}

func TestGenTreesCreatesMissingTrees(t *testing.T) {
	dir := extractProject(t, func(name string) bool {
		return strings.HasPrefix(name, "AttackTrees/")
	})

	res := run(t, "gentrees", "--dir", dir)
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "3 attack tree stub(s) created")

	stub := readFile(t, filepath.Join(dir, "AttackTrees", "AT_A-1_MAN.md"))
	table := markdown.Parse(stub).FindTable(tara.AttackTree.Header()...)
	require.NotNil(t, table)
	assert.Equal(t, "Manipulation of Charging Controller", table.Cell(0, 0))

	res = run(t, "check", "--dir", dir)
	require.NoError(t, res.err, res.stderr)
}

func TestGenTreesRefusesOnInputErrors(t *testing.T) {
	dir := extractProject(t, func(name string) bool {
		return name == "03_DamageScenarios.md" || strings.HasPrefix(name, "AttackTrees/")
	})

	res := run(t, "gentrees", "--dir", dir)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "before generating attack trees")
	assert.Contains(t, res.stderr, "Failed to read input file")
	assert.NoFileExists(t, filepath.Join(dir, "AttackTrees", "AT_A-1_MAN.md"))
}

func TestGenerateWritesDocuments(t *testing.T) {
	dir := extractProject(t, nil)

	res := run(t, "generate", "--dir", dir, "--export", "json")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "2 threat scenario(s) rated")

	scenarios := markdown.Parse(readFile(t, filepath.Join(dir, "06_ThreatScenarios.md")))
	table := scenarios.FindTable(output.ThreatScenarioHeader...)
	require.NotNil(t, table)
	require.Equal(t, 2, table.RowCount())
	assert.Equal(t, []string{
		"TS-1", "A-1", "DS-1", "BLOCK", "Vehicle cannot be charged caused by blocking of Charging Controller",
		"Major", "High", "", "High", "[High](#at_a-1_block)",
	}, table.Row(0))
	assert.Equal(t, []string{
		"TS-2", "A-1", "DS-2", "MAN", "Overcurrent damages battery caused by manipulation of Charging Controller",
		"Severe", "Critical", "", "Low", "[VeryLow](#at_a-1_man)",
	}, table.Row(1))

	report := readFile(t, filepath.Join(dir, "tara_report.md"))
	assert.Contains(t, report, "### AT_A-1_MAN")
	assert.Contains(t, report, "Controlled Flash malicious firmware")

	export := readFile(t, filepath.Join(dir, "tara_report.json"))
	require.True(t, json.Valid([]byte(export)))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(export), &decoded))
	assert.Equal(t, filepath.Base(dir), decoded["project"])
}

func TestGenerateUsesProjectConfig(t *testing.T) {
	dir := extractProject(t, nil)
	config := "[project]\nname = \"Wallbox\"\n[output]\ndirectory = \"out\"\nexport_format = \"yaml\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tara.toml"), []byte(config), 0o600))

	res := run(t, "generate", "--dir", dir)
	require.NoError(t, res.err, res.stderr)
	assert.FileExists(t, filepath.Join(dir, "out", "tara_report.md"))
	assert.FileExists(t, filepath.Join(dir, "out", "06_ThreatScenarios.md"))
	assert.Contains(t, readFile(t, filepath.Join(dir, "out", "tara_report.yaml")), "project: Wallbox")
}

func TestGenerateRefusesOnErrors(t *testing.T) {
	dir := extractProject(t, func(name string) bool {
		return name == "AttackTrees/AT_A-1_BLOCK.md"
	})

	res := run(t, "generate", "--dir", dir)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "before generating the document")
	assert.NoFileExists(t, filepath.Join(dir, "tara_report.md"))
}

func TestGenerateRejectsUnknownExportFormat(t *testing.T) {
	dir := extractProject(t, nil)
	res := run(t, "generate", "--dir", dir, "--export", "xml")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unsupported export format")
}

func TestResolve(t *testing.T) {
	dir := extractProject(t, nil)

	res := run(t, "resolve", "AT_A-1_MAN", "--dir", dir)
	require.NoError(t, res.err, res.stderr)
	doc := markdown.Parse(res.stdout)
	assert.Equal(t, "AT_A-1_MAN", doc.FirstSection().Title)
	table := doc.FindTable(output.ResolvedTreeHeader...)
	require.NotNil(t, table)
	require.Equal(t, 5, table.RowCount())
	assert.Equal(t, "-- Controlled Flash malicious firmware", table.Cell(1, 0))
	assert.Equal(t, "---- [Circumvent Signed firmware](#circ_c-1)", table.Cell(3, 0))
	assert.Equal(t, "VeryLow", table.Cell(0, 7))

	res = run(t, "resolve", "AT_A-1_MAN", "--without-controls", "--dir", dir)
	require.NoError(t, res.err, res.stderr)
	table = markdown.Parse(res.stdout).FindTable(output.ResolvedTreeHeader...)
	require.NotNil(t, table)
	assert.Equal(t, 3, table.RowCount())
	assert.Equal(t, "High", table.Cell(0, 7))
}

func TestResolveSeveralTrees(t *testing.T) {
	dir := extractProject(t, nil)

	res := run(t, "resolve", "AT_A-1_BLOCK,CIRC_C-1", "AT_A-1_MAN", "--dir", dir)
	require.NoError(t, res.err, res.stderr)
	doc := markdown.Parse(res.stdout)
	assert.Len(t, doc.Tables(), 3)
	assert.Equal(t, "AT_A-1_BLOCK", doc.FirstSection().Title)
	assert.Contains(t, res.stdout, "# CIRC_C-1")
}

func TestResolveUnknownTree(t *testing.T) {
	dir := extractProject(t, nil)
	res := run(t, "resolve", "AT_A-9_MAN", "--dir", dir)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "attack tree AT_A-9_MAN not found")
}

func TestArchiveProject(t *testing.T) {
	data, err := os.ReadFile(sampleBundle)
	require.NoError(t, err)
	bundle := filepath.Join(t.TempDir(), "wallbox.txtar")
	require.NoError(t, os.WriteFile(bundle, data, 0o600))
	dir := t.TempDir()

	res := run(t, "generate", "--archive", bundle, "--dir", dir)
	require.NoError(t, res.err, res.stderr)
	assert.NoFileExists(t, filepath.Join(dir, "tara_report.md"))

	fs, err := utils.LoadArchive(bundle, ".")
	require.NoError(t, err)
	assert.Contains(t, fs.Paths(), "tara_report.md")
	assert.Contains(t, fs.Paths(), "06_ThreatScenarios.md")
	assert.Contains(t, fs.Paths(), "AttackTrees/CIRC_C-1.md")
}

func TestInitArchive(t *testing.T) {
	bundle := filepath.Join(t.TempDir(), "new.txtar")

	res := run(t, "init", "--archive", bundle, "--dir", t.TempDir())
	require.NoError(t, res.err, res.stderr)

	fs, err := utils.LoadArchive(bundle, ".")
	require.NoError(t, err)
	assert.Contains(t, fs.Paths(), "tara/02_Assets.md")
}

func TestCheckMissingArchive(t *testing.T) {
	res := run(t, "check", "--archive", filepath.Join(t.TempDir(), "missing.txtar"))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "failed to read archive")
}

func TestMissingProjectDirectory(t *testing.T) {
	res := run(t, "check", "--dir", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "does not exist")
}

func TestInvalidConfig(t *testing.T) {
	dir := extractProject(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tara.toml"), []byte("[parser]\nworkers = 0\n"), 0o600))

	res := run(t, "check", "--dir", dir)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid configuration")
}

func TestVersion(t *testing.T) {
	res := run(t, "version", "--short")
	require.NoError(t, res.err)
	assert.Equal(t, version.GetVersionWithCommit()+"\n", res.stdout)

	res = run(t, "version", "--yaml")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "version: "+version.Version)

	res = run(t, "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, version.ToolName+" "))
}
