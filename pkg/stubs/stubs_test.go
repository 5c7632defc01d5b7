package stubs

import (
	"context"
	"io"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smith-xyz/golang-tara/pkg/markdown"
	"github.com/smith-xyz/golang-tara/pkg/models"
	"github.com/smith-xyz/golang-tara/pkg/parser"
	"github.com/smith-xyz/golang-tara/pkg/tara"
	"github.com/smith-xyz/golang-tara/pkg/utils"
)

func sampleTARA(t *testing.T) *tara.TARA {
	t.Helper()
	logger, _ := utils.NewLogger(io.Discard, false)
	result := tara.New(".", logger)

	db := models.NewAsset("AST-DB", "Database Server")
	db.DamageScenarios[models.Availability] = []string{"DS1"}
	db.DamageScenarios[models.Integrity] = []string{"DS1"}
	db.DamageScenarios[models.Confidentiality] = []string{"DS1"}

	cred := models.NewAsset("AST-CRED", "Credential Store")
	cred.DamageScenarios[models.Confidentiality] = []string{"DS1"}

	result.Assets = []*models.Asset{db, cred}
	result.DamageScenarios = []*models.DamageScenario{models.NewDamageScenario("DS1", "Data Breach")}
	result.Controls = []*models.SecurityControl{{ID: "C-1", Name: "Access Control", SecurityGoal: "Goal-1"}}
	return result
}

func TestUpdateStubsForAllThreats(t *testing.T) {
	fs := utils.NewMemoryFileSystem()
	logger, _ := utils.NewLogger(io.Discard, false)

	written, err := NewAttackTreeStubGenerator(fs, logger).UpdateStubs(sampleTARA(t), ".")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"AttackTrees/AT_AST-DB_BLOCK.md",
		"AttackTrees/AT_AST-DB_MAN.md",
		"AttackTrees/AT_AST-DB_EXT.md",
		"AttackTrees/AT_AST-CRED_EXT.md",
		"AttackTrees/CIRC_C-1.md",
	}, written)

	tests := []struct {
		file string
		id   string
		root string
	}{
		{"AttackTrees/AT_AST-DB_BLOCK.md", "AT_AST-DB_BLOCK", "Blocking of Database Server"},
		{"AttackTrees/AT_AST-CRED_EXT.md", "AT_AST-CRED_EXT", "Extraction of Credential Store"},
		{"AttackTrees/CIRC_C-1.md", "CIRC_C-1", "Circumvent Access Control"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			content, err := fs.ReadFile(tt.file)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(content, "# "+tt.id+"\n"))
			assert.Contains(t, content, "* ET: Elapsed Time (1w, 1m, 6m, 3y, >3y)")

			doc := markdown.Parse(content)
			table := doc.FindTable(tara.AttackTree.Header()...)
			require.NotNil(t, table)
			require.Equal(t, 1, table.RowCount())
			assert.Equal(t, tt.root, table.Cell(0, 0))
			assert.Equal(t, "", table.Cell(0, 1))
		})
	}
}

func TestUpdateStubsKeepsExistingFiles(t *testing.T) {
	fs := utils.NewMemoryFileSystem()
	require.NoError(t, fs.WriteFile("AttackTrees/AT_AST-DB_BLOCK.md", "mine"))
	require.NoError(t, fs.WriteFile("AttackTrees/AT_AST-CRED_EXT.md", "mine too"))
	logger, _ := utils.NewLogger(io.Discard, false)

	written, err := NewAttackTreeStubGenerator(fs, logger).UpdateStubs(sampleTARA(t), ".")
	require.NoError(t, err)

	assert.Contains(t, written, "AttackTrees/AT_AST-DB_MAN.md")
	assert.Contains(t, written, "AttackTrees/AT_AST-DB_EXT.md")
	assert.NotContains(t, written, "AttackTrees/AT_AST-DB_BLOCK.md")
	assert.NotContains(t, written, "AttackTrees/AT_AST-CRED_EXT.md")

	content, err := fs.ReadFile("AttackTrees/AT_AST-DB_BLOCK.md")
	require.NoError(t, err)
	assert.Equal(t, "mine", content)
}

func TestInitProject(t *testing.T) {
	fs := utils.NewMemoryFileSystem()
	logger, _ := utils.NewLogger(io.Discard, false)

	written, err := InitProject(fs, logger, "tara")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"tara/00_SystemDescription.md",
		"tara/MethodDescription.md",
		"tara/01_Assumptions.md",
		"tara/02_Assets.md",
		"tara/03_DamageScenarios.md",
		"tara/04_Controls.md",
		"tara/AttackTrees/.gitkeep",
	}, written)

	for _, fileType := range []tara.FileType{tara.Assumptions, tara.Assets, tara.DamageScenarios, tara.Controls} {
		content, err := fs.ReadFile(path.Join("tara", fileType.Path()))
		require.NoError(t, err)
		doc := markdown.Parse(content)
		assert.NotNil(t, doc.FindTable(fileType.Header()...), fileType.String())
		assert.Equal(t, fileType.String(), doc.FirstSection().Title)
	}

	again, err := InitProject(fs, logger, "tara")
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestGeneratedStubsParseWithoutErrors(t *testing.T) {
	fs := utils.NewMemoryFileSystem()
	logger, collector := utils.NewLogger(io.Discard, false)

	_, err := InitProject(fs, logger, "p")
	require.NoError(t, err)
	require.NoError(t, fs.WriteFile("p/02_Assets.md", `# Assets

| ID  | Name   | Availability | Integrity | Confidentiality | Reasoning | Description |
| --- | ------ | ------------ | --------- | --------------- | --------- | ----------- |
| A-1 | Engine | DS-1         |           | DS-1            |           |             |
`))
	require.NoError(t, fs.WriteFile("p/03_DamageScenarios.md", `# Damage Scenarios

| ID   | Name  | Safety | Operational | Financial | Privacy | Reasoning | Comment |
| ---- | ----- | ------ | ----------- | --------- | ------- | --------- | ------- |
| DS-1 | Stall | Major  |             |           |         |           |         |
`))
	require.NoError(t, fs.WriteFile("p/04_Controls.md", `# Controls

| ID  | Name     | Security Goal | Active |
| --- | -------- | ------------- | ------ |
| C-1 | Firewall | Goal-1        | x      |
`))

	p := parser.NewTaraParser(fs, logger, parser.Config{})
	inputs, err := p.ParseInputs(context.Background(), "p")
	require.NoError(t, err)
	p.CheckReferences(inputs)
	require.False(t, collector.HasErrors(), "%v", collector.Errors())

	written, err := NewAttackTreeStubGenerator(fs, logger).UpdateStubs(inputs, "p")
	require.NoError(t, err)
	assert.Len(t, written, 3)

	collector.Reset()
	result, err := p.Parse(context.Background(), "p")
	require.NoError(t, err)
	assert.Empty(t, collector.Errors())
	assert.Len(t, result.AttackTrees, 3)
	assert.Empty(t, result.Assumptions)

	tree, ok := result.AttackTree("AT_A-1_EXT")
	require.True(t, ok)
	assert.Equal(t, "Extraction of Engine", tree.Root.Name)
}
