package utils

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimSpaceSlice(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "mixed whitespace and content",
			input:    []string{"  hello  ", "", "  world", "test  ", "   "},
			expected: []string{"hello", "world", "test"},
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "all empty/whitespace",
			input:    []string{"", "  ", "   ", "\t"},
			expected: []string{},
		},
		{
			name:     "no trimming needed",
			input:    []string{"hello", "world"},
			expected: []string{"hello", "world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TrimSpaceSlice(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("Expected length %d, got %d", len(tt.expected), len(result))
				return
			}

			for i, expected := range tt.expected {
				if result[i] != expected {
					t.Errorf("At index %d: expected %q, got %q", i, expected, result[i])
				}
			}
		})
	}
}

func TestParseCommaDelimited(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "normal comma separated",
			input:    "one,two,three",
			expected: []string{"one", "two", "three"},
		},
		{
			name:     "with whitespace",
			input:    " one , two  ,  three ",
			expected: []string{"one", "two", "three"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single item",
			input:    "single",
			expected: []string{"single"},
		},
		{
			name:     "empty items",
			input:    "one,,three,",
			expected: []string{"one", "three"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseCommaDelimited(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("Expected length %d, got %d", len(tt.expected), len(result))
				return
			}

			for i, expected := range tt.expected {
				if result[i] != expected {
					t.Errorf("At index %d: expected %q, got %q", i, expected, result[i])
				}
			}
		})
	}
}

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"C-1", "C-2"}, SplitIDs("  C-1\tC-2 "))
	assert.Equal(t, []string{"DS-1", "DS-2", "DS-3"}, SplitIDs("DS-1, DS-2,DS-3"))
	assert.Empty(t, SplitIDs(""))
}

func TestCountDashPrefix(t *testing.T) {
	rest, n := CountDashPrefix("---- Threat 3")
	assert.Equal(t, " Threat 3", rest)
	assert.Equal(t, 4, n)

	rest, n = CountDashPrefix("Root")
	assert.Equal(t, "Root", rest)
	assert.Zero(t, n)
}

func TestCollectorRecordsWarningsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	logger, collector := NewLogger(&buf, false)

	logger.Debug("hidden")
	logger.Info("progress")
	logger.Warn("Empty code", "tree", "AT_A-1_MAN")
	logger.With("file", "02_Assets.md").Error("Table not found")
	logger.WithGroup("parser").Error("Bad row", "row", 3)

	require.Len(t, collector.Warnings(), 1)
	assert.Equal(t, "Empty code (tree=AT_A-1_MAN)", collector.Warnings()[0].String())
	errs := collector.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, "Table not found (file=02_Assets.md)", errs[0].String())
	assert.Equal(t, "Bad row (parser.row=3)", errs[1].String())
	assert.True(t, collector.HasErrors())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "progress")

	collector.Reset()
	assert.False(t, collector.HasErrors())
}

func TestCollectorRecordsBelowHandlerLevel(t *testing.T) {
	inner := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError + 4})
	collector := NewCollector(inner)
	logger := slog.New(collector)

	logger.Warn("quiet warning")

	assert.Len(t, collector.Warnings(), 1)
}

func TestMemoryFileSystem(t *testing.T) {
	fs := NewMemoryFileSystem()
	require.NoError(t, fs.WriteFile("tara/AttackTrees/AT_A-1_MAN.md", "# AT"))
	require.NoError(t, fs.WriteFile("tara/AttackTrees/notes.txt", "x"))
	require.NoError(t, fs.WriteFile("tara/AttackTrees/sub/CIRC_C-1.md", "# C"))
	require.NoError(t, fs.WriteFile("tara/02_Assets.md", "# Assets"))

	names, err := fs.ListMarkdown("tara/AttackTrees")
	require.NoError(t, err)
	assert.Equal(t, []string{"AT_A-1_MAN.md"}, names)

	content, err := fs.ReadFile("tara/./02_Assets.md")
	require.NoError(t, err)
	assert.Equal(t, "# Assets", content)

	_, err = fs.ReadFile("missing.md")
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.True(t, fs.Exists("tara/02_Assets.md"))
}

func TestArchiveRoundTrip(t *testing.T) {
	bundle := []byte(`Sample project.
-- 01_Assumptions.md --
# Assumptions
-- AttackTrees/CIRC_C-1.md --
# CIRC_C-1
`)

	fs := ParseArchive(bundle, "project")

	names, err := fs.ListMarkdown("project/AttackTrees")
	require.NoError(t, err)
	assert.Equal(t, []string{"CIRC_C-1.md"}, names)
	content, err := fs.ReadFile("project/01_Assumptions.md")
	require.NoError(t, err)
	assert.Equal(t, "# Assumptions\n", content)

	require.NoError(t, fs.WriteFile("elsewhere/notes.md", "# Notes"))
	ar := fs.Archive("project", "copy")
	require.Len(t, ar.Files, 2)
	assert.Equal(t, "01_Assumptions.md", ar.Files[0].Name)
	assert.Equal(t, "AttackTrees/CIRC_C-1.md", ar.Files[1].Name)

	file := filepath.Join(t.TempDir(), "bundle.txtar")
	require.NoError(t, fs.SaveArchive(file, "project", "copy"))
	loaded, err := LoadArchive(file, ".")
	require.NoError(t, err)
	assert.Equal(t, []string{"01_Assumptions.md", "AttackTrees/CIRC_C-1.md"}, loaded.Paths())
}

func TestOSFileSystem(t *testing.T) {
	dir := t.TempDir()
	fs := OSFileSystem{}
	target := filepath.Join(dir, "AttackTrees", "AT_A-1_EXT.md")

	require.NoError(t, fs.WriteFile(target, "# AT_A-1_EXT\n"))
	assert.True(t, fs.Exists(target))
	assert.True(t, DirectoryExists(filepath.Join(dir, "AttackTrees")))
	assert.False(t, FileExists(filepath.Join(dir, "AttackTrees")))

	names, err := fs.ListMarkdown(filepath.Join(dir, "AttackTrees"))
	require.NoError(t, err)
	assert.Equal(t, []string{"AT_A-1_EXT.md"}, names)

	content, err := fs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "# AT_A-1_EXT\n", content)
}

func TestValidateFilePathRejectsTraversal(t *testing.T) {
	assert.Error(t, validateFilePath("../outside.md"))
	assert.Error(t, validateFilePath("/etc/passwd"))
}

func TestInstrumentation(t *testing.T) {
	var buf bytes.Buffer
	logger, collector := NewLogger(&buf, true)
	instr := NewInstrumentation(logger)

	n, err := Timed(instr, "count", func() (int, error) { return 3, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = Timed(instr, "fail", func() (string, error) { return "", errors.New("boom") })
	require.Error(t, err)
	assert.Equal(t, []string{"Operation failed"}, issueMessages(collector.Errors()))

	tracker := instr.NewPhaseTracker("parse")
	tracker.StartPhase("read inputs")
	tracker.StartPhase("check references")
	tracker.Complete(2)

	out := buf.String()
	assert.Contains(t, out, "phase=\"read inputs\"")
	assert.Contains(t, out, "Phase completed")
	assert.Contains(t, out, "items=2")
}

func issueMessages(issues []Issue) []string {
	var result []string
	for _, issue := range issues {
		result = append(result, issue.Message)
	}
	return result
}
