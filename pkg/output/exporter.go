package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/smith-xyz/golang-tara/pkg/tara"
	"github.com/smith-xyz/golang-tara/pkg/utils"
	"github.com/smith-xyz/golang-tara/pkg/version"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml and yml.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use json or yaml)", s)
	}
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// CreationInfo describes who created an export and when.
type CreationInfo struct {
	Created     string `json:"created" yaml:"created"`
	CreatedBy   string `json:"created_by" yaml:"created_by"`
	ToolName    string `json:"tool_name" yaml:"tool_name"`
	ToolVersion string `json:"tool_version" yaml:"tool_version"`
}

// Report is the machine readable form of a TARA.
type Report struct {
	ReportID     string       `json:"report_id" yaml:"report_id"`
	Project      string       `json:"project,omitempty" yaml:"project,omitempty"`
	CreationInfo CreationInfo `json:"creation_info" yaml:"creation_info"`
	Analysis     `yaml:",inline"`
}

// Exporter writes reports as JSON or YAML.
type Exporter struct {
	logger   *slog.Logger
	analyzer *Analyzer
	format   Format
}

func NewExporter(logger *slog.Logger, analyzer *Analyzer, format Format) *Exporter {
	return &Exporter{logger: logger, analyzer: analyzer, format: format}
}

// Build analyzes t and wraps the result with a fresh report ID.
func (e *Exporter) Build(t *tara.TARA, project string) *Report {
	return NewReport(project, e.analyzer.Analyze(t))
}

// NewReport wraps an existing analysis.
func NewReport(project string, a *Analysis) *Report {
	return &Report{
		ReportID: uuid.NewString(),
		Project:  project,
		CreationInfo: CreationInfo{
			Created:     strconv.FormatInt(time.Now().Unix(), 10),
			CreatedBy:   version.ToolName + " Threat Analysis and Risk Assessment",
			ToolName:    version.ToolName,
			ToolVersion: version.GetVersion(),
		},
		Analysis: *a,
	}
}

// Encode writes r to w in the exporter's format.
func (e *Exporter) Encode(w io.Writer, r *Report) error {
	switch e.format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report as json: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report as yaml: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported export format %q", e.format)
	}
}

// WriteFile encodes r into filename using w.
func (e *Exporter) WriteFile(w utils.FileWriter, filename string, r *Report) error {
	var buf bytes.Buffer
	if err := e.Encode(&buf, r); err != nil {
		return fmt.Errorf("failed to write report to file %s: %w", filename, err)
	}
	if err := w.WriteFile(filename, buf.String()); err != nil {
		return fmt.Errorf("failed to create output file %s: %w", filename, err)
	}
	e.logger.Info("Report successfully written", "file", filename, "format", string(e.format))
	return nil
}
