package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/smith-xyz/golang-tara/pkg/attacktree"
	"github.com/smith-xyz/golang-tara/pkg/version"
)

// ProjectFile is the name of the per-project configuration file.
const ProjectFile = "tara.toml"

// Embedded default configuration
//
//go:embed default_config.toml
var embeddedConfigData []byte

// Config holds the application configuration.
type Config struct {
	Project    ProjectConfig    `toml:"project"`
	Output     OutputConfig     `toml:"output"`
	Evaluation EvaluationConfig `toml:"evaluation"`
	Parser     ParserConfig     `toml:"parser"`
}

// ProjectConfig describes the TARA project.
type ProjectConfig struct {
	Name           string `toml:"name"`
	MinToolVersion string `toml:"min_tool_version"`
}

// OutputConfig holds the names of generated files.
type OutputConfig struct {
	Directory           string `toml:"directory" validate:"required"`
	ThreatScenariosFile string `toml:"threat_scenarios_file" validate:"required,endswith=.md"`
	ReportFile          string `toml:"report_file" validate:"required,endswith=.md"`
	ExportFormat        string `toml:"export_format" validate:"omitempty,oneof=json yaml yml"`
}

// EvaluationConfig holds attack tree evaluation limits.
type EvaluationConfig struct {
	MaxReferenceDepth int `toml:"max_reference_depth" validate:"gte=1,lte=100000"`
}

// ParserConfig holds parser settings.
type ParserConfig struct {
	Workers int `toml:"workers" validate:"gte=1,lte=256"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() (*Config, error) {
	var config Config
	if err := toml.Unmarshal(embeddedConfigData, &config); err != nil {
		return nil, fmt.Errorf("failed to parse embedded config: %w", err)
	}
	return &config, nil
}

// Load starts with the embedded defaults and applies an override file.
// An explicit path must exist; otherwise tara.toml in projectDir is used
// when present. The result is validated.
func Load(projectDir, explicit string) (*Config, string, error) {
	path := explicit
	if path == "" {
		candidate := filepath.Join(projectDir, ProjectFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	var (
		config *Config
		err    error
	)
	if path == "" {
		config, err = DefaultConfig()
	} else {
		config, err = LoadFromFile(path)
	}
	if err != nil {
		return nil, "", err
	}
	if err := config.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid configuration %s: %w", sourceName(path), err)
	}
	return config, path, nil
}

func sourceName(path string) string {
	if path == "" {
		return "(embedded defaults)"
	}
	return path
}

// LoadFromFile loads configuration from a TOML file on top of the
// embedded defaults. Keys missing in the file keep their default.
func LoadFromFile(filepath string) (*Config, error) {
	config, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	meta, err := toml.DecodeFile(filepath, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", filepath, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to load config from %s: unknown key %q", filepath, undecoded[0].String())
	}
	return config, nil
}

// Validate checks value ranges and the required tool version.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	return version.CheckCompatibility(c.Project.MinToolVersion)
}

// EvaluatorOptions returns the evaluator settings of the configuration.
func (c *Config) EvaluatorOptions() []attacktree.Option {
	return []attacktree.Option{attacktree.WithMaxDepth(c.Evaluation.MaxReferenceDepth)}
}
