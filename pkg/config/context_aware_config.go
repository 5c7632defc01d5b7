package config

import (
	"path/filepath"
)

// ContextAwareConfig wraps the base Config with the project directory it
// was loaded for, so output locations can be resolved.
type ContextAwareConfig struct {
	*Config
	ProjectDir string // Directory holding the TARA input files
	Source     string // Override file that was applied, empty for defaults
}

// NewContextAwareConfig loads the configuration for projectDir. See Load
// for the meaning of explicit.
func NewContextAwareConfig(projectDir, explicit string) (*ContextAwareConfig, error) {
	baseConfig, source, err := Load(projectDir, explicit)
	if err != nil {
		return nil, err
	}

	return &ContextAwareConfig{
		Config:     baseConfig,
		ProjectDir: projectDir,
		Source:     source,
	}, nil
}

// OutputPath resolves name inside the configured output directory. An
// absolute output directory is used as is.
func (c *ContextAwareConfig) OutputPath(name string) string {
	dir := c.Output.Directory
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.ProjectDir, dir)
	}
	return filepath.Join(dir, name)
}

// ThreatScenariosPath is the location of the threat scenario document.
func (c *ContextAwareConfig) ThreatScenariosPath() string {
	return c.OutputPath(c.Output.ThreatScenariosFile)
}

// ReportPath is the location of the report.
func (c *ContextAwareConfig) ReportPath() string {
	return c.OutputPath(c.Output.ReportFile)
}

// ExportPath is the location of the machine readable export.
func (c *ContextAwareConfig) ExportPath(extension string) string {
	name := c.Output.ReportFile
	name = name[:len(name)-len(filepath.Ext(name))]
	return c.OutputPath(name + extension)
}

// ProjectName returns the configured name or the directory name.
func (c *ContextAwareConfig) ProjectName() string {
	if c.Project.Name != "" {
		return c.Project.Name
	}
	abs, err := filepath.Abs(c.ProjectDir)
	if err != nil {
		return filepath.Base(c.ProjectDir)
	}
	return filepath.Base(abs)
}
