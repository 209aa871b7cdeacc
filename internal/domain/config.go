package domain

import (
	"fmt"
	"strings"
)

// DefaultApplicationHostPath is where IIS keeps its server-level configuration.
const DefaultApplicationHostPath = `%windir%\System32\inetsrv\config\applicationHost.config`

// DefaultHistoryDir is the run history directory, relative to the working directory.
const DefaultHistoryDir = ".iisaudit"

// ValidLogLevels enumerates the accepted log_level values.
var ValidLogLevels = []string{"DEBUG", "INFO", "WARN", "ERROR"}

// AuditConfig holds configuration loaded from iisaudit.yaml.
type AuditConfig struct {
	ApplicationHostPath string        `yaml:"applicationhost_path" json:"applicationhost_path,omitempty"`
	LogLevel            string        `yaml:"log_level"            json:"log_level,omitempty"`
	Output              OutputConfig  `yaml:"output"               json:"output"`
	Report              ReportConfig  `yaml:"report"               json:"report"`
	History             HistoryConfig `yaml:"history"              json:"history"`
}

// OutputConfig controls where default report names are placed.
type OutputConfig struct {
	BaseDir string `yaml:"base_dir" json:"base_dir,omitempty"`
}

// ReportConfig controls the CSV encoding.
type ReportConfig struct {
	UTF8BOM bool `yaml:"utf8_bom" json:"utf8_bom"`
}

// HistoryConfig controls the run history log.
// Enabled is a pointer so an absent key keeps the default.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Dir     string `yaml:"dir"               json:"dir,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() AuditConfig {
	return AuditConfig{
		ApplicationHostPath: DefaultApplicationHostPath,
		LogLevel:            "WARN",
		Output:              OutputConfig{BaseDir: "."},
		History:             HistoryConfig{Dir: DefaultHistoryDir},
	}
}

// HistoryEnabled reports whether runs should be recorded. Defaults to true.
func (c AuditConfig) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c AuditConfig) Validate() error {
	if c.LogLevel != "" {
		valid := false
		for _, lvl := range ValidLogLevels {
			if strings.EqualFold(c.LogLevel, lvl) {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown log_level %q (valid: %s)", c.LogLevel, strings.Join(ValidLogLevels, ", "))
		}
	}

	if strings.TrimSpace(c.ApplicationHostPath) == "" && c.ApplicationHostPath != "" {
		return fmt.Errorf("applicationhost_path must not be blank")
	}

	return nil
}

// WithDefaults fills unset fields from DefaultConfig. Explicit values win.
func (c AuditConfig) WithDefaults() AuditConfig {
	d := DefaultConfig()
	if c.ApplicationHostPath == "" {
		c.ApplicationHostPath = d.ApplicationHostPath
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	c.LogLevel = strings.ToUpper(c.LogLevel)
	if c.Output.BaseDir == "" {
		c.Output.BaseDir = d.Output.BaseDir
	}
	if c.History.Dir == "" {
		c.History.Dir = d.History.Dir
	}
	return c
}
