package privacy

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Rule describes one masking pattern applied to report text before it is
// stored or forwarded to external services.
type Rule struct {
	Name    string `yaml:"name" json:"name"`
	Type    string `yaml:"type" json:"type"`
	Pattern string `yaml:"pattern" json:"pattern"`
	Mask    string `yaml:"mask" json:"mask"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

type RulesConfig struct {
	Rules []Rule `yaml:"rules" json:"rules"`
}

// LoadRules reads the masking rules from a YAML file. An empty path selects
// the built-in lab-report rule set.
func LoadRules(path string) (RulesConfig, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultRules(), err
	}

	var cfg RulesConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return RulesConfig{}, err
	}
	if len(cfg.Rules) == 0 {
		return RulesConfig{}, errors.New("no masking rules configured")
	}
	return cfg, nil
}

// DefaultRules covers the identifiers printed on the header block of a
// typical laboratory report.
func DefaultRules() RulesConfig {
	return RulesConfig{Rules: []Rule{
		{Name: "Patient Name", Type: "name", Pattern: `(?im)^(patient(?:\s+name)?|name)\s*[:=]\s*.+$`, Mask: "$1: [REDACTED]", Enabled: true},
		{Name: "Medical Record Number", Type: "mrn", Pattern: `(?i)\bMRN[:\s#]*\d{6,10}\b`, Mask: "MRN: [REDACTED]", Enabled: true},
		{Name: "Date of Birth", Type: "dob", Pattern: `(?i)\b(?:dob|date of birth)\s*[:=]?\s*\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`, Mask: "DOB: [REDACTED]", Enabled: true},
		{Name: "Phone", Type: "phone", Pattern: `\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b|\(\d{3}\)\s?\d{3}-\d{4}`, Mask: "(***) ***-****", Enabled: true},
		{Name: "Email", Type: "email", Pattern: `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`, Mask: "***@***", Enabled: true},
	}}
}
