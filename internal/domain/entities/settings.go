package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const defaultIndexURL = "https://pypi.org"

// Settings is the top-level configuration for reqlint.
type Settings struct {
	Rules      map[string]bool `yaml:"rules"`       // Per-rule enable/disable; missing means enabled
	Ignore     []string        `yaml:"ignore"`      // Package names exempt from all rules
	IndexURL   string          `yaml:"index_url"`   // Package index base URL, ${ENV_VAR} expanded
	PolicyFile string          `yaml:"policy_file"` // Path to the version policy file
	Strict     bool            `yaml:"strict"`      // Promote warnings to errors
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the configuration used when no config file is
// present. All rules enabled, public PyPI as the index.
func DefaultSettings() *Settings {
	return &Settings{
		Rules:    map[string]bool{},
		IndexURL: defaultIndexURL,
	}
}

// NewSettings reads and parses a configuration file, expanding
// environment variable references in the index URL.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.IndexURL = expandEnv(settings.IndexURL)
	if settings.IndexURL == "" {
		settings.IndexURL = defaultIndexURL
	}
	settings.IndexURL = strings.TrimSuffix(settings.IndexURL, "/")

	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".reqlint.yaml",
		".reqlint.yml",
		"reqlint.yaml",
		"reqlint.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// RuleEnabled returns true unless the rule was explicitly disabled.
func (s *Settings) RuleEnabled(rule string) bool {
	if s.Rules == nil {
		return true
	}
	enabled, configured := s.Rules[rule]
	return !configured || enabled
}

// IsIgnored returns true when the package is exempt from linting
// (normalized comparison).
func (s *Settings) IsIgnored(name string) bool {
	normalized := NormalizeName(name)
	for _, ignored := range s.Ignore {
		if NormalizeName(ignored) == normalized {
			return true
		}
	}
	return false
}

// expandEnv resolves ${ENV_VAR} references in a configuration value.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}
