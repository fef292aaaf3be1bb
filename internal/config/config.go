// Package config loads ghscripts configuration using koanf.
// Configuration is loaded with priority: environment variables > project config
// (.ghscripts.yml, or legacy .ghscripts.json) > defaults. Runner inputs passed by
// workflow steps (ENVIRONMENT, BACKUP_SUCCESS, LINT_RESULTS, ...) are read
// verbatim from the environment; everything else uses the GHSCRIPTS_ prefix.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix marks tool settings in the environment.
const envPrefix = "GHSCRIPTS_"

// Configuration is the ghscripts configuration.
type Configuration struct {
	// Token authenticates GitHub API calls (GITHUB_TOKEN).
	Token string `koanf:"token"`
	// Repository is "owner/repo" (GITHUB_REPOSITORY).
	Repository string `koanf:"repository" validate:"omitempty,contains=/"`
	// APIURL selects a GitHub Enterprise Server endpoint (GITHUB_API_URL).
	APIURL string `koanf:"api_url" validate:"omitempty,url"`

	// RetentionDays is how long cleanup keeps workflow runs and artifacts.
	RetentionDays int `koanf:"retention_days" validate:"min=1"`
	// ReleaseLookback bounds how many releases are fetched to find the previous tag.
	ReleaseLookback int `koanf:"release_lookback" validate:"min=1"`

	Deploy      DeployConfig      `koanf:"deploy"`
	Maintenance MaintenanceConfig `koanf:"maintenance"`
	Review      ReviewConfig      `koanf:"review"`
}

// DeployConfig holds the inputs of the deployment notification.
type DeployConfig struct {
	Environment string `koanf:"environment"`
	JobStatus   string `koanf:"job_status"`
}

// MaintenanceConfig holds the results of the scheduled maintenance tasks.
type MaintenanceConfig struct {
	BackupSuccess      string `koanf:"backup_success"`
	CacheUpdateSuccess string `koanf:"cache_update_success"`
	CleanupResults     string `koanf:"cleanup_results"`
}

// ReviewConfig holds the tool outputs summarized in the review comment.
type ReviewConfig struct {
	LintResults     string `koanf:"lint_results"`
	CoverageResults string `koanf:"coverage_results"`
	SecurityResults string `koanf:"security_results"`
	SonarResults    string `koanf:"sonar_results"`
	HasIssues       string `koanf:"has_issues"`
}

// envKeys maps variables set by the runner or by workflow steps to config keys.
var envKeys = map[string]string{
	"GITHUB_TOKEN":         "token",
	"GITHUB_REPOSITORY":    "repository",
	"GITHUB_API_URL":       "api_url",
	"ENVIRONMENT":          "deploy.environment",
	"JOB_STATUS":           "deploy.job_status",
	"BACKUP_SUCCESS":       "maintenance.backup_success",
	"CACHE_UPDATE_SUCCESS": "maintenance.cache_update_success",
	"CLEANUP_RESULTS":      "maintenance.cleanup_results",
	"LINT_RESULTS":         "review.lint_results",
	"COVERAGE_RESULTS":     "review.coverage_results",
	"SECURITY_RESULTS":     "review.security_results",
	"SONAR_RESULTS":        "review.sonar_results",
	"HAS_ISSUES":           "review.has_issues",
}

// normalizeBools rewrites YAML/JSON booleans under the step-input keys to
// "true"/"false". Weak decoding would otherwise turn true into "1", and the
// scripts compare against the literal string "true".
func normalizeBools(k *koanf.Koanf) error {
	for _, key := range envKeys {
		b, ok := k.Get(key).(bool)
		if !ok {
			continue
		}
		if err := k.Set(key, strconv.FormatBool(b)); err != nil {
			return fmt.Errorf("normalizing %s: %w", key, err)
		}
	}
	return nil
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath overrides the project config path (default: .ghscripts.yml)
	ConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from the project file and the environment.
func Load(configPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ConfigPath: configPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	if err := loadProjectConfig(k, opts.ConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}
	if err := normalizeBools(k); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, sourceName(opts.ConfigPath)); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadProjectConfig loads the YAML config, or the legacy JSON config with a
// warning when no YAML config exists. An explicit path must exist.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("config file %s not found", customPath)
		}
		if strings.HasSuffix(customPath, ".json") {
			return loadJSONConfig(k, customPath)
		}
		return loadYAMLConfig(k, customPath)
	}

	yamlPath := ProjectConfigPath()
	legacyPath := LegacyProjectConfigPath()

	switch {
	case fileExists(yamlPath):
		if err := loadYAMLConfig(k, yamlPath); err != nil {
			return err
		}
		if fileExists(legacyPath) && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
		}
	case fileExists(legacyPath):
		if err := loadJSONConfig(k, legacyPath); err != nil {
			return err
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Rename it to %s and convert it to YAML.\n\n", yamlPath)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

func loadJSONConfig(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Unrelated variables map to "" and are skipped.
// Example: GHSCRIPTS_RETENTION_DAYS -> retention_days, LINT_RESULTS -> review.lint_results
func envTransform(s string) string {
	if key, ok := envKeys[s]; ok {
		return key
	}
	if name, ok := strings.CutPrefix(s, envPrefix); ok {
		return strings.ToLower(name)
	}
	return ""
}

func sourceName(configPath string) string {
	if configPath != "" {
		return configPath
	}
	return "config"
}
