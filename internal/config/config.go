package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/becastil/costdash/internal/normalize"

	"gopkg.in/yaml.v3"
)

// DSNEnv is the environment variable consulted when --dsn is not given.
const DSNEnv = "COSTDASH_DB_URL"

// Config holds all runtime configuration for a costload run.
type Config struct {
	DSN         string
	BudgetPath  string
	ClaimsPath  string
	Sheet       string // xlsx sheet name; first sheet when empty
	LogFormat   string // "text" or "json"
	Force       bool
	AllowErrors bool // stage uploads that carry error-severity issues
	OutDir      string

	// Extra header aliases per canonical field, merged over the built-in tables.
	BudgetAliases  map[string][]string `yaml:"budget_aliases"`
	ClaimsAliases  map[string][]string `yaml:"claims_aliases"`
	MaxRangeMonths int                 `yaml:"max_range_months"`

	Bulk BulkConfig
}

// BulkConfig holds the flags of the bulk-apply and rollback commands.
type BulkConfig struct {
	FeesPath       string
	SourcePath     string // month override to apply; the fees config base when empty
	EnrollmentPath string
	AuditID        string
	StartMonth     string
	EndMonth       string
	Duration       int // 0 when not given
	Policy         string
	Components     []string
	Missing        string
	Execute        bool
	OutPath        string
	AuditPath      string
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	BudgetAliases  map[string][]string `yaml:"budget_aliases"`
	ClaimsAliases  map[string][]string `yaml:"claims_aliases"`
	MaxRangeMonths int                 `yaml:"max_range_months"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if yc.MaxRangeMonths < 0 {
		return fmt.Errorf("max_range_months must not be negative, got %d", yc.MaxRangeMonths)
	}
	c.BudgetAliases = yc.BudgetAliases
	c.ClaimsAliases = yc.ClaimsAliases
	if yc.MaxRangeMonths > 0 {
		c.MaxRangeMonths = yc.MaxRangeMonths
	}
	return c.validateAliases()
}

// validateAliases checks that every alias key names a canonical field.
func (c *Config) validateAliases() error {
	for _, field := range sortedFields(c.BudgetAliases) {
		if _, ok := normalize.BudgetTable.Field(field); !ok {
			return fmt.Errorf("unknown budget field %q in budget_aliases", field)
		}
	}
	for _, field := range sortedFields(c.ClaimsAliases) {
		if _, ok := normalize.ClaimsTable.Field(field); !ok {
			return fmt.Errorf("unknown claims field %q in claims_aliases", field)
		}
	}
	return nil
}

func sortedFields(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.BudgetPath == "" {
		return fmt.Errorf("--budget is required")
	}
	if c.ClaimsPath == "" {
		return fmt.Errorf("--claims is required")
	}
	for _, p := range []string{c.BudgetPath, c.ClaimsPath} {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("file not accessible: %w", err)
		}
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or %s is required", DSNEnv)
	}
	return nil
}
