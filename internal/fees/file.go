package fees

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a fees configuration from a .json, .yaml or .yml file.
func LoadConfig(path string) (FeesConfig, error) {
	var cfg FeesConfig
	if err := readFile(path, &cfg); err != nil {
		return FeesConfig{}, fmt.Errorf("load fees config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg in the format implied by the path extension.
func SaveConfig(path string, cfg FeesConfig) error {
	if err := writeFile(path, cfg); err != nil {
		return fmt.Errorf("save fees config: %w", err)
	}
	return nil
}

// LoadOverride reads a single month override, the source of a bulk apply.
func LoadOverride(path string) (MonthOverride, error) {
	var m MonthOverride
	if err := readFile(path, &m); err != nil {
		return MonthOverride{}, fmt.Errorf("load month override: %w", err)
	}
	return m, nil
}

// LoadAudit reads an audit entry written by SaveAudit.
func LoadAudit(path string) (AuditEntry, error) {
	var entry AuditEntry
	if err := readFile(path, &entry); err != nil {
		return AuditEntry{}, fmt.Errorf("load audit entry: %w", err)
	}
	return entry, nil
}

// SaveAudit writes an audit entry.
func SaveAudit(path string, entry AuditEntry) error {
	if err := writeFile(path, entry); err != nil {
		return fmt.Errorf("save audit entry: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func readFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isYAML(path) {
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse yaml %s: %w", path, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse json %s: %w", path, err)
	}
	return nil
}

func writeFile(path string, v any) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}
