package config

import (
	"fmt"
	"strings"
)

// Validate ensures configuration is complete and well-formed. The token is
// checked here so that a missing credential aborts before any operation runs.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var errs []string

	requireNonEmpty := func(value string, field string) {
		if value == "" {
			errs = append(errs, fmt.Sprintf("%s is required", field))
		}
	}

	if cfg.GitHub.Token == "" && cfg.GitHub.TokenSecret == "" {
		errs = append(errs, "github token is required (GITHUB_TOKEN or GITHUB_TOKEN_SECRET)")
	}

	if cfg.Audit.Workbook.Enabled {
		requireNonEmpty(cfg.Audit.Workbook.Path, "audit.workbook.path")
	}

	if cfg.Audit.Sheets.Enabled {
		requireNonEmpty(cfg.Audit.Sheets.SpreadsheetID, "audit.sheets.spreadsheet_id")
		requireNonEmpty(cfg.Audit.Sheets.Worksheet, "audit.sheets.worksheet")
		if cfg.Audit.Sheets.CredentialsFile == "" && cfg.Audit.Sheets.CredentialsSecret == "" {
			errs = append(errs, "audit.sheets requires credentials_file or credentials_secret")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
