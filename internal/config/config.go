package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from file, environment variables, and defaults.
// A .env file in the working directory is honored when present.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("audit.workbook.enabled", true)
	v.SetDefault("audit.workbook.path", "logs/github_admin_log.xlsx")
	v.SetDefault("audit.sheets.enabled", false)
	v.SetDefault("audit.sheets.worksheet", "UserAccessLog")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("github.organization", "GITHUB_ORG")
	_ = v.BindEnv("github.token", "GITHUB_TOKEN")
	_ = v.BindEnv("github.token_secret", "GITHUB_TOKEN_SECRET")
	_ = v.BindEnv("audit.workbook.enabled", "AUDIT_WORKBOOK_ENABLED")
	_ = v.BindEnv("audit.workbook.path", "AUDIT_WORKBOOK_PATH")
	_ = v.BindEnv("audit.sheets.enabled", "AUDIT_SHEETS_ENABLED")
	_ = v.BindEnv("audit.sheets.spreadsheet_id", "GOOGLE_SHEET_ID")
	_ = v.BindEnv("audit.sheets.worksheet", "GOOGLE_SHEET_WORKSHEET")
	_ = v.BindEnv("audit.sheets.credentials_file", "GOOGLE_CREDS_PATH")
	_ = v.BindEnv("audit.sheets.credentials_secret", "GOOGLE_CREDENTIALS_SECRET")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	// Explicitly map values to avoid tag mismatch issues.
	cfg.GitHub.Organization = v.GetString("github.organization")
	cfg.GitHub.Token = v.GetString("github.token")
	cfg.GitHub.TokenSecret = v.GetString("github.token_secret")

	cfg.Audit.Workbook.Enabled = v.GetBool("audit.workbook.enabled")
	cfg.Audit.Workbook.Path = v.GetString("audit.workbook.path")
	cfg.Audit.Sheets.Enabled = v.GetBool("audit.sheets.enabled")
	cfg.Audit.Sheets.SpreadsheetID = v.GetString("audit.sheets.spreadsheet_id")
	cfg.Audit.Sheets.Worksheet = v.GetString("audit.sheets.worksheet")
	cfg.Audit.Sheets.CredentialsFile = v.GetString("audit.sheets.credentials_file")
	cfg.Audit.Sheets.CredentialsSecret = v.GetString("audit.sheets.credentials_secret")

	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	return cfg, nil
}
