package config

// Config holds all configuration for a single invocation.
type Config struct {
	GitHub GitHubConfig `json:"github"`
	Audit  AuditConfig  `json:"audit"`
	Log    LogConfig    `json:"log"`
}

// GitHubConfig holds GitHub API settings.
type GitHubConfig struct {
	Organization string `json:"organization"`
	Token        string `json:"-"`
	TokenSecret  string `json:"token_secret,omitempty"`
}

// AuditConfig holds audit logging backend settings.
type AuditConfig struct {
	Workbook WorkbookConfig `json:"workbook"`
	Sheets   SheetsConfig   `json:"sheets"`
}

// WorkbookConfig holds local XLSX log settings.
type WorkbookConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// SheetsConfig holds Google Sheets log settings.
type SheetsConfig struct {
	Enabled           bool   `json:"enabled"`
	SpreadsheetID     string `json:"spreadsheet_id"`
	Worksheet         string `json:"worksheet"`
	CredentialsFile   string `json:"credentials_file,omitempty"`
	CredentialsSecret string `json:"credentials_secret,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}
