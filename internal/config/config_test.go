package config

import "testing"

func TestValidateConfig(t *testing.T) {
	valid := Config{
		GitHub: GitHubConfig{
			Organization: "example-org",
			Token:        "ghp_test",
		},
		Audit: AuditConfig{
			Workbook: WorkbookConfig{Enabled: true, Path: "logs/github_admin_log.xlsx"},
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}

	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid workbook-only config",
			cfg:     valid,
			wantErr: false,
		},
		{
			name: "missing token",
			cfg: func() Config {
				c := valid
				c.GitHub.Token = ""
				return c
			}(),
			wantErr: true,
		},
		{
			name: "token secret alone is enough",
			cfg: func() Config {
				c := valid
				c.GitHub.Token = ""
				c.GitHub.TokenSecret = "github/admin-token"
				return c
			}(),
			wantErr: false,
		},
		{
			name: "workbook enabled without path",
			cfg: func() Config {
				c := valid
				c.Audit.Workbook.Path = ""
				return c
			}(),
			wantErr: true,
		},
		{
			name: "sheets enabled without spreadsheet id",
			cfg: func() Config {
				c := valid
				c.Audit.Sheets = SheetsConfig{Enabled: true, Worksheet: "UserAccessLog", CredentialsFile: "/tmp/creds.json"}
				return c
			}(),
			wantErr: true,
		},
		{
			name: "sheets enabled without any credentials",
			cfg: func() Config {
				c := valid
				c.Audit.Sheets = SheetsConfig{Enabled: true, SpreadsheetID: "sheet-id", Worksheet: "UserAccessLog"}
				return c
			}(),
			wantErr: true,
		},
		{
			name: "fully configured sheets backend",
			cfg: func() Config {
				c := valid
				c.Audit.Sheets = SheetsConfig{
					Enabled:       true,
					SpreadsheetID: "sheet-id",
					Worksheet:     "UserAccessLog",
					CredentialsSecret: "google/service-account",
				}
				return c
			}(),
			wantErr: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(&tc.cfg)
			if tc.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateNilConfig(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
