package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/new-organization97/ghadmin/internal/config"
)

func TestBuildSinksWorkbookOnly(t *testing.T) {
	cfg := &config.Config{}
	cfg.Audit.Workbook.Enabled = true
	cfg.Audit.Workbook.Path = filepath.Join(t.TempDir(), "audit.xlsx")

	sinks := buildSinks(context.Background(), cfg)
	if len(sinks) != 1 {
		t.Fatalf("expected 1 sink, got %d", len(sinks))
	}
	if sinks[0].Name() != "workbook" {
		t.Fatalf("sink name = %q", sinks[0].Name())
	}
}

func TestBuildSinksNoneConfigured(t *testing.T) {
	sinks := buildSinks(context.Background(), &config.Config{})
	if len(sinks) != 0 {
		t.Fatalf("expected no sinks, got %d", len(sinks))
	}
}

func TestBuildSinksSheetWithoutCredentialsIsSkipped(t *testing.T) {
	cfg := &config.Config{}
	cfg.Audit.Sheets.Enabled = true
	cfg.Audit.Sheets.SpreadsheetID = "sheet-id"
	cfg.Audit.Sheets.Worksheet = "UserAccessLog"
	cfg.Audit.Sheets.CredentialsFile = filepath.Join(t.TempDir(), "absent.json")

	sinks := buildSinks(context.Background(), cfg)
	if len(sinks) != 0 {
		t.Fatalf("expected sheet sink to be skipped, got %d sinks", len(sinks))
	}
}
