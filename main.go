package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/new-organization97/ghadmin/cmd"
	"github.com/new-organization97/ghadmin/internal/audit"
	"github.com/new-organization97/ghadmin/internal/config"
	"github.com/new-organization97/ghadmin/internal/dispatch"
	"github.com/new-organization97/ghadmin/internal/github"
	"github.com/new-organization97/ghadmin/internal/log"
	"github.com/new-organization97/ghadmin/internal/secrets"
)

func main() {
	cmd.SetRunAction(runAction)
	cmd.Execute()
}

var runAction = func(ctx context.Context, cfg *config.Config, req dispatch.Request) error {
	githubToken := cfg.GitHub.Token
	if githubToken == "" {
		token, err := secrets.Resolve(cfg.GitHub.TokenSecret, "")
		if err != nil {
			return fmt.Errorf("github token: %w", err)
		}
		githubToken = token
	}

	githubClient, err := github.NewClient(githubToken)
	if err != nil {
		return err
	}

	auditor := audit.NewMulti(buildSinks(ctx, cfg)...)
	if auditor.Sinks() == 0 {
		logrus.Warn("no audit backend configured, actions will not be recorded")
	}

	logger := log.NewLogger(cfg.Log.Level, cfg.Log.Format)
	dispatcher := dispatch.NewDispatcher(githubClient, auditor, logger)
	return dispatcher.Run(ctx, req)
}

// buildSinks constructs the configured audit backends. A backend that fails
// to initialize is skipped with a warning; the action still runs and the
// remaining backends still record it.
func buildSinks(ctx context.Context, cfg *config.Config) []audit.Sink {
	var sinks []audit.Sink

	if cfg.Audit.Workbook.Enabled {
		sinks = append(sinks, audit.NewWorkbook(cfg.Audit.Workbook.Path))
	}

	if cfg.Audit.Sheets.Enabled {
		creds, err := secrets.Resolve(cfg.Audit.Sheets.CredentialsSecret, cfg.Audit.Sheets.CredentialsFile)
		if err != nil {
			logrus.WithError(err).Warn("google credentials unavailable, sheet logging disabled")
			return sinks
		}
		sheet, err := audit.NewSheet(ctx, []byte(creds), cfg.Audit.Sheets.SpreadsheetID, cfg.Audit.Sheets.Worksheet)
		if err != nil {
			logrus.WithError(err).Warn("sheet backend init failed, sheet logging disabled")
			return sinks
		}
		sinks = append(sinks, sheet)
	}
	return sinks
}
