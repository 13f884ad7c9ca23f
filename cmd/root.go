package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/new-organization97/ghadmin/internal/config"
	"github.com/new-organization97/ghadmin/internal/dispatch"
	"github.com/new-organization97/ghadmin/internal/log"
)

var (
	cfgFile string

	flagAction      string
	flagOrg         string
	flagTeam        string
	flagRepo        string
	flagUser        string
	flagPermission  string
	flagDescription string
	flagRepoName    string
	flagRepoPrivate bool
	flagVerbose     bool
	flagGitHubToken string
	flagLogLevel    string
	flagLogFormat   string

	runAction func(ctx context.Context, cfg *config.Config, req dispatch.Request) error
)

// SetRunAction registers the action runner used by the CLI.
func SetRunAction(handler func(ctx context.Context, cfg *config.Config, req dispatch.Request) error) {
	runAction = handler
}

var rootCmd = &cobra.Command{
	Use:   "ghadmin",
	Short: "Administer GitHub organization teams, repositories, and user access",
	Long: `ghadmin reconciles GitHub organization state one action at a time:
team and repository lifecycle, team-repository attachments, team membership,
and access reports. Every action is appended to the configured audit logs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		overrideConfigFromFlags(cmd, cfg)
		if err := config.Validate(cfg); err != nil {
			return err
		}

		logger := log.NewLogger(cfg.Log.Level, cfg.Log.Format)
		logrus.SetFormatter(logger.Formatter)
		logrus.SetLevel(logger.Level)
		logrus.SetOutput(logger.Out)

		if runAction == nil {
			return fmt.Errorf("action runner is not configured")
		}

		req := dispatch.Request{
			Action:       dispatch.Action(flagAction),
			Organization: cfg.GitHub.Organization,
			Team:         flagTeam,
			Repository:   flagRepo,
			User:         flagUser,
			Permission:   flagPermission,
			Description:  flagDescription,
			RepoName:     flagRepoName,
			RepoPrivate:  flagRepoPrivate,
			Verbose:      flagVerbose,
		}
		return runAction(cmd.Context(), cfg, req)
	},
	SilenceUsage: true,
}

// Execute runs the CLI. Any failure exits non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&flagAction, "action", "", "Action to perform, e.g. create-team, add-repo, list-users-access")
	rootCmd.PersistentFlags().StringVar(&flagOrg, "org", "", "GitHub organization name")
	rootCmd.PersistentFlags().StringVar(&flagTeam, "team", "", "Team display name")
	rootCmd.PersistentFlags().StringVar(&flagRepo, "repo", "", "Repository name")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "GitHub username (not an email address)")
	rootCmd.PersistentFlags().StringVar(&flagPermission, "permission", "", "Permission level: pull, triage, push, maintain, admin")
	rootCmd.PersistentFlags().StringVar(&flagDescription, "description", "", "Description for created teams or repositories")
	rootCmd.PersistentFlags().StringVar(&flagRepoName, "repo-name", "", "Name for the repository to create")
	rootCmd.PersistentFlags().BoolVar(&flagRepoPrivate, "repo-private", false, "Create the repository as private")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print report tables to stdout")
	rootCmd.PersistentFlags().StringVar(&flagGitHubToken, "github-token", "", "GitHub Personal Access Token")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text, json, or pretty")

	_ = rootCmd.MarkPersistentFlagRequired("action")
}

func overrideConfigFromFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("org") {
		cfg.GitHub.Organization = flagOrg
	}
	if cmd.Flags().Changed("github-token") {
		cfg.GitHub.Token = flagGitHubToken
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = flagLogFormat
	}
}
