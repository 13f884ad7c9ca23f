package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/new-organization97/ghadmin/internal/access"
	"github.com/new-organization97/ghadmin/internal/audit"
	"github.com/new-organization97/ghadmin/internal/github"
	"github.com/new-organization97/ghadmin/internal/interfaces"
)

// Dispatcher executes one action per invocation: validate parameters,
// resolve the team when the action is name-based, run the operation, append
// an audit record with the outcome.
type Dispatcher struct {
	client  interfaces.GitHubClient
	auditor *audit.Multi
	logger  *logrus.Logger
	out     io.Writer

	now func() time.Time
}

// NewDispatcher wires the dispatcher over a GitHub client and an audit
// fan-out. Reports are written to stdout.
func NewDispatcher(client interfaces.GitHubClient, auditor *audit.Multi, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		client:  client,
		auditor: auditor,
		logger:  logger,
		out:     os.Stdout,
		now:     time.Now,
	}
}

// Run executes the requested action to completion. A returned error means
// the invocation failed: bad input, failed resolution, or a failed remote
// call. List actions never fail; they report what they could fetch.
func (d *Dispatcher) Run(ctx context.Context, req Request) error {
	if err := Validate(req); err != nil {
		return err
	}

	log := d.logger.WithFields(logrus.Fields{
		"action": req.Action,
		"org":    req.Organization,
	})

	switch req.Action {
	case ActionListOrgs, ActionListTeams, ActionListRepos, ActionListUsers:
		return d.runList(ctx, req)
	case ActionUserAccess:
		return d.runUserAccess(ctx, req)
	case ActionListUsersAccess:
		return d.runUsersAccessReport(ctx, req)
	}

	// Every remaining action mutates remote state and is audited.
	rec := d.newRecord(req)

	if req.Action == ActionAddUser || req.Action == ActionRemoveUser {
		if err := d.client.ValidateUser(ctx, req.User); err != nil {
			if github.IsEmailInput(err) {
				return err
			}
			log.WithError(err).Error("user validation failed")
			rec.Status = audit.StatusFailed
			rec.Notes = github.ErrorMessage(err)
			d.auditor.Log(ctx, rec)
			return fmt.Errorf("validating user %q: %w", req.User, err)
		}
	}

	slug := ""
	if needsResolution(req.Action) {
		team, err := d.client.ResolveTeam(ctx, req.Organization, req.Team)
		if err != nil {
			log.WithField("team", req.Team).Warn("team not found")
			rec.Status = audit.StatusFailed
			rec.Notes = err.Error()
			d.auditor.Log(ctx, rec)
			return err
		}
		slug = team.Slug
	}

	err := d.mutate(ctx, req, slug)
	if err != nil {
		rec.Status = audit.StatusFailed
		rec.Notes = github.ErrorMessage(err)
	}
	d.auditor.Log(ctx, rec)
	if err != nil {
		log.WithError(err).Error("action failed")
		return err
	}
	log.Info("action completed")
	return nil
}

// needsResolution reports whether the action addresses a team by display
// name and so must resolve a slug first.
func needsResolution(action Action) bool {
	switch action {
	case ActionDeleteTeam, ActionAddRepo, ActionRemoveRepo, ActionAddUser, ActionRemoveUser:
		return true
	}
	return false
}

func (d *Dispatcher) mutate(ctx context.Context, req Request, slug string) error {
	switch req.Action {
	case ActionCreateTeam:
		return d.client.CreateTeam(ctx, req.Organization, req.Team, req.Description)
	case ActionDeleteTeam:
		return d.client.DeleteTeam(ctx, req.Organization, slug)
	case ActionAddRepo:
		return d.client.AttachTeamRepo(ctx, req.Organization, slug, req.Repository, req.Permission)
	case ActionRemoveRepo:
		return d.client.DetachTeamRepo(ctx, req.Organization, slug, req.Repository)
	case ActionAddUser:
		return d.client.AddUserToTeam(ctx, req.Organization, slug, req.User)
	case ActionRemoveUser:
		return d.client.RemoveUserFromTeam(ctx, req.Organization, slug, req.User)
	case ActionCreateRepo:
		return d.client.CreateRepo(ctx, req.Organization, req.RepoName, req.RepoPrivate, req.Description)
	case ActionDeleteRepo:
		return d.client.DeleteRepo(ctx, req.Organization, req.Repository)
	}
	return fmt.Errorf("unknown action %q", req.Action)
}

func (d *Dispatcher) newRecord(req Request) audit.Record {
	rec := audit.Record{
		Timestamp:    d.now(),
		Action:       string(req.Action),
		Organization: req.Organization,
		Team:         req.Team,
		Repository:   req.Repository,
		User:         req.User,
		Permission:   req.Permission,
		Status:       audit.StatusSuccess,
		RepoName:     req.RepoName,
		RepoPrivate:  req.RepoPrivate,
	}
	if req.Permission != "" {
		rec.AccessLevel = access.Describe(req.Permission)
	}
	rec.Notes = rec.DefaultNotes()
	return rec
}

// runUserAccess reports the repositories one user can reach and audits the
// lookup.
func (d *Dispatcher) runUserAccess(ctx context.Context, req Request) error {
	if err := d.client.ValidateUser(ctx, req.User); err != nil {
		if github.IsEmailInput(err) {
			return err
		}
		return fmt.Errorf("validating user %q: %w", req.User, err)
	}

	repos, err := d.client.UserRepoAccess(ctx, req.Organization, req.User)
	rec := d.newRecord(req)
	if err != nil {
		rec.Status = audit.StatusFailed
		rec.Notes = github.ErrorMessage(err)
		d.auditor.Log(ctx, rec)
		return fmt.Errorf("enumerating access of %q: %w", req.User, err)
	}
	rec.Notes = fmt.Sprintf("User '%s' has access to %d repositories", req.User, len(repos))
	d.auditor.Log(ctx, rec)

	if req.Verbose {
		d.renderUserAccess(req.User, repos)
	}
	return nil
}

// runUsersAccessReport walks every member of the organization and appends
// one record per (user, repo) pair, covering every repository: a user with
// no standing on a repo is recorded with permission "none", not omitted.
// Strictly sequential; for large organizations this is the known
// scalability ceiling.
func (d *Dispatcher) runUsersAccessReport(ctx context.Context, req Request) error {
	users, err := d.client.ListUsers(ctx, req.Organization)
	if err != nil {
		return fmt.Errorf("listing members: %w", err)
	}
	teams, err := d.client.ListTeams(ctx, req.Organization)
	if err != nil {
		return fmt.Errorf("listing teams: %w", err)
	}
	repos, err := d.client.ListRepos(ctx, req.Organization)
	if err != nil {
		return fmt.Errorf("listing repositories: %w", err)
	}

	log := d.logger.WithField("org", req.Organization)
	log.WithFields(logrus.Fields{
		"users": len(users),
		"repos": len(repos),
	}).Info("auditing organization access")

	var rows [][]string
	for _, user := range users {
		var memberships []string
		for _, team := range teams {
			active, err := d.client.TeamMembershipActive(ctx, req.Organization, team.Slug, user)
			if err != nil {
				log.WithError(err).WithFields(logrus.Fields{
					"user": user,
					"team": team.Slug,
				}).Debug("membership check failed")
				continue
			}
			if active {
				memberships = append(memberships, team.Name)
			}
		}
		teamList := "N/A"
		if len(memberships) > 0 {
			teamList = strings.Join(memberships, ", ")
		}

		for _, repo := range repos {
			permission, err := d.client.RepoPermission(ctx, req.Organization, repo.Name, user)
			if err != nil {
				permission = string(access.LevelNone)
			}
			rec := audit.Record{
				Timestamp:    d.now(),
				Action:       string(ActionListUsersAccess),
				Organization: req.Organization,
				Team:         teamList,
				Repository:   repo.Name,
				User:         user,
				Permission:   permission,
				AccessLevel:  access.Describe(permission),
				Status:       audit.StatusSuccess,
			}
			rec.Notes = rec.DefaultNotes()
			d.auditor.Log(ctx, rec)
			rows = append(rows, []string{user, teamList, repo.Name, permission})
		}
	}

	if req.Verbose {
		d.renderUsersAccess(req.Organization, rows)
	}
	return nil
}
