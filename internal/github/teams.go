package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/sirupsen/logrus"

	"github.com/new-organization97/ghadmin/internal/models"
)

// ListTeams lists all teams in the organization.
func (c *Client) ListTeams(ctx context.Context, org string) ([]models.Team, error) {
	if org == "" {
		return nil, fmt.Errorf("org is required")
	}

	opts := &github.ListOptions{PerPage: 100}
	var result []models.Team
	for {
		var (
			teams []*github.Team
			resp  *github.Response
			err   error
		)
		err = retryTransient(ctx, func() error {
			teams, resp, err = c.teams.ListTeams(ctx, org, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("listing teams: %w", err)
		}
		for _, team := range teams {
			result = append(result, models.Team{
				ID:          team.GetID(),
				Name:        team.GetName(),
				Slug:        team.GetSlug(),
				Description: team.GetDescription(),
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

// ResolveTeam turns a team display name into the team record holding its
// slug. Matching is case-insensitive against the full team listing; there is
// no direct name-to-slug endpoint. The first match in listing order wins;
// further matches are reported as warnings.
func (c *Client) ResolveTeam(ctx context.Context, org string, name string) (*models.Team, error) {
	teams, err := c.ListTeams(ctx, org)
	if err != nil {
		logrus.WithError(err).WithField("org", org).Warn("team listing failed during resolution")
		return nil, &TeamNotFoundError{Organization: org, Name: name}
	}

	var match *models.Team
	for i := range teams {
		if !strings.EqualFold(teams[i].Name, name) {
			continue
		}
		if match == nil {
			match = &teams[i]
			continue
		}
		logrus.WithFields(logrus.Fields{
			"org":      org,
			"team":     name,
			"selected": match.Slug,
			"skipped":  teams[i].Slug,
		}).Warn("multiple teams match name case-insensitively; first listed wins")
	}
	if match == nil {
		return nil, &TeamNotFoundError{Organization: org, Name: name}
	}
	return match, nil
}

// CreateTeam creates a team with closed privacy. The remote may reject
// duplicate names; that surfaces as an ordinary failure.
func (c *Client) CreateTeam(ctx context.Context, org string, name string, description string) error {
	if org == "" || name == "" {
		return fmt.Errorf("org and team name are required")
	}
	team := github.NewTeam{Name: name, Privacy: github.String("closed")}
	if description != "" {
		team.Description = github.String(description)
	}
	err := retryTransient(ctx, func() error {
		_, _, err := c.teams.CreateTeam(ctx, org, team)
		return err
	})
	if err != nil {
		return fmt.Errorf("creating team %q: %w", name, err)
	}
	return nil
}

// DeleteTeam deletes a team by slug.
func (c *Client) DeleteTeam(ctx context.Context, org string, slug string) error {
	if org == "" || slug == "" {
		return fmt.Errorf("org and team slug are required")
	}
	err := retryTransient(ctx, func() error {
		_, err := c.teams.DeleteTeamBySlug(ctx, org, slug)
		return err
	})
	if err != nil {
		return fmt.Errorf("deleting team %q: %w", slug, err)
	}
	return nil
}

// AttachTeamRepo grants the team the given permission on a repository.
// Re-invocation with the same permission is a remote no-op.
func (c *Client) AttachTeamRepo(ctx context.Context, org string, slug string, repo string, permission string) error {
	if org == "" || slug == "" || repo == "" {
		return fmt.Errorf("org, team slug, and repo are required")
	}
	err := retryTransient(ctx, func() error {
		_, err := c.teams.AddTeamRepoBySlug(ctx, org, slug, org, repo, &github.TeamAddTeamRepoOptions{Permission: permission})
		return err
	})
	if err != nil {
		return fmt.Errorf("attaching team %q to repo %q: %w", slug, repo, err)
	}
	return nil
}

// DetachTeamRepo removes the team's access to a repository.
func (c *Client) DetachTeamRepo(ctx context.Context, org string, slug string, repo string) error {
	if org == "" || slug == "" || repo == "" {
		return fmt.Errorf("org, team slug, and repo are required")
	}
	err := retryTransient(ctx, func() error {
		_, err := c.teams.RemoveTeamRepoBySlug(ctx, org, slug, org, repo)
		return err
	})
	if err != nil {
		return fmt.Errorf("detaching team %q from repo %q: %w", slug, repo, err)
	}
	return nil
}

// AddUserToTeam adds a user to the team. ValidateUser must run first.
func (c *Client) AddUserToTeam(ctx context.Context, org string, slug string, username string) error {
	if org == "" || slug == "" || username == "" {
		return fmt.Errorf("org, team slug, and username are required")
	}
	err := retryTransient(ctx, func() error {
		_, _, err := c.teams.AddTeamMembershipBySlug(ctx, org, slug, username, nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("adding user %q to team %q: %w", username, slug, err)
	}
	return nil
}

// RemoveUserFromTeam removes a user from the team.
func (c *Client) RemoveUserFromTeam(ctx context.Context, org string, slug string, username string) error {
	if org == "" || slug == "" || username == "" {
		return fmt.Errorf("org, team slug, and username are required")
	}
	err := retryTransient(ctx, func() error {
		_, err := c.teams.RemoveTeamMembershipBySlug(ctx, org, slug, username)
		return err
	})
	if err != nil {
		return fmt.Errorf("removing user %q from team %q: %w", username, slug, err)
	}
	return nil
}

// TeamMembershipActive reports whether the user is an active member of the
// team. A missing membership is not an error.
func (c *Client) TeamMembershipActive(ctx context.Context, org string, slug string, username string) (bool, error) {
	var membership *github.Membership
	err := retryTransient(ctx, func() error {
		var err error
		membership, _, err = c.teams.GetTeamMembershipBySlug(ctx, org, slug, username)
		return err
	})
	if err != nil {
		if Classify(err) == FailureNotFound {
			return false, nil
		}
		return false, fmt.Errorf("checking membership of %q in team %q: %w", username, slug, err)
	}
	return membership.GetState() == "active", nil
}
