package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v60/github"
	"github.com/sirupsen/logrus"

	"github.com/new-organization97/ghadmin/internal/models"
)

// ListRepos lists all repositories in the organization.
func (c *Client) ListRepos(ctx context.Context, org string) ([]models.Repository, error) {
	if org == "" {
		return nil, fmt.Errorf("org is required")
	}

	opts := &github.RepositoryListByOrgOptions{ListOptions: github.ListOptions{PerPage: 100}}
	var result []models.Repository
	for {
		var (
			repos []*github.Repository
			resp  *github.Response
			err   error
		)
		err = retryTransient(ctx, func() error {
			repos, resp, err = c.repos.ListByOrg(ctx, org, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("listing repos: %w", err)
		}
		for _, repo := range repos {
			result = append(result, models.Repository{
				Name:        repo.GetName(),
				Private:     repo.GetPrivate(),
				Description: repo.GetDescription(),
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

// CreateRepo creates an organization repository. Issues, projects, and the
// wiki are enabled; visibility is fixed at creation and never mutated here.
func (c *Client) CreateRepo(ctx context.Context, org string, name string, private bool, description string) error {
	if org == "" || name == "" {
		return fmt.Errorf("org and repo name are required")
	}
	repo := &github.Repository{
		Name:        github.String(name),
		Private:     github.Bool(private),
		HasIssues:   github.Bool(true),
		HasProjects: github.Bool(true),
		HasWiki:     github.Bool(true),
	}
	if description != "" {
		repo.Description = github.String(description)
	}
	err := retryTransient(ctx, func() error {
		_, _, err := c.repos.Create(ctx, org, repo)
		return err
	})
	if err != nil {
		return fmt.Errorf("creating repo %q: %w", name, err)
	}
	return nil
}

// DeleteRepo deletes a repository. Irreversible; confirmation is the
// caller's responsibility.
func (c *Client) DeleteRepo(ctx context.Context, org string, name string) error {
	if org == "" || name == "" {
		return fmt.Errorf("org and repo name are required")
	}
	err := retryTransient(ctx, func() error {
		_, err := c.repos.Delete(ctx, org, name)
		return err
	})
	if err != nil {
		return fmt.Errorf("deleting repo %q: %w", name, err)
	}
	return nil
}

// UserRepoAccess returns the names of repositories where the user is a
// collaborator. One sequential probe per repository; for large organizations
// this is the known scalability ceiling of the tool.
func (c *Client) UserRepoAccess(ctx context.Context, org string, username string) ([]string, error) {
	repos, err := c.ListRepos(ctx, org)
	if err != nil {
		return nil, err
	}

	var accessible []string
	for _, repo := range repos {
		var isCollaborator bool
		err := retryTransient(ctx, func() error {
			var err error
			isCollaborator, _, err = c.repos.IsCollaborator(ctx, org, repo.Name, username)
			return err
		})
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"repo": repo.Name,
				"user": username,
			}).Debug("collaborator probe failed")
			continue
		}
		if isCollaborator {
			accessible = append(accessible, repo.Name)
		}
	}
	return accessible, nil
}

// RepoPermission returns the user's effective permission on a repository.
func (c *Client) RepoPermission(ctx context.Context, org string, repo string, username string) (string, error) {
	var level *github.RepositoryPermissionLevel
	err := retryTransient(ctx, func() error {
		var err error
		level, _, err = c.repos.GetPermissionLevel(ctx, org, repo, username)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("reading permission of %q on %q: %w", username, repo, err)
	}
	return level.GetPermission(), nil
}
