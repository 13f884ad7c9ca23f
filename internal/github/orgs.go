package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v60/github"

	"github.com/new-organization97/ghadmin/internal/models"
)

// ListOrgs lists the organizations the authenticated user belongs to.
func (c *Client) ListOrgs(ctx context.Context) ([]models.Organization, error) {
	opts := &github.ListOrgMembershipsOptions{ListOptions: github.ListOptions{PerPage: 100}}
	var result []models.Organization
	for {
		var (
			memberships []*github.Membership
			resp        *github.Response
			err         error
		)
		err = retryTransient(ctx, func() error {
			memberships, resp, err = c.orgs.ListOrgMemberships(ctx, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("listing org memberships: %w", err)
		}
		for _, m := range memberships {
			if org := m.GetOrganization(); org != nil {
				result = append(result, models.Organization{Login: org.GetLogin()})
			}
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

// ListUsers lists the usernames of the organization's members.
func (c *Client) ListUsers(ctx context.Context, org string) ([]string, error) {
	if org == "" {
		return nil, fmt.Errorf("org is required")
	}

	opts := &github.ListMembersOptions{ListOptions: github.ListOptions{PerPage: 100}}
	var result []string
	for {
		var (
			users []*github.User
			resp  *github.Response
			err   error
		)
		err = retryTransient(ctx, func() error {
			users, resp, err = c.orgs.ListMembers(ctx, org, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("listing members: %w", err)
		}
		for _, user := range users {
			result = append(result, user.GetLogin())
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}
