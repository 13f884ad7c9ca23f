package dispatch

import (
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// runList fetches and renders a collection. A fetch failure degrades to an
// empty report with a warning; list actions never fail the invocation.
func (d *Dispatcher) runList(ctx context.Context, req Request) error {
	table := tablewriter.NewWriter(d.out)

	switch req.Action {
	case ActionListOrgs:
		orgs, err := d.client.ListOrgs(ctx)
		if err != nil {
			d.logger.WithError(err).Warn("listing organizations failed")
		}
		table.SetHeader([]string{"Organization"})
		for _, org := range orgs {
			table.Append([]string{org.Login})
		}
		fmt.Fprintf(d.out, "Organizations: %d\n", len(orgs))

	case ActionListTeams:
		teams, err := d.client.ListTeams(ctx, req.Organization)
		if err != nil {
			d.logger.WithError(err).Warn("listing teams failed")
		}
		table.SetHeader([]string{"Name", "Slug", "ID"})
		for _, team := range teams {
			table.Append([]string{team.Name, team.Slug, strconv.FormatInt(team.ID, 10)})
		}
		fmt.Fprintf(d.out, "Teams in %s: %d\n", req.Organization, len(teams))

	case ActionListRepos:
		repos, err := d.client.ListRepos(ctx, req.Organization)
		if err != nil {
			d.logger.WithError(err).Warn("listing repositories failed")
		}
		table.SetHeader([]string{"Repository", "Visibility"})
		for _, repo := range repos {
			visibility := "public"
			if repo.Private {
				visibility = "private"
			}
			table.Append([]string{repo.Name, visibility})
		}
		fmt.Fprintf(d.out, "Repositories in %s: %d\n", req.Organization, len(repos))

	case ActionListUsers:
		users, err := d.client.ListUsers(ctx, req.Organization)
		if err != nil {
			d.logger.WithError(err).Warn("listing members failed")
		}
		table.SetHeader([]string{"Username"})
		for _, user := range users {
			table.Append([]string{user})
		}
		fmt.Fprintf(d.out, "Members of %s: %d\n", req.Organization, len(users))
	}

	if req.Verbose {
		table.Render()
	}
	return nil
}

// renderUserAccess prints the per-repo access table for one user.
func (d *Dispatcher) renderUserAccess(user string, repos []string) {
	table := tablewriter.NewWriter(d.out)
	table.SetHeader([]string{"Repository", "User"})
	for _, repo := range repos {
		table.Append([]string{repo, user})
	}
	fmt.Fprintf(d.out, "Repositories accessible to %s: %d\n", user, len(repos))
	table.Render()
}

// renderUsersAccess prints the full user x repo permission matrix.
func (d *Dispatcher) renderUsersAccess(org string, rows [][]string) {
	table := tablewriter.NewWriter(d.out)
	table.SetHeader([]string{"User", "Teams", "Repository", "Permission"})
	for _, row := range rows {
		table.Append(row)
	}
	fmt.Fprintf(d.out, "Access pairs in %s: %d\n", org, len(rows))
	table.Render()
}
