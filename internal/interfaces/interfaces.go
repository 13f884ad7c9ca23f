package interfaces

import (
	"context"

	"github.com/new-organization97/ghadmin/internal/models"
)

// GitHubClient defines the access-control operations the dispatcher needs.
type GitHubClient interface {
	ListOrgs(ctx context.Context) ([]models.Organization, error)
	ListTeams(ctx context.Context, org string) ([]models.Team, error)
	ListRepos(ctx context.Context, org string) ([]models.Repository, error)
	ListUsers(ctx context.Context, org string) ([]string, error)

	ResolveTeam(ctx context.Context, org string, name string) (*models.Team, error)

	CreateTeam(ctx context.Context, org string, name string, description string) error
	DeleteTeam(ctx context.Context, org string, slug string) error
	CreateRepo(ctx context.Context, org string, name string, private bool, description string) error
	DeleteRepo(ctx context.Context, org string, name string) error
	AttachTeamRepo(ctx context.Context, org string, slug string, repo string, permission string) error
	DetachTeamRepo(ctx context.Context, org string, slug string, repo string) error
	AddUserToTeam(ctx context.Context, org string, slug string, username string) error
	RemoveUserFromTeam(ctx context.Context, org string, slug string, username string) error

	ValidateUser(ctx context.Context, username string) error
	UserRepoAccess(ctx context.Context, org string, username string) ([]string, error)
	TeamMembershipActive(ctx context.Context, org string, slug string, username string) (bool, error)
	RepoPermission(ctx context.Context, org string, repo string, username string) (string, error)
}
