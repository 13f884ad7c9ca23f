package github

import (
	"context"

	"github.com/new-organization97/ghadmin/internal/models"
)

// MockClient is a simple mock implementation of the GitHub client.
type MockClient struct {
	ListOrgsFunc             func(ctx context.Context) ([]models.Organization, error)
	ListTeamsFunc            func(ctx context.Context, org string) ([]models.Team, error)
	ListReposFunc            func(ctx context.Context, org string) ([]models.Repository, error)
	ListUsersFunc            func(ctx context.Context, org string) ([]string, error)
	ResolveTeamFunc          func(ctx context.Context, org string, name string) (*models.Team, error)
	CreateTeamFunc           func(ctx context.Context, org string, name string, description string) error
	DeleteTeamFunc           func(ctx context.Context, org string, slug string) error
	CreateRepoFunc           func(ctx context.Context, org string, name string, private bool, description string) error
	DeleteRepoFunc           func(ctx context.Context, org string, name string) error
	AttachTeamRepoFunc       func(ctx context.Context, org string, slug string, repo string, permission string) error
	DetachTeamRepoFunc       func(ctx context.Context, org string, slug string, repo string) error
	AddUserToTeamFunc        func(ctx context.Context, org string, slug string, username string) error
	RemoveUserFromTeamFunc   func(ctx context.Context, org string, slug string, username string) error
	ValidateUserFunc         func(ctx context.Context, username string) error
	UserRepoAccessFunc       func(ctx context.Context, org string, username string) ([]string, error)
	TeamMembershipActiveFunc func(ctx context.Context, org string, slug string, username string) (bool, error)
	RepoPermissionFunc       func(ctx context.Context, org string, repo string, username string) (string, error)
}

func (m *MockClient) ListOrgs(ctx context.Context) ([]models.Organization, error) {
	if m.ListOrgsFunc == nil {
		return nil, nil
	}
	return m.ListOrgsFunc(ctx)
}

func (m *MockClient) ListTeams(ctx context.Context, org string) ([]models.Team, error) {
	if m.ListTeamsFunc == nil {
		return nil, nil
	}
	return m.ListTeamsFunc(ctx, org)
}

func (m *MockClient) ListRepos(ctx context.Context, org string) ([]models.Repository, error) {
	if m.ListReposFunc == nil {
		return nil, nil
	}
	return m.ListReposFunc(ctx, org)
}

func (m *MockClient) ListUsers(ctx context.Context, org string) ([]string, error) {
	if m.ListUsersFunc == nil {
		return nil, nil
	}
	return m.ListUsersFunc(ctx, org)
}

func (m *MockClient) ResolveTeam(ctx context.Context, org string, name string) (*models.Team, error) {
	if m.ResolveTeamFunc == nil {
		return nil, &TeamNotFoundError{Organization: org, Name: name}
	}
	return m.ResolveTeamFunc(ctx, org, name)
}

func (m *MockClient) CreateTeam(ctx context.Context, org string, name string, description string) error {
	if m.CreateTeamFunc == nil {
		return nil
	}
	return m.CreateTeamFunc(ctx, org, name, description)
}

func (m *MockClient) DeleteTeam(ctx context.Context, org string, slug string) error {
	if m.DeleteTeamFunc == nil {
		return nil
	}
	return m.DeleteTeamFunc(ctx, org, slug)
}

func (m *MockClient) CreateRepo(ctx context.Context, org string, name string, private bool, description string) error {
	if m.CreateRepoFunc == nil {
		return nil
	}
	return m.CreateRepoFunc(ctx, org, name, private, description)
}

func (m *MockClient) DeleteRepo(ctx context.Context, org string, name string) error {
	if m.DeleteRepoFunc == nil {
		return nil
	}
	return m.DeleteRepoFunc(ctx, org, name)
}

func (m *MockClient) AttachTeamRepo(ctx context.Context, org string, slug string, repo string, permission string) error {
	if m.AttachTeamRepoFunc == nil {
		return nil
	}
	return m.AttachTeamRepoFunc(ctx, org, slug, repo, permission)
}

func (m *MockClient) DetachTeamRepo(ctx context.Context, org string, slug string, repo string) error {
	if m.DetachTeamRepoFunc == nil {
		return nil
	}
	return m.DetachTeamRepoFunc(ctx, org, slug, repo)
}

func (m *MockClient) AddUserToTeam(ctx context.Context, org string, slug string, username string) error {
	if m.AddUserToTeamFunc == nil {
		return nil
	}
	return m.AddUserToTeamFunc(ctx, org, slug, username)
}

func (m *MockClient) RemoveUserFromTeam(ctx context.Context, org string, slug string, username string) error {
	if m.RemoveUserFromTeamFunc == nil {
		return nil
	}
	return m.RemoveUserFromTeamFunc(ctx, org, slug, username)
}

func (m *MockClient) ValidateUser(ctx context.Context, username string) error {
	if m.ValidateUserFunc == nil {
		return nil
	}
	return m.ValidateUserFunc(ctx, username)
}

func (m *MockClient) UserRepoAccess(ctx context.Context, org string, username string) ([]string, error) {
	if m.UserRepoAccessFunc == nil {
		return nil, nil
	}
	return m.UserRepoAccessFunc(ctx, org, username)
}

func (m *MockClient) TeamMembershipActive(ctx context.Context, org string, slug string, username string) (bool, error) {
	if m.TeamMembershipActiveFunc == nil {
		return false, nil
	}
	return m.TeamMembershipActiveFunc(ctx, org, slug, username)
}

func (m *MockClient) RepoPermission(ctx context.Context, org string, repo string, username string) (string, error) {
	if m.RepoPermissionFunc == nil {
		return "none", nil
	}
	return m.RepoPermissionFunc(ctx, org, repo, username)
}
