// Package dispatch maps a requested action to exactly one access-control
// operation. Validation and resolution run before any mutating call; one
// audit record is appended after the outcome is known.
package dispatch

import (
	"fmt"

	"github.com/new-organization97/ghadmin/internal/access"
)

// Action is one entry of the closed action set.
type Action string

const (
	ActionCreateTeam      Action = "create-team"
	ActionDeleteTeam      Action = "delete-team"
	ActionAddRepo         Action = "add-repo"
	ActionRemoveRepo      Action = "remove-repo"
	ActionAddUser         Action = "add-user"
	ActionRemoveUser      Action = "remove-user"
	ActionCreateRepo      Action = "create-repo"
	ActionDeleteRepo      Action = "delete-repo"
	ActionUserAccess      Action = "user-access"
	ActionListTeams       Action = "list-teams"
	ActionListRepos       Action = "list-repos"
	ActionListOrgs        Action = "list-orgs"
	ActionListUsers       Action = "list-users"
	ActionListUsersAccess Action = "list-users-access"
)

// Request carries the parameters of a single invocation.
type Request struct {
	Action       Action
	Organization string
	Team         string
	Repository   string
	User         string
	Permission   string
	Description  string
	RepoName     string
	RepoPrivate  bool
	Verbose      bool
}

// requiredParams lists, per action, which Request fields must be set.
var requiredParams = map[Action][]string{
	ActionCreateTeam:      {"org", "team"},
	ActionDeleteTeam:      {"org", "team"},
	ActionAddRepo:         {"org", "team", "repo", "permission"},
	ActionRemoveRepo:      {"org", "team", "repo"},
	ActionAddUser:         {"org", "team", "user"},
	ActionRemoveUser:      {"org", "team", "user"},
	ActionCreateRepo:      {"org", "repo-name"},
	ActionDeleteRepo:      {"org", "repo"},
	ActionUserAccess:      {"org", "user"},
	ActionListTeams:       {"org"},
	ActionListRepos:       {"org"},
	ActionListOrgs:        {},
	ActionListUsers:       {"org"},
	ActionListUsersAccess: {"org"},
}

// Validate checks that the action is known and every required parameter is
// present. It runs before any network call.
func Validate(req Request) error {
	params, ok := requiredParams[req.Action]
	if !ok {
		return fmt.Errorf("unknown action %q", req.Action)
	}

	values := map[string]string{
		"org":        req.Organization,
		"team":       req.Team,
		"repo":       req.Repository,
		"user":       req.User,
		"permission": req.Permission,
		"repo-name":  req.RepoName,
	}
	var missing []string
	for _, param := range params {
		if values[param] == "" {
			missing = append(missing, param)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("action %q requires: %v", req.Action, missing)
	}

	if req.Permission != "" && !access.Level(req.Permission).IsGrantable() {
		return fmt.Errorf("invalid permission %q, want one of %v", req.Permission, access.Grantable)
	}
	return nil
}
