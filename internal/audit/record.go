// Package audit appends structured records of every administrative action to
// one or more logging backends. Backends fail independently of each other and
// of the primary action: a lost log line is a warning, never a rollback.
package audit

import (
	"context"
	"fmt"
	"time"
)

// Status is the outcome of the primary action.
type Status string

const (
	StatusSuccess Status = "Success"
	StatusFailed  Status = "Failed"
)

// Record is one audit log entry. Every mutating action produces exactly one
// record; the users-access report produces one per (user, repo) pair.
type Record struct {
	Timestamp    time.Time
	Action       string
	Organization string
	Team         string
	Repository   string
	User         string
	Permission   string
	AccessLevel  string
	Status       Status
	Notes        string
	RepoName     string
	RepoPrivate  bool
}

// TimeString renders the timestamp in the log's column format.
func (r Record) TimeString() string {
	return r.Timestamp.Format("2006-01-02 15:04:05")
}

// DefaultNotes derives note text from the action when none was supplied.
func (r Record) DefaultNotes() string {
	if r.Notes != "" {
		return r.Notes
	}
	switch r.Action {
	case "create-repo":
		return fmt.Sprintf("Repository '%s' created in organization '%s'", r.RepoName, r.Organization)
	case "add-user":
		return fmt.Sprintf("User '%s' added to team '%s'", r.User, r.Team)
	case "list-users-access":
		return fmt.Sprintf("Access audit for user '%s' in '%s'", r.User, r.Organization)
	case "delete-team":
		return fmt.Sprintf("Team '%s' deleted from organization '%s'", r.Team, r.Organization)
	}
	return ""
}

// Sink is an append-only audit backend. Append must never rewrite prior
// rows; repeated appends strictly grow the backend by one record each.
type Sink interface {
	Name() string
	Append(ctx context.Context, rec Record) error
}
