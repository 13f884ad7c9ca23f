package dispatch

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	gh "github.com/google/go-github/v60/github"
	"github.com/sirupsen/logrus"

	"github.com/new-organization97/ghadmin/internal/audit"
	"github.com/new-organization97/ghadmin/internal/github"
	"github.com/new-organization97/ghadmin/internal/models"
)

func apiError() error {
	return &gh.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusUnprocessableEntity},
		Message:  "Validation Failed",
	}
}

type memorySink struct {
	mu      sync.Mutex
	records []audit.Record
}

func (s *memorySink) Name() string { return "memory" }

func (s *memorySink) Append(ctx context.Context, rec audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func newTestDispatcher(client *github.MockClient) (*Dispatcher, *memorySink, *bytes.Buffer) {
	sink := &memorySink{}
	logger := logrus.New()
	logger.SetOutput(new(bytes.Buffer))
	out := new(bytes.Buffer)
	d := NewDispatcher(client, audit.NewMulti(sink), logger)
	d.out = out
	d.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return d, sink, out
}

func TestValidateRequiredParams(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{name: "unknown action", req: Request{Action: "promote-user"}, wantErr: true},
		{name: "create-team complete", req: Request{Action: ActionCreateTeam, Organization: "example-org", Team: "eng"}},
		{name: "create-team without team", req: Request{Action: ActionCreateTeam, Organization: "example-org"}, wantErr: true},
		{name: "add-repo complete", req: Request{Action: ActionAddRepo, Organization: "example-org", Team: "eng", Repository: "svc", Permission: "push"}},
		{name: "add-repo without permission", req: Request{Action: ActionAddRepo, Organization: "example-org", Team: "eng", Repository: "svc"}, wantErr: true},
		{name: "add-repo bad permission", req: Request{Action: ActionAddRepo, Organization: "example-org", Team: "eng", Repository: "svc", Permission: "owner"}, wantErr: true},
		{name: "create-repo complete", req: Request{Action: ActionCreateRepo, Organization: "example-org", RepoName: "svc-api"}},
		{name: "list-orgs needs nothing", req: Request{Action: ActionListOrgs}},
		{name: "list-teams without org", req: Request{Action: ActionListTeams}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateTeamSuccessIsAudited(t *testing.T) {
	client := &github.MockClient{}
	d, sink, _ := newTestDispatcher(client)

	req := Request{Action: ActionCreateTeam, Organization: "example-org", Team: "platform-eng"}
	if err := d.Run(context.Background(), req); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	rec := sink.records[0]
	if rec.Action != "create-team" || rec.Status != audit.StatusSuccess {
		t.Fatalf("record = %+v", rec)
	}
	if rec.Team != "platform-eng" {
		t.Fatalf("record team = %q", rec.Team)
	}
}

func TestAddUserEmailAbortsBeforeNetwork(t *testing.T) {
	resolveCalls := 0
	addCalls := 0
	client := &github.MockClient{
		ValidateUserFunc: func(ctx context.Context, username string) error {
			return &github.EmailInputError{Input: username}
		},
		ResolveTeamFunc: func(ctx context.Context, org, name string) (*models.Team, error) {
			resolveCalls++
			return &models.Team{Name: name, Slug: "eng-team-1"}, nil
		},
		AddUserToTeamFunc: func(ctx context.Context, org, slug, username string) error {
			addCalls++
			return nil
		},
	}
	d, sink, _ := newTestDispatcher(client)

	req := Request{Action: ActionAddUser, Organization: "example-org", Team: "eng", User: "jdoe@example.com"}
	err := d.Run(context.Background(), req)
	if !github.IsEmailInput(err) {
		t.Fatalf("expected EmailInputError, got %v", err)
	}
	if resolveCalls != 0 || addCalls != 0 {
		t.Fatalf("remote calls after rejected input: resolve=%d add=%d", resolveCalls, addCalls)
	}
	if len(sink.records) != 0 {
		t.Fatalf("expected no records, got %d", len(sink.records))
	}
}

func TestDeleteTeamUnresolvedAbortsWithFailedRecord(t *testing.T) {
	deleteCalls := 0
	client := &github.MockClient{
		ResolveTeamFunc: func(ctx context.Context, org, name string) (*models.Team, error) {
			return nil, &github.TeamNotFoundError{Organization: org, Name: name}
		},
		DeleteTeamFunc: func(ctx context.Context, org, slug string) error {
			deleteCalls++
			return nil
		},
	}
	d, sink, _ := newTestDispatcher(client)

	req := Request{Action: ActionDeleteTeam, Organization: "example-org", Team: "ghost-team"}
	err := d.Run(context.Background(), req)
	if !github.IsTeamNotFound(err) {
		t.Fatalf("expected TeamNotFoundError, got %v", err)
	}
	if deleteCalls != 0 {
		t.Fatal("delete attempted after failed resolution")
	}
	if len(sink.records) != 1 || sink.records[0].Status != audit.StatusFailed {
		t.Fatalf("records = %+v", sink.records)
	}
}

func TestAddRepoResolvesThenAttaches(t *testing.T) {
	var gotSlug, gotPermission string
	client := &github.MockClient{
		ResolveTeamFunc: func(ctx context.Context, org, name string) (*models.Team, error) {
			return &models.Team{Name: "eng", Slug: "eng-team-1"}, nil
		},
		AttachTeamRepoFunc: func(ctx context.Context, org, slug, repo, permission string) error {
			gotSlug = slug
			gotPermission = permission
			return nil
		},
	}
	d, sink, _ := newTestDispatcher(client)

	req := Request{Action: ActionAddRepo, Organization: "example-org", Team: "eng", Repository: "svc", Permission: "push"}
	if err := d.Run(context.Background(), req); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if gotSlug != "eng-team-1" || gotPermission != "push" {
		t.Fatalf("attach called with slug=%q permission=%q", gotSlug, gotPermission)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	if sink.records[0].AccessLevel != "Write Access (Create, Read, Update, Delete Code)" {
		t.Fatalf("access level = %q", sink.records[0].AccessLevel)
	}
}

func TestMutationFailureIsAuditedAndReturned(t *testing.T) {
	client := &github.MockClient{
		CreateRepoFunc: func(ctx context.Context, org, name string, private bool, description string) error {
			return apiError()
		},
	}
	d, sink, _ := newTestDispatcher(client)

	req := Request{Action: ActionCreateRepo, Organization: "example-org", RepoName: "svc-api", RepoPrivate: true}
	if err := d.Run(context.Background(), req); err == nil {
		t.Fatal("expected failure")
	}
	if len(sink.records) != 1 || sink.records[0].Status != audit.StatusFailed {
		t.Fatalf("records = %+v", sink.records)
	}
	if sink.records[0].Notes == "" {
		t.Fatal("failure record should carry a note")
	}
}

func TestListTeamsRendersAndNeverFails(t *testing.T) {
	client := &github.MockClient{
		ListTeamsFunc: func(ctx context.Context, org string) ([]models.Team, error) {
			return []models.Team{{ID: 7, Name: "Platform Eng", Slug: "platform-eng"}}, nil
		},
	}
	d, sink, out := newTestDispatcher(client)

	req := Request{Action: ActionListTeams, Organization: "example-org", Verbose: true}
	if err := d.Run(context.Background(), req); err != nil {
		t.Fatalf("list action failed: %v", err)
	}
	if len(sink.records) != 0 {
		t.Fatalf("list action should not be audited, got %d records", len(sink.records))
	}
	rendered := out.String()
	if !bytes.Contains(out.Bytes(), []byte("platform-eng")) {
		t.Fatalf("report missing slug:\n%s", rendered)
	}
	if !bytes.Contains(out.Bytes(), []byte("Teams in example-org: 1")) {
		t.Fatalf("report missing summary:\n%s", rendered)
	}
}

func TestListTeamsFetchFailureDegradesToEmptyReport(t *testing.T) {
	client := &github.MockClient{
		ListTeamsFunc: func(ctx context.Context, org string) ([]models.Team, error) {
			return nil, apiError()
		},
	}
	d, _, out := newTestDispatcher(client)

	req := Request{Action: ActionListTeams, Organization: "example-org"}
	if err := d.Run(context.Background(), req); err != nil {
		t.Fatalf("list action must not fail, got %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("Teams in example-org: 0")) {
		t.Fatalf("expected empty summary, got:\n%s", out.String())
	}
}

func TestUsersAccessReportEmitsOneRecordPerPair(t *testing.T) {
	client := &github.MockClient{
		ListUsersFunc: func(ctx context.Context, org string) ([]string, error) {
			return []string{"jdoe", "asmith"}, nil
		},
		ListTeamsFunc: func(ctx context.Context, org string) ([]models.Team, error) {
			return []models.Team{{Name: "Platform Eng", Slug: "platform-eng"}}, nil
		},
		ListReposFunc: func(ctx context.Context, org string) ([]models.Repository, error) {
			return []models.Repository{{Name: "svc-api", Private: true}, {Name: "docs"}}, nil
		},
		TeamMembershipActiveFunc: func(ctx context.Context, org, slug, username string) (bool, error) {
			return username == "jdoe", nil
		},
		RepoPermissionFunc: func(ctx context.Context, org, repo, username string) (string, error) {
			if username == "jdoe" && repo == "svc-api" {
				return "push", nil
			}
			return "", &gh.ErrorResponse{
				Response: &http.Response{StatusCode: http.StatusNotFound},
				Message:  "Not Found",
			}
		},
	}
	d, sink, out := newTestDispatcher(client)

	req := Request{Action: ActionListUsersAccess, Organization: "example-org", Verbose: true}
	if err := d.Run(context.Background(), req); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	// Every (user, repo) pair is recorded, including those with no access.
	if len(sink.records) != 4 {
		t.Fatalf("expected one record per (user, repo) pair (4), got %d", len(sink.records))
	}
	byUser := map[string]int{}
	perms := map[string]string{}
	for _, rec := range sink.records {
		byUser[rec.User]++
		perms[rec.User+"/"+rec.Repository] = rec.Permission
		if rec.Action != "list-users-access" {
			t.Errorf("record action = %q", rec.Action)
		}
	}
	if byUser["jdoe"] != 2 || byUser["asmith"] != 2 {
		t.Fatalf("records per user = %v", byUser)
	}
	if perms["jdoe/svc-api"] != "push" {
		t.Errorf("jdoe/svc-api permission = %q", perms["jdoe/svc-api"])
	}
	if perms["jdoe/docs"] != "none" || perms["asmith/svc-api"] != "none" || perms["asmith/docs"] != "none" {
		t.Errorf("inaccessible pairs should be recorded as none: %v", perms)
	}
	for _, rec := range sink.records {
		switch rec.User {
		case "jdoe":
			if rec.Team != "Platform Eng" {
				t.Errorf("jdoe team list = %q", rec.Team)
			}
		case "asmith":
			if rec.Team != "N/A" {
				t.Errorf("asmith team list = %q", rec.Team)
			}
		}
	}
	rendered := out.String()
	for _, want := range []string{"Access pairs in example-org: 4", "jdoe", "asmith", "docs", "none"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Fatalf("report missing %q:\n%s", want, rendered)
		}
	}
}

func TestUsersAccessReportNotRenderedWithoutVerbose(t *testing.T) {
	client := &github.MockClient{
		ListUsersFunc: func(ctx context.Context, org string) ([]string, error) {
			return []string{"jdoe"}, nil
		},
		ListReposFunc: func(ctx context.Context, org string) ([]models.Repository, error) {
			return []models.Repository{{Name: "svc-api"}}, nil
		},
		RepoPermissionFunc: func(ctx context.Context, org, repo, username string) (string, error) {
			return "pull", nil
		},
	}
	d, sink, out := newTestDispatcher(client)

	req := Request{Action: ActionListUsersAccess, Organization: "example-org"}
	if err := d.Run(context.Background(), req); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output without verbose:\n%s", out.String())
	}
}

func TestUserAccessReportIsAuditedOnce(t *testing.T) {
	client := &github.MockClient{
		UserRepoAccessFunc: func(ctx context.Context, org, username string) ([]string, error) {
			return []string{"svc-api"}, nil
		},
	}
	d, sink, out := newTestDispatcher(client)

	req := Request{Action: ActionUserAccess, Organization: "example-org", User: "jdoe", Verbose: true}
	if err := d.Run(context.Background(), req); err != nil {
		t.Fatalf("user-access failed: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	if sink.records[0].Notes != "User 'jdoe' has access to 1 repositories" {
		t.Fatalf("notes = %q", sink.records[0].Notes)
	}
	if !bytes.Contains(out.Bytes(), []byte("svc-api")) {
		t.Fatalf("report missing repo:\n%s", out.String())
	}
}
