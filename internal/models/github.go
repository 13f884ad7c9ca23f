package models

// Team is a GitHub team as returned by the teams listing API. The slug is
// the stable identifier used in every mutating call; the display name is
// what operators type on the command line.
type Team struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Repository is an organization repository.
type Repository struct {
	Name        string `json:"name"`
	Private     bool   `json:"private"`
	Description string `json:"description,omitempty"`
}

// Organization is an organization the authenticated user belongs to.
type Organization struct {
	Login string `json:"login"`
}

// UserAccess summarizes one user's standing in an organization: the teams
// they are an active member of and their effective permission on each repo.
type UserAccess struct {
	Username    string            `json:"username"`
	Teams       []string          `json:"teams"`
	Permissions map[string]string `json:"permissions"` // repo name → permission
}
