package access

import (
	"fmt"
	"strings"
)

// Level is a repository permission keyword as used by the GitHub API.
type Level string

const (
	LevelPull     Level = "pull"
	LevelTriage   Level = "triage"
	LevelPush     Level = "push"
	LevelMaintain Level = "maintain"
	LevelAdmin    Level = "admin"
	LevelNone     Level = "none"
)

// Grantable lists the permission levels an operator may assign to a team.
// "none" is only ever reported, never granted.
var Grantable = []Level{LevelPull, LevelTriage, LevelPush, LevelMaintain, LevelAdmin}

var descriptions = map[Level]string{
	LevelAdmin:    "Full Access - Admin (Create, Read, Update, Delete, Manage Settings)",
	LevelMaintain: "Maintain Access (Create, Read, Update, Delete, Manage Issues/PRs)",
	LevelPush:     "Write Access (Create, Read, Update, Delete Code)",
	LevelTriage:   "Triage Access (Read, Manage Issues/PRs)",
	LevelPull:     "Read Access (Clone, Pull, View)",
	LevelNone:     "No Access",
}

// Describe converts a raw permission string to a human-readable access level
// description. Matching is case-insensitive; unrecognized input yields a
// generic description embedding the original string verbatim.
func Describe(permission string) string {
	if desc, ok := descriptions[Level(strings.ToLower(permission))]; ok {
		return desc
	}
	return fmt.Sprintf("Unknown Access Level (%s)", permission)
}

// IsGrantable reports whether the permission is one an operator may assign.
func (l Level) IsGrantable() bool {
	switch Level(strings.ToLower(string(l))) {
	case LevelPull, LevelTriage, LevelPush, LevelMaintain, LevelAdmin:
		return true
	}
	return false
}

// Color is an RGB triple in the 0..1 range, matching the Sheets API.
type Color struct {
	Red   float64
	Green float64
	Blue  float64
}

var cellColors = map[Level]Color{
	LevelAdmin:    {Red: 1.0, Green: 0.6, Blue: 0.6},
	LevelMaintain: {Red: 1.0, Green: 0.8, Blue: 0.6},
	LevelPush:     {Red: 1.0, Green: 1.0, Blue: 0.6},
	LevelTriage:   {Red: 0.8, Green: 0.9, Blue: 1.0},
	LevelPull:     {Red: 0.8, Green: 1.0, Blue: 0.8},
	LevelNone:     {Red: 0.9, Green: 0.9, Blue: 0.9},
}

// CellColor returns the severity color for a permission, used by the sheet
// audit backend. The second return is false for unrecognized permissions.
func CellColor(permission string) (Color, bool) {
	c, ok := cellColors[Level(strings.ToLower(permission))]
	return c, ok
}
