// Package types provides type definitions for structured data used throughout the voiceloop system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Scope identifies the (workspace, optional project) pair under which
// answers, examples and profiles are isolated.
type Scope struct {
	WorkspaceID string `json:"workspace_id"`
	ProjectID   string `json:"project_id,omitempty"`
}

// Key returns a stable string key for the scope, suitable for map lookups
// and per-scope locking.
func (s Scope) Key() string {
	if s.ProjectID == "" {
		return s.WorkspaceID
	}
	return s.WorkspaceID + "/" + s.ProjectID
}

// IsZero reports whether the scope has no workspace set.
func (s Scope) IsZero() bool {
	return s.WorkspaceID == ""
}
