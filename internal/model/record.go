// Package model contains domain types for the repodash application.
// These types are independent of any external GitHub library.
package model

import "time"

// Record is one repository's metric snapshot: the single row type of the
// dashboard grid. The repository name is the stable unique key for a
// record and must be unique within a snapshot.
type Record struct {
	Name          string `json:"name"`
	License       string `json:"license,omitempty"` // empty string means "no license"
	Collaborators int    `json:"collaborators"`
	Issues        int    `json:"issues"`
	PullRequests  int    `json:"pullRequests"`
	Forks         int    `json:"forks"`
	Watchers      int    `json:"watchers"`
	Discussions   int    `json:"discussions"`
	Projects      int    `json:"projects"`

	// Display-only fields, never sorted or filtered on.
	Private  bool      `json:"private,omitempty"`
	Archived bool      `json:"archived,omitempty"`
	HTMLURL  string    `json:"htmlUrl,omitempty"`
	PushedAt time.Time `json:"pushedAt,omitzero"`
}

// HasLicense reports whether the repository declares a license.
func (r Record) HasLicense() bool {
	return r.License != ""
}
