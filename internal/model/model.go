// Package model defines the domain models for workreport.
package model

import "strings"

// Record is implemented by the pointer types of every stored collection.
type Record interface {
	GetID() string
}

// Storage keys. Each key holds one JSON document: an array of records for
// the collections, an object for the design settings.
const (
	KeyWorkReports    = "workReports"
	KeyColleagues     = "colleagues"
	KeyWorksites      = "worksites"
	KeyProjects       = "projects"
	KeyDesignSettings = "designSettings"
)

// CollectionKeys lists every persisted key in a stable order.
var CollectionKeys = []string{
	KeyWorkReports,
	KeyColleagues,
	KeyWorksites,
	KeyProjects,
	KeyDesignSettings,
}

// containsFold reports whether any of fields contains query, ignoring case.
// An empty query matches everything.
func containsFold(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
