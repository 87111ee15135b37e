// Package authz holds the pure authorization predicates. They never
// touch storage or globals; the actor is resolved at the boundary and
// passed in, so tests can use synthetic users.
package authz

import (
	"timesheet/models"
)

type Scope string

const (
	ScopeOwn Scope = "OWN"
	ScopeAll Scope = "ALL"
)

func IsManager(actor *models.User) bool {
	return actor != nil && actor.IsManager()
}

// VisibleScope: managers see every entry, everyone else only their own.
func VisibleScope(actor *models.User) Scope {
	if IsManager(actor) {
		return ScopeAll
	}
	return ScopeOwn
}

// CanMutate: only the owning employee edits or deletes an entry.
// Managers have no edit/delete path, only the approval decision.
func CanMutate(actor *models.Employee, entry *models.Entry) bool {
	return actor != nil && entry != nil && entry.EmployeeID == actor.ID
}

func CanApprove(actor *models.User) bool {
	return IsManager(actor)
}
