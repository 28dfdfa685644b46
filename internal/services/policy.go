package services

import "github.com/yaricp/simple-short-links/internal/models"

// Operation is what a subject wants to do with a link.
type Operation string

const (
	OpRead   Operation = "read"
	OpWrite  Operation = "write"
	OpDelete Operation = "delete"
)

// CanAccess is the single ownership rule applied to every link operation:
// admins touch anything, everyone else only their own links. The operation
// does not change the outcome today but stays in the signature so callers
// state their intent.
func CanAccess(user *models.User, link *models.Link, _ Operation) bool {
	if user == nil || link == nil {
		return false
	}
	return user.IsAdmin || link.OwnerID == user.ID
}

// IsActiveAndAuthenticated reports whether a user may act as a subject at
// all; inactive users count as unauthenticated.
func IsActiveAndAuthenticated(user *models.User) bool {
	return user != nil && user.IsActive
}
