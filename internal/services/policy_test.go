package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaricp/simple-short-links/internal/models"
)

func TestCanAccess(t *testing.T) {
	owner := &models.User{ID: 1, IsActive: true}
	stranger := &models.User{ID: 2, IsActive: true}
	admin := &models.User{ID: 3, IsActive: true, IsAdmin: true}
	link := &models.Link{ID: 10, OwnerID: 1}

	ops := []Operation{OpRead, OpWrite, OpDelete}
	for _, op := range ops {
		assert.True(t, CanAccess(owner, link, op), "owner %s", op)
		assert.False(t, CanAccess(stranger, link, op), "stranger %s", op)
		assert.True(t, CanAccess(admin, link, op), "admin %s", op)
	}

	assert.False(t, CanAccess(nil, link, OpRead))
	assert.False(t, CanAccess(owner, nil, OpRead))
}

func TestIsActiveAndAuthenticated(t *testing.T) {
	assert.True(t, IsActiveAndAuthenticated(&models.User{IsActive: true}))
	assert.False(t, IsActiveAndAuthenticated(&models.User{IsActive: false}))
	assert.False(t, IsActiveAndAuthenticated(nil))
}
