package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yaricp/simple-short-links/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Named in-memory database so the whole connection pool sees one store
	// while tests stay isolated from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Link{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, admin bool) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		IsActive: true,
		IsAdmin:  admin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLinkRepoCRUD(t *testing.T) {
	db := setupTestDB(t)
	links := NewLinkRepo(db)
	owner := createUser(t, db, "alice", false)
	ctx := context.Background()

	link := &models.Link{
		Text:      "http://example.com/a",
		ShortText: "abc123",
		Expired:   time.Now().UTC().AddDate(0, 0, 1),
		OwnerID:   owner.ID,
	}
	require.NoError(t, links.Create(ctx, link))
	assert.NotZero(t, link.ID)

	byText, err := links.FindByText(ctx, "http://example.com/a")
	assert.NoError(t, err)
	assert.Equal(t, link.ID, byText.ID)

	byCode, err := links.FindByShortCode(ctx, "abc123")
	assert.NoError(t, err)
	assert.Equal(t, link.ID, byCode.ID)

	_, err = links.FindByText(ctx, "http://example.com/missing")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := links.GetByID(ctx, link.ID)
	assert.NoError(t, err)
	assert.Equal(t, "http://example.com/a", got.Text)

	newExpiry := time.Now().UTC().AddDate(0, 0, 7)
	updated, err := links.Update(ctx, link.ID, map[string]any{
		"short_text": "custom",
		"expired":    newExpiry,
	})
	assert.NoError(t, err)
	assert.Equal(t, "custom", updated.ShortText)

	_, err = links.Update(ctx, 9999, map[string]any{"short_text": "nope"})
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := links.Delete(ctx, link.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = links.Delete(ctx, link.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestLinkRepoListScoping(t *testing.T) {
	db := setupTestDB(t)
	links := NewLinkRepo(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)

	for i := 0; i < 3; i++ {
		require.NoError(t, links.Create(ctx, &models.Link{
			Text:      fmt.Sprintf("http://a.example/%d", i),
			ShortText: fmt.Sprintf("a%d", i),
			Expired:   time.Now().UTC().AddDate(0, 0, 1),
			OwnerID:   alice.ID,
		}))
	}
	require.NoError(t, links.Create(ctx, &models.Link{
		Text:      "http://b.example/0",
		ShortText: "b0",
		Expired:   time.Now().UTC().AddDate(0, 0, 1),
		OwnerID:   bob.ID,
	}))

	all, err := links.List(ctx, nil, 0, 100)
	assert.NoError(t, err)
	assert.Len(t, all, 4)

	mine, err := links.List(ctx, &alice.ID, 0, 100)
	assert.NoError(t, err)
	assert.Len(t, mine, 3)
	for _, l := range mine {
		assert.Equal(t, alice.ID, l.OwnerID)
	}

	paged, err := links.List(ctx, &alice.ID, 1, 1)
	assert.NoError(t, err)
	assert.Len(t, paged, 1)
}

func TestLinkRepoDeleteExpired(t *testing.T) {
	db := setupTestDB(t)
	links := NewLinkRepo(db)
	ctx := context.Background()
	owner := createUser(t, db, "alice", false)

	now := time.Now().UTC()
	require.NoError(t, links.Create(ctx, &models.Link{
		Text: "http://old.example", ShortText: "old",
		Expired: now.Add(-time.Second), OwnerID: owner.ID,
	}))
	require.NoError(t, links.Create(ctx, &models.Link{
		Text: "http://fresh.example", ShortText: "fresh",
		Expired: now.Add(time.Hour), OwnerID: owner.ID,
	}))

	count, err := links.DeleteExpired(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = links.FindByShortCode(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = links.FindByShortCode(ctx, "fresh")
	assert.NoError(t, err)

	// Second pass with nothing new deletes nothing.
	count, err = links.DeleteExpired(ctx, time.Now().UTC())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUserRepo(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepo(db)
	links := NewLinkRepo(db)
	ctx := context.Background()

	user := &models.User{Username: "carol", Email: "carol@example.com", Password: "x", IsActive: true}
	require.NoError(t, users.Create(ctx, user))

	byEmail, err := users.FindByEmail(ctx, "carol@example.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byName, err := users.FindByUsername(ctx, "carol")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = users.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, links.Create(ctx, &models.Link{
		Text: "http://carol.example", ShortText: "carol1",
		Expired: time.Now().UTC().AddDate(0, 0, 1), OwnerID: user.ID,
	}))

	deleted, err := users.Delete(ctx, user.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	// Owned links go away with the owner.
	_, err = links.FindByShortCode(ctx, "carol1")
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err = users.Delete(ctx, user.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)
}
