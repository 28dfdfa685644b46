package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yaricp/simple-short-links/internal/config"
	"github.com/yaricp/simple-short-links/internal/models"
	"github.com/yaricp/simple-short-links/internal/repo"
	"github.com/yaricp/simple-short-links/internal/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Link{}))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:      "test-secret",
		TokenTTL:       time.Hour,
		LinkExpireDays: 1,
	}
}

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewAuthService(repo.NewUserRepo(db), testConfig()), db
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	// Salted: a second hash differs but both verify.
	hash2, err := HashPassword("hunter2")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, hash2)

	assert.True(t, VerifyPassword("hunter2", hash))
	assert.True(t, VerifyPassword("hunter2", hash2))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	svc, _ := newAuthService(t)

	token, err := svc.IssueToken("alice", time.Minute)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestValidateTokenExpired(t *testing.T) {
	svc, _ := newAuthService(t)

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenTampered(t *testing.T) {
	svc, _ := newAuthService(t)

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignUpAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "secret123", user.Password)

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.SignUp(ctx, "alice2", "alice@example.com", "secret123")
		require.Error(t, err)
		appErr, ok := err.(*utils.AppError)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("login succeeds", func(t *testing.T) {
		resp, err := svc.Login(ctx, "alice", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)

		subject, err := svc.ValidateToken(resp.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, "alice", subject)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "nope")
		require.Error(t, err)
		appErr, ok := err.(*utils.AppError)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.Status)
	})

	t.Run("unknown user rejected", func(t *testing.T) {
		_, err := svc.Login(ctx, "mallory", "secret123")
		require.Error(t, err)
		appErr, ok := err.(*utils.AppError)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.Status)
	})
}

func TestCurrentUser(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	token, err := svc.IssueToken("alice", time.Minute)
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	t.Run("unknown subject is 404", func(t *testing.T) {
		ghost, err := svc.IssueToken("ghost", time.Minute)
		require.NoError(t, err)

		_, err = svc.CurrentUser(ctx, ghost)
		require.Error(t, err)
		appErr, ok := err.(*utils.AppError)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.Status)
	})

	t.Run("inactive user rejected", func(t *testing.T) {
		require.NoError(t, db.Model(&models.User{}).
			Where("username = ?", "alice").Update("is_active", false).Error)

		_, err = svc.CurrentUser(ctx, token)
		require.Error(t, err)
		appErr, ok := err.(*utils.AppError)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.Status)
	})
}
