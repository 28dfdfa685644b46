package db

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yaricp/simple-short-links/internal/models"
)

// EnsureAdmin creates the initial admin account when credentials are
// configured and no user with that username exists yet.
func EnsureAdmin(ctx context.Context, gormDB *gorm.DB, username, email, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int64
	if err := gormDB.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("check admin exists: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		IsActive: true,
		IsAdmin:  true,
	}
	if err := gormDB.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	return nil
}
