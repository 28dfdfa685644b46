package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/yaricp/simple-short-links/internal/config"
	"github.com/yaricp/simple-short-links/internal/models"
	"github.com/yaricp/simple-short-links/internal/repo"
	"github.com/yaricp/simple-short-links/internal/utils"
)

// ErrInvalidToken covers malformed, badly signed and expired tokens alike.
var ErrInvalidToken = errors.New("invalid token")

// defaultTokenTTL applies when a caller issues a token without a ttl.
const defaultTokenTTL = 15 * time.Minute

type AuthService struct {
	users *repo.UserRepo
	cfg   *config.Config
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewAuthService(users *repo.UserRepo, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IssueToken signs a token whose subject is the username. A zero ttl falls
// back to the 15 minute default; the API layer passes the configured ttl.
func (s *AuthService) IssueToken(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

// ValidateToken returns the subject encoded in a valid token, or
// ErrInvalidToken.
func (s *AuthService) ValidateToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// SignUp registers a new user unless the email is already taken.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (*models.User, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, utils.NewAppError(400, "CONFLICT", "Email already registered", nil)
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not check existing users", nil)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not secure password", nil)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not create user", nil)
	}
	return user, nil
}

// Login checks the credentials and returns a bearer token response.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, utils.NewAppError(401, "UNAUTHORIZED", "Incorrect username or password", nil)
	}
	if !VerifyPassword(password, user.Password) {
		return nil, utils.NewAppError(401, "UNAUTHORIZED", "Incorrect username or password", nil)
	}

	token, err := s.IssueToken(user.Username, s.cfg.TokenTTL)
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not generate token", nil)
	}

	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// CurrentUser resolves a bearer token into the user it names. An unknown
// subject is a 404 and an inactive user is rejected.
func (s *AuthService) CurrentUser(ctx context.Context, tokenStr string) (*models.User, error) {
	subject, err := s.ValidateToken(tokenStr)
	if err != nil {
		return nil, utils.NewAppError(401, "UNAUTHORIZED", "Could not validate credentials", nil)
	}

	user, err := s.users.FindByUsername(ctx, subject)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, utils.NewAppError(404, "NOT_FOUND", "User not found", nil)
	}
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not load user", nil)
	}

	if !IsActiveAndAuthenticated(user) {
		return nil, utils.NewAppError(400, "FORBIDDEN", "Inactive user", nil)
	}
	return user, nil
}
