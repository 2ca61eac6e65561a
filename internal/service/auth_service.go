package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"solarac_dashboard/internal/logger"
	"solarac_dashboard/internal/models"
	"solarac_dashboard/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL   = 12 * time.Hour
	tokenIssuer       = "solarac-dashboard"
	minPasswordLength = 8
)

// AuthConfig holds the JWT signing settings. SigningKey comes from configuration only.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

var (
	ErrInvalidUsername = errors.New("username must be 3-32 characters of letters, digits, '.', '_' or '-'")
	ErrWeakPassword    = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrUsernameTaken   = repository.ErrUsernameTaken
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrNoSigningKey    = errors.New("signing key is not configured")
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9._-]{3,32}$`)

// AuthService registers operators and issues the tokens whose user id keys a dashboard session.
type AuthService struct {
	authRepo repository.Authorization
	activity *activityRecorder
	cfg      AuthConfig
	now      func() time.Time
}

func NewAuthService(repo repository.Authorization, events repository.EventRepo, cfg AuthConfig, log *logger.Logger) *AuthService {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &AuthService{
		authRepo: repo,
		activity: newActivityRecorder(events, log),
		cfg:      cfg,
		now:      time.Now,
	}
}

// normalizeUsername lowercases and trims so "Operator1 " and "operator1" are one account.
func normalizeUsername(username string) (string, error) {
	u := strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(u) {
		return "", ErrInvalidUsername
	}
	return u, nil
}

// SignUp validates and stores a new operator.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int, error) {
	name, err := normalizeUsername(username)
	if err != nil {
		return 0, err
	}
	if len(password) < minPasswordLength {
		return 0, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.authRepo.Create(ctx, name, string(hash))
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// GenerateToken checks credentials, records the sign-in and returns a signed token.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	name, err := normalizeUsername(username)
	if err != nil {
		return "", ErrUserNotFound
	}
	u, err := s.authRepo.GetByUsername(ctx, name)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}

	token, err := s.issueToken(u)
	if err != nil {
		return "", err
	}
	s.activity.record(ctx, models.ActivityEvent{
		Type:        models.EventSignIn,
		UserID:      u.ID,
		Description: "Signed in as " + u.Username,
	})
	return token, nil
}

// ParseToken returns the user id of a valid token issued by this dashboard.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	if s.cfg.SigningKey == "" {
		return 0, ErrNoSigningKey
	}
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SigningKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

func (s *AuthService) issueToken(u *models.User) (string, error) {
	if s.cfg.SigningKey == "" {
		return "", ErrNoSigningKey
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   u.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: u.ID,
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}
