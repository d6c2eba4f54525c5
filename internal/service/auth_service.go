package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"pinboard/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// Domain errors for auth flows.
var (
	ErrDuplicateUser      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrEmptyPassword      = errors.New("password is empty")
	ErrInvalidToken       = errors.New("invalid token")
)

// usernames double as storage keys, so keep them to a safe charset
var usernameRe = regexp.MustCompile(`^[a-z0-9._-]{1,64}$`)

// AuthService handles registration, login and session tokens.
type AuthService struct {
	creds      repository.Credentials
	signingKey []byte
	sessionTTL time.Duration
}

func NewAuthService(creds repository.Credentials, cfg AuthConfig) *AuthService {
	ttl := defaultSessionTTL
	if cfg.SessionTTL > 0 {
		ttl = time.Duration(cfg.SessionTTL) * time.Second
	}
	return &AuthService{
		creds:      creds,
		signingKey: []byte(cfg.SigningKey),
		sessionTTL: ttl,
	}
}

// normalizeUsername trims whitespace and lower-cases, so "  Alice " and
// "alice" identify the same account.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Register creates a new credential and returns the normalized username.
// Fails with ErrDuplicateUser if the name is already taken; the existing
// hash is left untouched.
func (s *AuthService) Register(username, password string) (string, error) {
	username = normalizeUsername(username)
	if !usernameRe.MatchString(username) {
		return "", ErrInvalidUsername
	}

	if existing, err := s.creds.GetByUsername(username); err != nil {
		return "", fmt.Errorf("check username %q: %w", username, err)
	} else if existing != nil {
		return "", ErrDuplicateUser
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", err
	}
	if err := s.creds.Put(username, hash); err != nil {
		return "", fmt.Errorf("store credential %q: %w", username, err)
	}
	return username, nil
}

// Authenticate verifies a credential and returns the normalized username.
// An absent user and a wrong password both fail with ErrInvalidCredentials.
func (s *AuthService) Authenticate(username, password string) (string, error) {
	username = normalizeUsername(username)

	u, err := s.creds.GetByUsername(username)
	if err != nil {
		return "", fmt.Errorf("look up %q: %w", username, err)
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return username, nil
}

// SessionClaims defines the JWT claims carried in the session cookie.
type SessionClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// IssueSession signs a session token for the user.
func (s *AuthService) IssueSession(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
	})
	return token.SignedString(s.signingKey)
}

// ParseSession validates a session token and returns the username.
func (s *AuthService) ParseSession(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
